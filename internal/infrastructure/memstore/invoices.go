package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

type invoiceRepo struct {
	s  *Store
	at access
}

var _ repository.InvoiceRepository = (*invoiceRepo)(nil)

func (r *invoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	if err := r.s.failure("invoices.Create"); err != nil {
		return err
	}
	return r.at(func(st *state) error {
		for _, existing := range st.invoices {
			if existing.AccessKey == invoice.AccessKey {
				return domain.ErrDuplicate
			}
		}
		if invoice.Status == "" {
			invoice.Status = entity.StatusAvailable
		}
		invoice.ID = st.nextID("notas_fiscais")
		st.invoices[invoice.ID] = cloneInvoice(invoice)
		return nil
	})
}

func (r *invoiceRepo) GetByID(_ context.Context, id int64) (*entity.Invoice, error) {
	if err := r.s.failure("invoices.GetByID"); err != nil {
		return nil, err
	}
	var out *entity.Invoice
	err := r.at(func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			out = cloneInvoice(inv)
		}
		return nil
	})
	return out, err
}

func (r *invoiceRepo) GetByAccessKey(_ context.Context, accessKey string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.at(func(st *state) error {
		for _, inv := range st.invoices {
			if inv.AccessKey == accessKey {
				out = cloneInvoice(inv)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate no bloquea: las transacciones en memoria trabajan sobre copias privadas.
func (r *invoiceRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Invoice, error) {
	if err := r.s.failure("invoices.GetForUpdate"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *invoiceRepo) ApplyPatch(_ context.Context, id int64, patch repository.InvoicePatch) (*entity.Invoice, entity.InvoiceStatus, error) {
	if err := r.s.failure("invoices.ApplyPatch"); err != nil {
		return nil, "", err
	}
	if patch.IsEmpty() && patch.PurchaseOrder == nil && !patch.ClearPurchaseOrder {
		return nil, "", domain.ErrNothingToUpdate
	}
	var (
		out  *entity.Invoice
		prev entity.InvoiceStatus
	)
	err := r.at(func(st *state) error {
		inv, ok := st.invoices[id]
		if !ok {
			return nil
		}
		prev = inv.Status
		if patch.Status != nil {
			inv.Status = *patch.Status
		}
		if patch.BusinessUnit != nil {
			inv.BusinessUnit = *patch.BusinessUnit
		}
		switch {
		case patch.PurchaseOrder != nil:
			inv.PurchaseOrder = cloneString(patch.PurchaseOrder)
		case patch.ClearPurchaseOrder:
			inv.PurchaseOrder = nil
		}
		if patch.ClearLot {
			inv.LotNumber = nil
		}
		now := time.Now()
		inv.UpdatedAt = &now
		out = cloneInvoice(inv)
		return nil
	})
	return out, prev, err
}

func (r *invoiceRepo) MarkSoldByItems(_ context.Context, itemIDs []int64, purchaseOrder string) (int64, error) {
	if err := r.s.failure("invoices.MarkSoldByItems"); err != nil {
		return 0, err
	}
	var n int64
	err := r.at(func(st *state) error {
		parents := map[int64]bool{}
		for _, id := range itemIDs {
			if it, ok := st.items[id]; ok {
				parents[it.InvoiceID] = true
			}
		}
		now := time.Now()
		for id := range parents {
			inv, ok := st.invoices[id]
			if !ok {
				continue
			}
			inv.Status = entity.StatusSold
			po := purchaseOrder
			inv.PurchaseOrder = &po
			inv.UpdatedAt = &now
			n++
		}
		return nil
	})
	return n, err
}

func (r *invoiceRepo) ClearPurchaseOrder(_ context.Context, id int64) error {
	if err := r.s.failure("invoices.ClearPurchaseOrder"); err != nil {
		return err
	}
	return r.at(func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			inv.PurchaseOrder = nil
		}
		return nil
	})
}

func (r *invoiceRepo) AssignLot(_ context.Context, ids []int64, lotNumber, businessUnit string) (int64, error) {
	if err := r.s.failure("invoices.AssignLot"); err != nil {
		return 0, err
	}
	var n int64
	err := r.at(func(st *state) error {
		now := time.Now()
		for _, id := range ids {
			inv, ok := st.invoices[id]
			if !ok || inv.Status != entity.StatusAvailable {
				continue
			}
			inv.Status = entity.StatusInLot
			lot := lotNumber
			inv.LotNumber = &lot
			inv.BusinessUnit = businessUnit
			inv.UpdatedAt = &now
			n++
		}
		return nil
	})
	return n, err
}

// sortedInvoices notas ordenadas por id, para iteraciones deterministas.
func sortedInvoices(st *state) []*entity.Invoice {
	out := make([]*entity.Invoice, 0, len(st.invoices))
	for _, inv := range st.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// sortedItems ítems ordenados por id.
func sortedItems(st *state) []*entity.InvoiceItem {
	out := make([]*entity.InvoiceItem, 0, len(st.items))
	for _, it := range st.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
