package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

type itemRepo struct {
	s  *Store
	at access
}

var _ repository.InvoiceItemRepository = (*itemRepo)(nil)

func (r *itemRepo) Create(_ context.Context, item *entity.InvoiceItem) error {
	if err := r.s.failure("items.Create"); err != nil {
		return err
	}
	return r.at(func(st *state) error {
		item.ID = st.nextID("itens_notas_fiscais")
		st.items[item.ID] = cloneItem(item)
		return nil
	})
}

func (r *itemRepo) ListByInvoice(_ context.Context, invoiceID int64) ([]entity.InvoiceItem, error) {
	return r.filter(func(it *entity.InvoiceItem) bool { return it.InvoiceID == invoiceID })
}

func (r *itemRepo) ListBySale(_ context.Context, saleID int64) ([]entity.InvoiceItem, error) {
	return r.filter(func(it *entity.InvoiceItem) bool { return it.SaleID != nil && *it.SaleID == saleID })
}

func (r *itemRepo) filter(keep func(it *entity.InvoiceItem) bool) ([]entity.InvoiceItem, error) {
	var out []entity.InvoiceItem
	err := r.at(func(st *state) error {
		for _, it := range sortedItems(st) {
			if keep(it) {
				out = append(out, *cloneItem(it))
			}
		}
		return nil
	})
	return out, err
}

func (r *itemRepo) InvoiceIDsBySale(_ context.Context, saleID int64) ([]int64, error) {
	var out []int64
	err := r.at(func(st *state) error {
		seen := map[int64]bool{}
		for _, it := range st.items {
			if it.SaleID != nil && *it.SaleID == saleID && !seen[it.InvoiceID] {
				seen[it.InvoiceID] = true
				out = append(out, it.InvoiceID)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, err
}

func (r *itemRepo) GetSaleCandidates(_ context.Context, itemIDs []int64) ([]entity.SaleCandidate, error) {
	if err := r.s.failure("items.GetSaleCandidates"); err != nil {
		return nil, err
	}
	var out []entity.SaleCandidate
	err := r.at(func(st *state) error {
		wanted := map[int64]bool{}
		for _, id := range itemIDs {
			wanted[id] = true
		}
		for _, it := range sortedItems(st) {
			if !wanted[it.ID] {
				continue
			}
			inv := st.invoices[it.InvoiceID]
			c := entity.SaleCandidate{
				ItemID:   it.ID,
				Material: it.Material,
				Quantity: it.Quantity,
				SaleID:   cloneItem(it).SaleID,
			}
			if inv != nil {
				c.InvoiceID = inv.ID
				c.InvoiceNumber = inv.Number
				c.IssuerName = inv.IssuerName
				c.InvoiceStatus = inv.Status
				c.CurrentPurchase = cloneString(inv.PurchaseOrder)
			}
			out = append(out, c)
		}
		return nil
	})
	return out, err
}

func (r *itemRepo) LinkToSale(_ context.Context, saleID int64, itemIDs []int64) (int64, error) {
	if err := r.s.failure("items.LinkToSale"); err != nil {
		return 0, err
	}
	var n int64
	err := r.at(func(st *state) error {
		for _, id := range itemIDs {
			if it, ok := st.items[id]; ok && it.SaleID == nil {
				sid := saleID
				it.SaleID = &sid
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *itemRepo) UnlinkSale(_ context.Context, saleID int64) (int64, error) {
	if err := r.s.failure("items.UnlinkSale"); err != nil {
		return 0, err
	}
	var n int64
	err := r.at(func(st *state) error {
		for _, it := range st.items {
			if it.SaleID != nil && *it.SaleID == saleID {
				it.SaleID = nil
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *itemRepo) UnlinkInvoice(_ context.Context, invoiceID int64) (int64, error) {
	if err := r.s.failure("items.UnlinkInvoice"); err != nil {
		return 0, err
	}
	var n int64
	err := r.at(func(st *state) error {
		for _, it := range st.items {
			if it.InvoiceID == invoiceID && it.SaleID != nil {
				it.SaleID = nil
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *itemRepo) AvailableQuantity(_ context.Context, material string) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.at(func(st *state) error {
		for _, it := range st.items {
			inv := st.invoices[it.InvoiceID]
			if inv == nil || it.SaleID != nil || !strings.EqualFold(it.Material, material) {
				continue
			}
			if inv.Status == entity.StatusAvailable || inv.Status == entity.StatusInLot {
				total = total.Add(it.Quantity)
			}
		}
		return nil
	})
	return total, err
}

func (r *itemRepo) LotCandidates(_ context.Context, filter repository.LotFilter) ([]entity.LotCandidate, error) {
	if err := r.s.failure("items.LotCandidates"); err != nil {
		return nil, err
	}
	var out []entity.LotCandidate
	err := r.at(func(st *state) error {
		byInvoice := map[int64]*entity.LotCandidate{}
		for _, it := range sortedItems(st) {
			inv := st.invoices[it.InvoiceID]
			if inv == nil || inv.Status != entity.StatusAvailable || !strings.EqualFold(it.Material, filter.Material) {
				continue
			}
			if filter.Year != 0 && inv.IssuedAt.Year() != filter.Year {
				continue
			}
			if !matchesCustomer(inv.CustomerID, filter) {
				continue
			}
			c, ok := byInvoice[inv.ID]
			if !ok {
				c = &entity.LotCandidate{
					InvoiceID:     inv.ID,
					InvoiceNumber: inv.Number,
					IssuedAt:      inv.IssuedAt,
					IssuerName:    inv.IssuerName,
					Material:      it.Material,
					Quantity:      decimal.Zero,
					CustomerID:    inv.CustomerID,
				}
				byInvoice[inv.ID] = c
			}
			c.Quantity = c.Quantity.Add(it.Quantity)
		}
		for _, c := range byInvoice {
			out = append(out, *c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssuedAt.Equal(out[j].IssuedAt) {
			return out[i].IssuedAt.Before(out[j].IssuedAt)
		}
		return out[i].InvoiceID < out[j].InvoiceID
	})
	return out, err
}

func matchesCustomer(customerID *int64, filter repository.LotFilter) bool {
	same := customerID != nil && *customerID == filter.CustomerID
	switch {
	case filter.ExcludeCustomer:
		return !same
	case filter.CustomerID != 0:
		return same
	default:
		return true
	}
}
