package memstore

import (
	"context"
	"time"

	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

type saleRepo struct {
	s  *Store
	at access
}

var _ repository.SaleRepository = (*saleRepo)(nil)

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if err := r.s.failure("sales.Create"); err != nil {
		return err
	}
	return r.at(func(st *state) error {
		sale.ID = st.nextID("vendas")
		sale.RegisteredAt = time.Now()
		cp := *sale
		st.sales[sale.ID] = &cp
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.at(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			cp := *s
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) FindByPurchaseOrder(_ context.Context, purchaseOrder string) (*entity.Sale, error) {
	if err := r.s.failure("sales.FindByPurchaseOrder"); err != nil {
		return nil, err
	}
	var out *entity.Sale
	err := r.at(func(st *state) error {
		for _, s := range st.sales {
			if s.PurchaseOrder == purchaseOrder && (out == nil || s.ID > out.ID) {
				cp := *s
				out = &cp
			}
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) FindLinkedToInvoice(_ context.Context, invoiceID int64) (*entity.Sale, error) {
	if err := r.s.failure("sales.FindLinkedToInvoice"); err != nil {
		return nil, err
	}
	var out *entity.Sale
	err := r.at(func(st *state) error {
		for _, it := range sortedItems(st) {
			if it.InvoiceID != invoiceID || it.SaleID == nil {
				continue
			}
			if s, ok := st.sales[*it.SaleID]; ok && (out == nil || s.ID < out.ID) {
				cp := *s
				out = &cp
			}
		}
		return nil
	})
	return out, err
}

// Delete respeta la FK de itens_notas_fiscais: falla si algún ítem aún apunta a la venta.
func (r *saleRepo) Delete(_ context.Context, id int64) error {
	if err := r.s.failure("sales.Delete"); err != nil {
		return err
	}
	return r.at(func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return domain.ErrNotFound
		}
		for _, it := range st.items {
			if it.SaleID != nil && *it.SaleID == id {
				return domain.ErrConflict
			}
		}
		delete(st.sales, id)
		return nil
	})
}
