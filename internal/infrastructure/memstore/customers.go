package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

type customerRepo struct {
	s  *Store
	at access
}

var _ repository.CustomerRepository = (*customerRepo)(nil)

func (r *customerRepo) Create(_ context.Context, customer *entity.Customer) error {
	return r.at(func(st *state) error {
		for _, c := range st.customers {
			if c.CNPJ == customer.CNPJ {
				return domain.ErrDuplicate
			}
		}
		customer.ID = st.nextID("clientes")
		customer.RegisteredAt = time.Now()
		cp := *customer
		cp.Materials = ""
		st.customers[customer.ID] = &cp
		return nil
	})
}

func (r *customerRepo) Merge(_ context.Context, id int64, customer *entity.Customer) error {
	return r.at(func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return domain.ErrNotFound
		}
		mergeField(&c.LegalName, customer.LegalName)
		mergeField(&c.TradeName, customer.TradeName)
		mergeField(&c.Address, customer.Address)
		mergeField(&c.City, customer.City)
		mergeField(&c.State, customer.State)
		mergeField(&c.ZipCode, customer.ZipCode)
		mergeField(&c.Email, customer.Email)
		mergeField(&c.Phone, customer.Phone)
		mergeField(&c.WhatsApp, customer.WhatsApp)
		mergeField(&c.ContactName, customer.ContactName)
		return nil
	})
}

func mergeField(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (r *customerRepo) Update(_ context.Context, customer *entity.Customer) error {
	return r.at(func(st *state) error {
		current, ok := st.customers[customer.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for _, c := range st.customers {
			if c.ID != customer.ID && c.CNPJ == customer.CNPJ {
				return domain.ErrDuplicate
			}
		}
		cp := *customer
		cp.RegisteredAt = current.RegisteredAt
		cp.Materials = ""
		st.customers[customer.ID] = &cp
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.at(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) GetByCNPJ(_ context.Context, cnpj string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.at(func(st *state) error {
		for _, c := range st.customers {
			if c.CNPJ == cnpj {
				cp := *c
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List agrega los materiales de las notas emitidas por el CNPJ del cliente.
func (r *customerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.at(func(st *state) error {
		for _, c := range st.customers {
			cp := *c
			materials := map[string]bool{}
			for _, it := range st.items {
				inv := st.invoices[it.InvoiceID]
				if inv != nil && inv.IssuerTaxID == c.CNPJ && it.Material != "" {
					materials[it.Material] = true
				}
			}
			names := make([]string, 0, len(materials))
			for m := range materials {
				names = append(names, m)
			}
			sort.Strings(names)
			cp.Materials = "Nenhum"
			if len(names) > 0 {
				cp.Materials = strings.Join(names, ", ")
			}
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].LegalName < out[j].LegalName })
	return out, err
}
