package sales_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/memstore"
)

var keySeq int

func seedInvoice(t *testing.T, st *memstore.Store, status entity.InvoiceStatus, po string, material string, kg int64) (*entity.Invoice, *entity.InvoiceItem) {
	t.Helper()
	ctx := context.Background()
	keySeq++
	inv := &entity.Invoice{
		AccessKey:    fmt.Sprintf("%044d", keySeq),
		Number:       fmt.Sprintf("NF-%d", keySeq),
		IssuedAt:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		IssuerTaxID:  "12345678000190",
		IssuerName:   "Cooperativa Recicla",
		Status:       status,
		BusinessUnit: "UG Norte",
	}
	if po != "" {
		inv.PurchaseOrder = &po
	}
	require.NoError(t, st.Invoices().Create(ctx, inv))
	item := &entity.InvoiceItem{
		InvoiceID:   inv.ID,
		NCM:         "47079000",
		Description: "Aparas de " + material,
		Quantity:    decimal.NewFromInt(kg),
		Unit:        "KG",
		Material:    material,
	}
	require.NoError(t, st.Items().Create(ctx, item))
	return inv, item
}

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func reload(t *testing.T, st *memstore.Store, id int64) *entity.Invoice {
	t.Helper()
	inv, err := st.Invoices().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, inv)
	return inv
}

func repositoryFilter() repository.SaleFilter {
	return repository.SaleFilter{}
}
