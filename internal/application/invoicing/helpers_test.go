package invoicing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/memstore"
)

var keySeq int

// seedInvoice crea una nota con un ítem del material indicado.
func seedInvoice(t *testing.T, st *memstore.Store, status entity.InvoiceStatus, po string, material string, kg int64) (*entity.Invoice, *entity.InvoiceItem) {
	t.Helper()
	ctx := context.Background()
	keySeq++
	inv := &entity.Invoice{
		AccessKey:      fmt.Sprintf("%044d", keySeq),
		Number:         fmt.Sprintf("%d", 1000+keySeq),
		IssuedAt:       time.Date(2024, 3, keySeq%28+1, 0, 0, 0, 0, time.UTC),
		IssuerTaxID:    "12345678000190",
		IssuerName:     "Cooperativa Recicla",
		RecipientTaxID: "98765432000110",
		RecipientName:  "Aparas Brasil",
		Status:         status,
		BusinessUnit:   "UG Norte",
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

// seedSale crea una venta con el pedido po y le vincula los ítems.
func seedSale(t *testing.T, st *memstore.Store, po string, items ...*entity.InvoiceItem) *entity.Sale {
	t.Helper()
	ctx := context.Background()
	sale := &entity.Sale{
		BuyerName:     "Recicladora Sul",
		TotalValue:    decimal.NewFromInt(1000),
		PurchaseOrder: po,
		BusinessUnit:  "UG Norte",
		SaleDate:      time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		PricePerTon:   decimal.NewFromInt(500),
	}
	require.NoError(t, st.Sales().Create(ctx, sale))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	_, err := st.Items().LinkToSale(ctx, sale.ID, ids)
	require.NoError(t, err)
	return sale
}

func reload(t *testing.T, st *memstore.Store, id int64) *entity.Invoice {
	t.Helper()
	inv, err := st.Invoices().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, inv)
	return inv
}

func reloadItem(t *testing.T, st *memstore.Store, invoiceID int64) entity.InvoiceItem {
	t.Helper()
	items, err := st.Items().ListByInvoice(context.Background(), invoiceID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	return items[0]
}
