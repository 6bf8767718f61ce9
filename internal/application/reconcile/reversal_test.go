package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/application/reconcile"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/memstore"
)

func seed(t *testing.T, st *memstore.Store, key string, po string) (*entity.Invoice, *entity.InvoiceItem) {
	t.Helper()
	ctx := context.Background()
	inv := &entity.Invoice{
		AccessKey:    key,
		Number:       key[len(key)-4:],
		IssuedAt:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		IssuerTaxID:  "12345678000190",
		IssuerName:   "Cooperativa Recicla",
		Status:       entity.StatusSold,
		BusinessUnit: "UG Norte",
	}
	if po != "" {
		inv.PurchaseOrder = &po
	}
	require.NoError(t, st.Invoices().Create(ctx, inv))
	item := &entity.InvoiceItem{
		InvoiceID:   inv.ID,
		NCM:         "47079000",
		Description: "Aparas",
		Quantity:    decimal.NewFromInt(300),
		Unit:        "KG",
		Material:    "papelao",
	}
	require.NoError(t, st.Items().Create(ctx, item))
	return inv, item
}

func newSale(t *testing.T, st *memstore.Store, po string) *entity.Sale {
	t.Helper()
	sale := &entity.Sale{
		BuyerName:     "Recicladora Sul",
		TotalValue:    decimal.NewFromInt(300),
		PurchaseOrder: po,
		BusinessUnit:  "UG Norte",
		SaleDate:      time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, st.Sales().Create(context.Background(), sale))
	return sale
}

// ─── LocateSale ─────────────────────────────────────────────────────────────────

func TestLocateSale_PrefiereItemsVinculados(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	inv, item := seed(t, st, "00000000000000000000000000000000000000000001", "PC-9")
	linked := newSale(t, st, "PC-1")
	newSale(t, st, "PC-9")
	_, err := st.Items().LinkToSale(ctx, linked.ID, []int64{item.ID})
	require.NoError(t, err)

	err = st.Run(ctx, func(uow repository.UnitOfWork) error {
		sale, err := reconcile.LocateSale(ctx, uow, inv)
		require.NoError(t, err)
		require.NotNil(t, sale)
		assert.Equal(t, linked.ID, sale.ID, "el vínculo por ítem gana al pedido de compra")
		return nil
	})
	require.NoError(t, err)
}

func TestLocateSale_PorPedidoYSinVenta(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	byPO, _ := seed(t, st, "00000000000000000000000000000000000000000002", "PC-2")
	orphan, _ := seed(t, st, "00000000000000000000000000000000000000000003", "")
	sale := newSale(t, st, "PC-2")

	err := st.Run(ctx, func(uow repository.UnitOfWork) error {
		found, err := reconcile.LocateSale(ctx, uow, byPO)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, sale.ID, found.ID)

		none, err := reconcile.LocateSale(ctx, uow, orphan)
		require.NoError(t, err)
		assert.Nil(t, none)
		return nil
	})
	require.NoError(t, err)
}

// ─── ReverseInvoice ─────────────────────────────────────────────────────────────

func TestReverseInvoice_DeshaceVentaCompleta(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	a, itemA := seed(t, st, "00000000000000000000000000000000000000000004", "PC-4")
	b, itemB := seed(t, st, "00000000000000000000000000000000000000000005", "PC-4")
	sale := newSale(t, st, "PC-4")
	_, err := st.Items().LinkToSale(ctx, sale.ID, []int64{itemA.ID, itemB.ID})
	require.NoError(t, err)

	var rev *reconcile.Reversal
	err = st.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		rev, err = reconcile.ReverseInvoice(ctx, uow, a)
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, rev.Sale)
	assert.Equal(t, sale.ID, rev.Sale.ID)
	assert.Equal(t, int64(2), rev.ItemsUnlinked)
	assert.ElementsMatch(t, []int64{a.ID, b.ID}, rev.Invoices)

	gone, err := st.Sales().GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	reloaded, err := st.Invoices().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.PurchaseOrder, "el pedido de compra se limpia")
}

func TestReverseInvoice_SinVentaLimpiaPedido(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	inv, _ := seed(t, st, "00000000000000000000000000000000000000000006", "PC-HUERFANO")

	var rev *reconcile.Reversal
	err := st.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		rev, err = reconcile.ReverseInvoice(ctx, uow, inv)
		return err
	})
	require.NoError(t, err)
	assert.Nil(t, rev.Sale)
	assert.Zero(t, rev.ItemsUnlinked)

	reloaded, err := st.Invoices().GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.PurchaseOrder)
}

func TestUndoSale_FalloSeRevierte(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	_, item := seed(t, st, "00000000000000000000000000000000000000000007", "PC-7")
	sale := newSale(t, st, "PC-7")
	_, err := st.Items().LinkToSale(ctx, sale.ID, []int64{item.ID})
	require.NoError(t, err)

	boom := errors.New("disco cheio")
	st.FailOn("sales.Delete", boom)
	err = st.Run(ctx, func(uow repository.UnitOfWork) error {
		_, err := reconcile.UndoSale(ctx, uow, sale)
		return err
	})
	require.ErrorIs(t, err, boom)

	items, err := st.Items().ListBySale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1, "la desvinculación se revierte con la transacción")
}
