package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/sales"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/memstore"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

func registerRequest(ids ...int64) dto.RegisterSaleRequest {
	return dto.RegisterSaleRequest{
		ItemIDs:       ids,
		BuyerName:     "Recicladora Sul",
		TotalValue:    dec("900"),
		PurchaseOrder: "PC-2024-01",
		BusinessUnit:  "UG Norte",
		SaleDate:      "2024-04-10",
	}
}

// ─── Register ───────────────────────────────────────────────────────────────────

func TestRegister_YReverse_IdaYVuelta(t *testing.T) {
	st := memstore.New()
	a, itemA := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000)
	b, itemB := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	uc := sales.NewRegisterUseCase(st, logger.Nop())
	ctx := context.Background()

	res, err := uc.Register(ctx, registerRequest(itemA.ID, itemB.ID, itemA.ID))
	require.NoError(t, err)
	assert.Equal(t, "Venda registrada com sucesso! 2 nota(s) fiscal(is) marcada(s) como vendida(s).", res.Message)
	assert.Equal(t, int64(2), res.Sale.InvoicesUpdated)
	assert.Equal(t, 2, res.Sale.ItemsSold, "ids repetidos cuentan una vez")

	for _, id := range []int64{a.ID, b.ID} {
		inv := reload(t, st, id)
		assert.Equal(t, entity.StatusSold, inv.Status)
		require.NotNil(t, inv.PurchaseOrder)
		assert.Equal(t, "PC-2024-01", *inv.PurchaseOrder)
	}
	sale, err := st.Sales().GetByID(ctx, res.Sale.SaleID)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, "600", sale.PricePerTon.String(), "sin valor por tonelada se deriva de valor_total / toneladas")

	rev, err := uc.Reverse(ctx, res.Sale.SaleID, "10.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rev.ItemsUnlinked)
	assert.ElementsMatch(t, []int64{a.ID, b.ID}, rev.InvoicesReopened)

	for _, id := range []int64{a.ID, b.ID} {
		inv := reload(t, st, id)
		assert.Equal(t, entity.StatusAvailable, inv.Status)
		assert.Nil(t, inv.PurchaseOrder)
		items, err := st.Items().ListByInvoice(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, items[0].SaleID)

		audit, err := st.Audit().ListByInvoice(ctx, id)
		require.NoError(t, err)
		require.Len(t, audit, 1)
		assert.Equal(t, "vendida", audit[0].OldValue)
	}
	gone, err := st.Sales().GetByID(ctx, res.Sale.SaleID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRegister_FalloAlVincularRevierteTodo(t *testing.T) {
	st := memstore.New()
	a, item := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000)
	st.FailOn("items.LinkToSale", errors.New("conexão perdida"))

	_, err := sales.NewRegisterUseCase(st, logger.Nop()).Register(context.Background(), registerRequest(item.ID))
	require.Error(t, err)

	inv := reload(t, st, a.ID)
	assert.Equal(t, entity.StatusAvailable, inv.Status, "sin notas a medio actualizar")
	assert.Nil(t, inv.PurchaseOrder)
	rows, err := st.Analytics().SalesHistory(context.Background(), repositoryFilter())
	require.NoError(t, err)
	assert.Empty(t, rows, "sin venta huérfana")
}

// concurrentRunner simula otra venta que vincula el primer ítem entre la lectura de
// candidatos y el vínculo.
type concurrentRunner struct {
	st      *memstore.Store
	rivalID int64
}

func (r concurrentRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return r.st.Run(ctx, func(uow repository.UnitOfWork) error {
		return fn(concurrentUoW{UnitOfWork: uow, rivalID: r.rivalID})
	})
}

type concurrentUoW struct {
	repository.UnitOfWork
	rivalID int64
}

func (u concurrentUoW) Items() repository.InvoiceItemRepository {
	return concurrentItems{InvoiceItemRepository: u.UnitOfWork.Items(), rivalID: u.rivalID}
}

type concurrentItems struct {
	repository.InvoiceItemRepository
	rivalID int64
}

func (r concurrentItems) GetSaleCandidates(ctx context.Context, itemIDs []int64) ([]entity.SaleCandidate, error) {
	out, err := r.InvoiceItemRepository.GetSaleCandidates(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	if _, err := r.InvoiceItemRepository.LinkToSale(ctx, r.rivalID, itemIDs[:1]); err != nil {
		return nil, err
	}
	return out, nil
}

func TestRegister_ItemVinculadoPorOtraVentaDevuelveConflicto(t *testing.T) {
	st := memstore.New()
	a, itemA := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000)
	_, itemB := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	ctx := context.Background()

	uc := sales.NewRegisterUseCase(concurrentRunner{st: st, rivalID: 999}, logger.Nop())
	_, err := uc.Register(ctx, registerRequest(itemA.ID, itemB.ID))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict), "un ítem ya vinculado no se vuelve a vincular: %v", err)

	inv := reload(t, st, a.ID)
	assert.Equal(t, entity.StatusAvailable, inv.Status, "la transacción se revierte")
	assert.Nil(t, inv.PurchaseOrder)
	items, err := st.Items().ListByInvoice(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, items[0].SaleID)
	rows, err := st.Analytics().SalesHistory(ctx, repositoryFilter())
	require.NoError(t, err)
	assert.Empty(t, rows, "sin venta huérfana")
}

func TestLinkToSale_NoPisaUnVinculoExistente(t *testing.T) {
	st := memstore.New()
	_, itemA := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000)
	_, itemB := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	ctx := context.Background()

	n, err := st.Items().LinkToSale(ctx, 1, []int64{itemA.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = st.Items().LinkToSale(ctx, 2, []int64{itemA.ID, itemB.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "solo se vincula el ítem libre")

	items, err := st.Items().ListByInvoice(ctx, itemA.InvoiceID)
	require.NoError(t, err)
	require.NotNil(t, items[0].SaleID)
	assert.Equal(t, int64(1), *items[0].SaleID)
}

func TestRegister_Validaciones(t *testing.T) {
	st := memstore.New()
	_, item := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000)
	_, sold := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000)
	uc := sales.NewRegisterUseCase(st, logger.Nop())
	ctx := context.Background()

	req := registerRequest(item.ID)
	req.PurchaseOrder = ""
	_, err := uc.Register(ctx, req)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Field, "numero_pedido_compra")

	req = registerRequest(item.ID)
	req.SaleDate = "10/04/2024"
	_, err = uc.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, registerRequest(item.ID, 999))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Register(ctx, registerRequest(sold.ID))
	require.NoError(t, err)
	_, err = uc.Register(ctx, registerRequest(sold.ID))
	assert.ErrorIs(t, err, domain.ErrConflict, "un ítem no puede venderse dos veces")
}

func TestReverse_VentaInexistente(t *testing.T) {
	_, err := sales.NewRegisterUseCase(memstore.New(), logger.Nop()).Reverse(context.Background(), 42, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
