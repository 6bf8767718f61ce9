package invoicing_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/invoicing"
	"github.com/jhoicas/reciclagem-api/internal/application/sales"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/memstore"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

func newStatusUC(st *memstore.Store) *invoicing.StatusUseCase {
	return invoicing.NewStatusUseCase(st, logger.Nop())
}

// ─── Batch ──────────────────────────────────────────────────────────────────────

func TestBatch_UnaInexistenteNoAbortaLasDemas(t *testing.T) {
	st := memstore.New()
	a, _ := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	b, _ := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)

	res, err := newStatusUC(st).Batch(context.Background(), dto.BatchStatusRequest{
		InvoiceIDs: []int64{a.ID, 9999, b.ID},
		Status:     "ofertada",
	}, "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Successes)
	assert.Equal(t, 1, res.Failures)
	assert.False(t, res.Results[1].Success)
	assert.Contains(t, res.Results[1].Message, "não encontrada")
	assert.NotEmpty(t, res.OperationID)
	assert.Equal(t, "Atualização em lote concluída: 2 nota(s) atualizada(s) com sucesso, 1 falha(s).", res.Message)

	assert.Equal(t, entity.StatusOffered, reload(t, st, a.ID).Status, "las válidas deben quedar confirmadas")
	assert.Equal(t, entity.StatusOffered, reload(t, st, b.ID).Status)

	audit, err := st.Audit().ListByInvoice(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, "status", audit[0].Field)
	assert.Equal(t, "disponivel", audit[0].OldValue)
	assert.Equal(t, "ofertada", audit[0].NewValue)
	assert.Equal(t, "10.0.0.1", audit[0].IP)
	assert.Equal(t, res.OperationID, audit[0].OperationID)
}

func TestBatch_ValidaEntrada(t *testing.T) {
	uc := newStatusUC(memstore.New())
	ctx := context.Background()

	_, err := uc.Batch(ctx, dto.BatchStatusRequest{Status: "ofertada"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin notas")

	_, err = uc.Batch(ctx, dto.BatchStatusRequest{InvoiceIDs: []int64{1}}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin status ni unidad")

	_, err = uc.Batch(ctx, dto.BatchStatusRequest{InvoiceIDs: []int64{1}, Status: "perdida"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "status desconocido")

	_, err = uc.Batch(ctx, dto.BatchStatusRequest{InvoiceIDs: []int64{1}, Status: "em_lote"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "em_lote no es un destino permitido")
}

func TestBatch_TransicionInvalidaSinForzar(t *testing.T) {
	st := memstore.New()
	inv, _ := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)

	res, err := newStatusUC(st).Batch(context.Background(), dto.BatchStatusRequest{
		InvoiceIDs:    []int64{inv.ID},
		Status:        "vendida",
		PurchaseOrder: "PC-1",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failures)
	assert.Contains(t, res.Results[0].Message, "forcarAlteracao=true")
	assert.Equal(t, entity.StatusAvailable, reload(t, st, inv.ID).Status)
}

func TestBatch_ForzadoAVendidaExigePedido(t *testing.T) {
	st := memstore.New()
	inv, _ := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	uc := newStatusUC(st)

	res, err := uc.Batch(context.Background(), dto.BatchStatusRequest{
		InvoiceIDs: []int64{inv.ID}, Status: "vendida", Forced: true,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failures, "sin pedido de compra no puede quedar vendida")

	res, err = uc.Batch(context.Background(), dto.BatchStatusRequest{
		InvoiceIDs: []int64{inv.ID}, Status: "vendida", PurchaseOrder: "PC-9", Forced: true,
	}, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Successes)
	assert.True(t, strings.HasSuffix(res.Message, " (Alteração forçada)"))
	assert.True(t, res.Results[0].Forced)

	got := reload(t, st, inv.ID)
	assert.Equal(t, entity.StatusSold, got.Status)
	require.NotNil(t, got.PurchaseOrder)
	assert.Equal(t, "PC-9", *got.PurchaseOrder)

	audit, err := st.Audit().ListByInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.True(t, audit[0].Forced)
}

func TestBatch_VendidaADisponivelConVentaVinculada(t *testing.T) {
	st := memstore.New()
	inv, item := seedInvoice(t, st, entity.StatusSold, "PC-1", "papelao", 500)
	sale := seedSale(t, st, "PC-1", item)
	uc := newStatusUC(st)
	ctx := context.Background()

	res, err := uc.Batch(ctx, dto.BatchStatusRequest{InvoiceIDs: []int64{inv.ID}, Status: "disponivel"}, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Failures)
	assert.Contains(t, res.Results[0].Message, "Desfaça a venda primeiro")
	assert.Contains(t, res.Results[0].Message, "Recicladora Sul")
	assert.Equal(t, entity.StatusSold, reload(t, st, inv.ID).Status)

	res, err = uc.Batch(ctx, dto.BatchStatusRequest{InvoiceIDs: []int64{inv.ID}, Status: "disponivel", Forced: true}, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Successes)
	require.NotNil(t, res.Results[0].ReversedSaleID)
	assert.Equal(t, sale.ID, *res.Results[0].ReversedSaleID)

	got := reload(t, st, inv.ID)
	assert.Equal(t, entity.StatusAvailable, got.Status)
	assert.Nil(t, got.PurchaseOrder, "salir de vendida limpia el pedido")
	assert.Nil(t, reloadItem(t, st, inv.ID).SaleID)

	deleted, err := st.Sales().GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted, "la venta debe borrarse")
}

func TestBatch_VendidaADisponivelSinVentaLimpiaPedido(t *testing.T) {
	st := memstore.New()
	inv, _ := seedInvoice(t, st, entity.StatusSold, "PC-7", "papelao", 500)

	res, err := newStatusUC(st).Batch(context.Background(), dto.BatchStatusRequest{InvoiceIDs: []int64{inv.ID}, Status: "disponivel"}, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Successes)
	assert.Nil(t, reload(t, st, inv.ID).PurchaseOrder)
}

func TestBatch_LimpiezaForzadaFallidaSeTolera(t *testing.T) {
	st := memstore.New()
	inv, item := seedInvoice(t, st, entity.StatusSold, "PC-1", "papelao", 500)
	sale := seedSale(t, st, "PC-1", item)
	st.FailOn("sales.Delete", errors.New("conexão perdida"))

	res, err := newStatusUC(st).Batch(context.Background(), dto.BatchStatusRequest{
		InvoiceIDs: []int64{inv.ID}, Status: "disponivel", Forced: true,
	}, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Successes)
	assert.Nil(t, res.Results[0].ReversedSaleID)

	got := reload(t, st, inv.ID)
	assert.Equal(t, entity.StatusAvailable, got.Status)
	assert.Nil(t, got.PurchaseOrder)

	kept, err := st.Sales().GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept, "la limpieza se revierte entera dentro del savepoint")
	assert.NotNil(t, reloadItem(t, st, inv.ID).SaleID)
}

func TestBatch_ErrorDeBaseRevierteTodo(t *testing.T) {
	st := memstore.New()
	a, _ := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	b, _ := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	st.FailOn("tx.Commit", errors.New("conexão perdida"))

	_, err := newStatusUC(st).Batch(context.Background(), dto.BatchStatusRequest{
		InvoiceIDs: []int64{a.ID, b.ID}, Status: "ofertada",
	}, "")
	require.Error(t, err)
	assert.False(t, domain.IsBusiness(err))

	assert.Equal(t, entity.StatusAvailable, reload(t, st, a.ID).Status)
	assert.Equal(t, entity.StatusAvailable, reload(t, st, b.ID).Status)
}

func TestBatch_ErrorDeInfraEnUnaNotaAbortaElLote(t *testing.T) {
	st := memstore.New()
	a, _ := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	st.FailOn("invoices.ApplyPatch", errors.New("deadlock detected"))

	res, err := newStatusUC(st).Batch(context.Background(), dto.BatchStatusRequest{
		InvoiceIDs: []int64{a.ID}, Status: "ofertada",
	}, "")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "deadlock detected")
}

func TestBatch_FallaDeAuditoriaNoRevierte(t *testing.T) {
	st := memstore.New()
	inv, _ := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	st.FailOn("audit.Append", errors.New("tabela de auditoria indisponível"))

	res, err := newStatusUC(st).Batch(context.Background(), dto.BatchStatusRequest{
		InvoiceIDs: []int64{inv.ID}, Status: "pendente",
	}, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Successes)
	assert.Equal(t, "Atenção: não foi possível registrar a auditoria desta alteração.", res.Results[0].AuditWarning)
	assert.Equal(t, entity.StatusPending, reload(t, st, inv.ID).Status)
}

func TestBatch_SoloUnidadGestora(t *testing.T) {
	st := memstore.New()
	inv, _ := seedInvoice(t, st, entity.StatusSold, "PC-3", "papelao", 500)
	uc := newStatusUC(st)

	res, err := uc.Batch(context.Background(), dto.BatchStatusRequest{
		InvoiceIDs: []int64{inv.ID}, BusinessUnit: "UG Sul",
	}, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Successes)

	got := reload(t, st, inv.ID)
	assert.Equal(t, "UG Sul", got.BusinessUnit)
	assert.Equal(t, entity.StatusSold, got.Status)
	require.NotNil(t, got.PurchaseOrder, "sin cambio de status el pedido se conserva")

	res, err = uc.Batch(context.Background(), dto.BatchStatusRequest{
		InvoiceIDs: []int64{inv.ID}, BusinessUnit: "UG Sul",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failures)
	assert.Contains(t, res.Results[0].Message, "Nenhuma alteração necessária para a nota")
}

func TestBatch_SalirDeLoteLimpiaElLote(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	inv, _ := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	other, _ := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 500)
	n, err := st.Invoices().AssignLot(ctx, []int64{inv.ID, other.ID}, "LOTE-001", "UG Norte")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	uc := newStatusUC(st)
	res, err := uc.Batch(ctx, dto.BatchStatusRequest{InvoiceIDs: []int64{inv.ID}, Status: "disponivel"}, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Successes)

	got := reload(t, st, inv.ID)
	assert.Equal(t, entity.StatusAvailable, got.Status)
	assert.Nil(t, got.LotNumber, "fuera de em_lote no queda lote asociado")

	res, err = uc.Batch(ctx, dto.BatchStatusRequest{InvoiceIDs: []int64{other.ID}, BusinessUnit: "UG Sul"}, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Successes)
	kept := reload(t, st, other.ID)
	assert.Equal(t, entity.StatusInLot, kept.Status)
	require.NotNil(t, kept.LotNumber, "sin cambio de status el lote se conserva")
	assert.Equal(t, "LOTE-001", *kept.LotNumber)
}

func TestBatch_ForzadoDeVendidaAOfertadaRevierteLaVenta(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	inv, item := seedInvoice(t, st, entity.StatusOffered, "", "papelao", 800)

	total := decimal.NewFromInt(400)
	sold, err := sales.NewRegisterUseCase(st, logger.Nop()).Register(ctx, dto.RegisterSaleRequest{
		ItemIDs:       []int64{item.ID},
		BuyerName:     "Recicladora Sul",
		TotalValue:    &total,
		PurchaseOrder: "PC-OF-1",
		BusinessUnit:  "UG Norte",
		SaleDate:      "2024-04-10",
	})
	require.NoError(t, err)
	require.Equal(t, entity.StatusSold, reload(t, st, inv.ID).Status)

	res, err := newStatusUC(st).Batch(ctx, dto.BatchStatusRequest{
		InvoiceIDs: []int64{inv.ID},
		Status:     "ofertada",
		Forced:     true,
	}, "10.0.0.2")
	require.NoError(t, err)
	require.Equal(t, 1, res.Successes, res.Results[0].Message)
	require.NotNil(t, res.Results[0].ReversedSaleID)
	assert.Equal(t, sold.Sale.SaleID, *res.Results[0].ReversedSaleID)

	got := reload(t, st, inv.ID)
	assert.Equal(t, entity.StatusOffered, got.Status)
	assert.Nil(t, got.PurchaseOrder, "salir de vendida limpia el pedido")
	assert.Nil(t, reloadItem(t, st, inv.ID).SaleID, "el ítem queda libre")

	gone, err := st.Sales().GetByID(ctx, sold.Sale.SaleID)
	require.NoError(t, err)
	assert.Nil(t, gone, "la venta debe borrarse")
}

// ─── Update ─────────────────────────────────────────────────────────────────────

func TestUpdate_PropagaErroresDeNegocio(t *testing.T) {
	st := memstore.New()
	inv, _ := seedInvoice(t, st, entity.StatusRejected, "", "papelao", 500)
	uc := newStatusUC(st)

	_, err := uc.Update(context.Background(), inv.ID, dto.UpdateStatusRequest{Status: "ofertada"}, "")
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "reprovada", te.From)

	res, err := uc.Update(context.Background(), inv.ID, dto.UpdateStatusRequest{Status: "disponivel"}, "")
	require.NoError(t, err)
	assert.Equal(t, "reprovada", res.PreviousStatus)
	assert.Equal(t, "disponivel", res.Status)

	_, err = uc.Update(context.Background(), 777, dto.UpdateStatusRequest{Status: "disponivel"}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Reprocess ──────────────────────────────────────────────────────────────────

func TestReprocess_RevierteVentaSinVerificarVinculo(t *testing.T) {
	st := memstore.New()
	inv, item := seedInvoice(t, st, entity.StatusSold, "PC-1", "papelao", 500)
	other, otherItem := seedInvoice(t, st, entity.StatusSold, "PC-1", "papelao", 300)
	sale := seedSale(t, st, "PC-1", item, otherItem)

	res, err := newStatusUC(st).Reprocess(context.Background(), dto.ReprocessStatusRequest{
		InvoiceID: inv.ID, Status: "disponivel",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Status da nota reprocessado com sucesso.", res.Message)
	require.NotNil(t, res.ReversedSaleID)
	assert.Equal(t, sale.ID, *res.ReversedSaleID)

	assert.Nil(t, reloadItem(t, st, inv.ID).SaleID)
	assert.Nil(t, reloadItem(t, st, other.ID).SaleID, "todos los ítems de la venta se liberan")
	assert.Nil(t, reload(t, st, inv.ID).PurchaseOrder)
}

func TestReprocess_FallaEnReversionAborta(t *testing.T) {
	st := memstore.New()
	inv, item := seedInvoice(t, st, entity.StatusSold, "PC-1", "papelao", 500)
	seedSale(t, st, "PC-1", item)
	st.FailOn("items.UnlinkSale", errors.New("conexão perdida"))

	_, err := newStatusUC(st).Reprocess(context.Background(), dto.ReprocessStatusRequest{
		InvoiceID: inv.ID, Status: "disponivel",
	}, "")
	require.Error(t, err)

	got := reload(t, st, inv.ID)
	assert.Equal(t, entity.StatusSold, got.Status, "la nota no cambia si la venta sigue viva")
	require.NotNil(t, got.PurchaseOrder)
	assert.NotNil(t, reloadItem(t, st, inv.ID).SaleID)
}

func TestReprocess_ValidaTransicionSalvoForzado(t *testing.T) {
	st := memstore.New()
	inv, _ := seedInvoice(t, st, entity.StatusPending, "", "papelao", 500)
	uc := newStatusUC(st)

	_, err := uc.Reprocess(context.Background(), dto.ReprocessStatusRequest{InvoiceID: inv.ID, Status: "disponivel"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	res, err := uc.Reprocess(context.Background(), dto.ReprocessStatusRequest{InvoiceID: inv.ID, Status: "disponivel", Forced: true}, "")
	require.NoError(t, err)
	assert.True(t, res.Forced)
	assert.Equal(t, "Status da nota reprocessado com sucesso. (Alteração forçada)", res.Message)

	_, err = uc.Reprocess(context.Background(), dto.ReprocessStatusRequest{Status: "disponivel"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
