package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/sales"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/memstore"
)

func newValidationUC(st *memstore.Store) *sales.ValidationUseCase {
	return sales.NewValidationUseCase(st.Items(), st.Analytics(), decimal.RequireFromString("0.01"))
}

func validateRequest(total string, ids ...int64) dto.ValidateSaleRequest {
	return dto.ValidateSaleRequest{
		ItemIDs:       ids,
		BuyerName:     "Recicladora Sul",
		TotalValue:    dec(total),
		BusinessUnit:  "UG Norte",
		PurchaseOrder: "PC-1",
	}
}

func TestValidate_LoteValido(t *testing.T) {
	st := memstore.New()
	_, papel := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000) // 600
	_, plast := seedInvoice(t, st, entity.StatusInLot, "", "plastico", 500)     // 500

	res, err := newValidationUC(st).Validate(context.Background(), validateRequest("1105", papel.ID, plast.ID))
	require.NoError(t, err, "1105 está dentro del 1% de 1100")
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Summary.TotalItems)
	assert.Equal(t, 2, res.Summary.DistinctMaterials)
	assert.Equal(t, "1105.00", res.Summary.TotalValue)
	assert.Len(t, res.Items, 2)
}

func TestValidate_ItemsNoEncontrados(t *testing.T) {
	st := memstore.New()
	_, item := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000)

	_, err := newValidationUC(st).Validate(context.Background(), validateRequest("600", item.ID, 404))
	var sve *domain.SaleValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, "Alguns itens não foram encontrados no sistema.", sve.Reason)
	assert.Equal(t, 2, sve.Details["itens_solicitados"])
	assert.Equal(t, 1, sve.Details["itens_encontrados"])
}

func TestValidate_ValorFueraDeTolerancia(t *testing.T) {
	st := memstore.New()
	_, item := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000)

	_, err := newValidationUC(st).Validate(context.Background(), validateRequest("700", item.ID))
	var sve *domain.SaleValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, "Valor total não corresponde à soma dos itens.", sve.Reason)
	assert.Equal(t, "600.00", sve.Details["valor_calculado"])
	assert.Equal(t, "700.00", sve.Details["valor_recebido"])
	assert.Equal(t, "100.00", sve.Details["diferenca"])
}

func TestValidate_ProblemasPorItem(t *testing.T) {
	st := memstore.New()
	_, ok := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000)
	_, offered := seedInvoice(t, st, entity.StatusOffered, "", "papelao", 1000)
	_, otherPO := seedInvoice(t, st, entity.StatusAvailable, "PC-OUTRO", "papelao", 1000)

	_, err := newValidationUC(st).Validate(context.Background(), validateRequest("1800", ok.ID, offered.ID, otherPO.ID))
	var sve *domain.SaleValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, "Alguns itens possuem problemas que impedem a venda.", sve.Reason)
	assert.Equal(t, 1, sve.ValidItems)
	require.Len(t, sve.ItemProblems, 2)
	assert.Equal(t, offered.ID, sve.ItemProblems[0].ItemID)
	assert.Contains(t, sve.ItemProblems[0].Problems[0], "ofertada")
	assert.Equal(t, "PC-OUTRO", sve.ItemProblems[1].CurrentPurchase)
}

func TestValidate_CamposObligatoriosAlFinal(t *testing.T) {
	st := memstore.New()
	_, item := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1000)
	req := validateRequest("600", item.ID)
	req.BuyerName = ""

	_, err := newValidationUC(st).Validate(context.Background(), req)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cliente_nome", ve.Field)

	_, err = newValidationUC(st).Validate(context.Background(), dto.ValidateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateItem_ProblemasYAvisos(t *testing.T) {
	st := memstore.New()
	_, inLot := seedInvoice(t, st, entity.StatusInLot, "PC-9", "papelao", 300)
	_, sold := seedInvoice(t, st, entity.StatusSold, "PC-1", "papelao", 300)
	uc := newValidationUC(st)
	ctx := context.Background()

	res, err := uc.ValidateItem(ctx, inLot.ID)
	require.NoError(t, err)
	assert.True(t, res.Validation.Valid)
	assert.Len(t, res.Validation.Warnings, 2)
	assert.Equal(t, "300", res.Validation.AvailableStock.String())

	res, err = uc.ValidateItem(ctx, sold.ID)
	require.NoError(t, err)
	assert.False(t, res.Validation.Valid)
	assert.NotEmpty(t, res.Validation.Problems)

	_, err = uc.ValidateItem(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStats(t *testing.T) {
	st := memstore.New()
	seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 300)
	seedInvoice(t, st, entity.StatusRejected, "", "papelao", 300)

	res, err := newValidationUC(st).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Stats.Items.Total)
	assert.Equal(t, int64(1), res.Stats.Items.InvalidStatus)
	assert.Equal(t, int64(0), res.Stats.Sales.Total)
}
