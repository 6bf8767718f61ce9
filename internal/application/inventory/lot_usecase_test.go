package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/inventory"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	domaininv "github.com/jhoicas/reciclagem-api/internal/domain/inventory"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/memstore"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

var keySeq int

// seedAvailable crea una nota disponivel de papelao con un único ítem de kg.
func seedAvailable(t *testing.T, st *memstore.Store, customerID *int64, issuer string, day int, kg int64) *entity.Invoice {
	t.Helper()
	ctx := context.Background()
	keySeq++
	inv := &entity.Invoice{
		AccessKey:    fmt.Sprintf("%044d", keySeq),
		Number:       fmt.Sprintf("NF-%d", keySeq),
		IssuedAt:     time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		IssuerTaxID:  "12345678000190",
		IssuerName:   issuer,
		CustomerID:   customerID,
		Status:       entity.StatusAvailable,
		BusinessUnit: "UG Norte",
	}
	require.NoError(t, st.Invoices().Create(ctx, inv))
	require.NoError(t, st.Items().Create(ctx, &entity.InvoiceItem{
		InvoiceID:   inv.ID,
		NCM:         "47079000",
		Description: "Aparas de papelão",
		Quantity:    decimal.NewFromInt(kg),
		Unit:        "KG",
		Material:    "papelao",
	}))
	return inv
}

func setStatus(t *testing.T, st *memstore.Store, invoiceID int64, status entity.InvoiceStatus) {
	t.Helper()
	_, _, err := st.Invoices().ApplyPatch(context.Background(), invoiceID, repository.InvoicePatch{Status: &status})
	require.NoError(t, err)
}

func newLotUseCase(st *memstore.Store) *inventory.LotUseCase {
	return inventory.NewLotUseCase(st, st.Items(), st.Analytics(), domaininv.DefaultLotTolerance, logger.Nop())
}

func search(customerID int64, qty int64) dto.LotSearchRequest {
	return dto.LotSearchRequest{
		Material:   "papelao",
		CustomerID: customerID,
		Year:       2024,
		Quantity:   decimal.NewFromInt(qty),
	}
}

func id(v int64) *int64 { return &v }

// ─── AvailableInvoices ─────────────────────────────────────────────────────────

func TestAvailableInvoices_TresDe400NoAlcanzan1000(t *testing.T) {
	st := memstore.New()
	for day := 1; day <= 3; day++ {
		seedAvailable(t, st, id(1), "Cooperativa A", day, 400)
	}

	res, err := newLotUseCase(st).AvailableInvoices(context.Background(), search(1, 1000))
	require.NoError(t, err, "cantidad insuficiente no es un error de la petición")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "800", "la tercera nota superaría el límite de 1050")
	assert.Empty(t, res.Invoices)
}

func TestAvailableInvoices_DosDe600SoloTomaLaPrimera(t *testing.T) {
	st := memstore.New()
	seedAvailable(t, st, id(1), "Cooperativa A", 1, 600)
	seedAvailable(t, st, id(1), "Cooperativa A", 2, 600)

	res, err := newLotUseCase(st).AvailableInvoices(context.Background(), search(1, 1000))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "600")
}

func TestAvailableInvoices_CompletaConOtrosClientes(t *testing.T) {
	st := memstore.New()
	own := seedAvailable(t, st, id(1), "Cooperativa A", 5, 500)
	other := seedAvailable(t, st, id(2), "Cooperativa B", 1, 520)
	seedAvailable(t, st, nil, "Sem cadastro", 2, 900)

	res, err := newLotUseCase(st).AvailableInvoices(context.Background(), search(1, 1000))
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	require.Len(t, res.Invoices, 2)
	assert.Equal(t, own.ID, res.Invoices[0].InvoiceID, "el cliente prioritario va primero aunque sea más reciente")
	assert.Equal(t, other.ID, res.Invoices[1].InvoiceID, "la nota de 900 superaría el límite")
	assert.Equal(t, "1020", res.Total.String())
	assert.Equal(t, "1000", res.Target.String())
	assert.Equal(t, "1050", res.Limit.String())
}

func TestAvailableInvoices_PrimeraNotaSiempreSeAcepta(t *testing.T) {
	st := memstore.New()
	seedAvailable(t, st, id(1), "Cooperativa A", 1, 1500)

	res, err := newLotUseCase(st).AvailableInvoices(context.Background(), search(1, 1000))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "1500", res.Total.String())
}

func TestAvailableInvoices_CamposObligatorios(t *testing.T) {
	uc := newLotUseCase(memstore.New())
	_, err := uc.AvailableInvoices(context.Background(), dto.LotSearchRequest{Material: "papelao"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	for _, field := range []string{"clienteId", "ano", "quantidade"} {
		assert.Contains(t, err.Error(), field)
	}
}

// ─── ClientsByMaterial ─────────────────────────────────────────────────────────

func TestClientsByMaterial(t *testing.T) {
	st := memstore.New()
	seedAvailable(t, st, id(7), "Cooperativa A", 1, 100)
	seedAvailable(t, st, nil, "Sem cadastro", 2, 100)

	out, err := newLotUseCase(st).ClientsByMaterial(context.Background(), "Papelao", nil)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Cooperativa A", out[0].Name)
	assert.Equal(t, int64(7), *out[0].CustomerID)
	assert.Nil(t, out[1].CustomerID)

	_, err = newLotUseCase(st).ClientsByMaterial(context.Background(), " ", nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ─── Create ────────────────────────────────────────────────────────────────────

func TestCreate_VinculaNotasDisponibles(t *testing.T) {
	st := memstore.New()
	a := seedAvailable(t, st, id(1), "Cooperativa A", 1, 400)
	b := seedAvailable(t, st, id(1), "Cooperativa A", 2, 400)
	setStatus(t, st, b.ID, entity.StatusSold)

	res, err := newLotUseCase(st).Create(context.Background(), dto.CreateLotRequest{
		BusinessUnit: "UG Sul",
		InvoiceIDs:   []int64{a.ID, b.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.InvoicesUpdated, "solo cambia la nota disponivel")
	assert.Regexp(t, `^LOTE-\d+$`, res.LotNumber)

	got, err := st.Invoices().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInLot, got.Status)
	assert.Equal(t, "UG Sul", got.BusinessUnit)
	require.NotNil(t, got.LotNumber)
	assert.Equal(t, res.LotNumber, *got.LotNumber)
}

func TestCreate_NingunaDisponibleEsConflicto(t *testing.T) {
	st := memstore.New()
	a := seedAvailable(t, st, id(1), "Cooperativa A", 1, 400)
	setStatus(t, st, a.ID, entity.StatusOffered)

	_, err := newLotUseCase(st).Create(context.Background(), dto.CreateLotRequest{
		BusinessUnit: "UG Sul",
		InvoiceIDs:   []int64{a.ID},
	})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}
