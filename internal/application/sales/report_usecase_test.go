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
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/memstore"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

type fakePDF struct {
	got *dto.SaleDetailsResponse
	err error
}

func (f *fakePDF) Generate(d *dto.SaleDetailsResponse) ([]byte, error) {
	f.got = d
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4"), nil
}

// soldFixture venta de 1,5 t de papelão y 0,333 t de plástico a 500/t, total 917.
func soldFixture(t *testing.T) (*memstore.Store, int64) {
	t.Helper()
	st := memstore.New()
	_, papel := seedInvoice(t, st, entity.StatusAvailable, "", "papelao", 1500)
	_, plast := seedInvoice(t, st, entity.StatusAvailable, "", "plastico", 333)
	req := registerRequest(papel.ID, plast.ID)
	req.TotalValue = dec("917")
	req.PricePerTon = dec("500")
	res, err := sales.NewRegisterUseCase(st, logger.Nop()).Register(context.Background(), req)
	require.NoError(t, err)
	return st, res.Sale.SaleID
}

func TestDetails_UltimoGrupoAbsorbeRedondeo(t *testing.T) {
	st, saleID := soldFixture(t)
	uc := sales.NewReportUseCase(st.Sales(), st.Analytics(), nil)

	res, err := uc.Details(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, "10/04/2024", res.Sale.SaleDateFormatted)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "papelao", res.Items[0].Material)
	assert.Equal(t, "1.5", res.Items[0].QuantityTons.String())
	assert.Equal(t, "750", res.Items[0].ItemTotal.String())
	assert.Equal(t, "900", res.Items[0].EstimatedTotal.String(), "papelão a 600/t de referencia")

	require.Len(t, res.ByMaterial, 2)
	assert.Equal(t, "750", res.ByMaterial[0].TotalValue.String())
	assert.Equal(t, "167", res.ByMaterial[1].TotalValue.String(), "917 - 750")
	assert.Equal(t, "1.833", res.Totals.TotalQuantity.String())
	assert.Equal(t, 2, res.Totals.TotalItems)

	_, err = uc.Details(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPDF_UsaElDetalle(t *testing.T) {
	st, saleID := soldFixture(t)
	gen := &fakePDF{}
	uc := sales.NewReportUseCase(st.Sales(), st.Analytics(), gen)

	data, err := uc.PDF(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	require.NotNil(t, gen.got)
	assert.Equal(t, saleID, gen.got.Sale.ID)

	gen.err = errors.New("fonte ausente")
	_, err = uc.PDF(context.Background(), saleID)
	assert.Error(t, err)
}

func TestCharts(t *testing.T) {
	st, _ := soldFixture(t)
	uc := sales.NewReportUseCase(st.Sales(), st.Analytics(), nil)
	ctx := context.Background()

	_, err := uc.Charts(ctx, dto.SalesPeriodQuery{Kind: "pizza"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	points, err := uc.Charts(ctx, dto.SalesPeriodQuery{Kind: "vendas_por_material"})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "papelao", points[0].Label)
	assert.Equal(t, "900", points[0].Value.String())
	assert.Equal(t, "333", points[1].Value.String())

	points, err = uc.Charts(ctx, dto.SalesPeriodQuery{Kind: "top_clientes", From: "2024-04-10", To: "2024-04-10"})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "Recicladora Sul", points[0].Label)

	_, err = uc.Charts(ctx, dto.SalesPeriodQuery{Kind: "top_clientes", From: "2024-05-01", To: "2024-04-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryYMetrics(t *testing.T) {
	st, saleID := soldFixture(t)
	uc := sales.NewReportUseCase(st.Sales(), st.Analytics(), nil)
	ctx := context.Background()

	rows, err := uc.History(ctx, dto.SaleHistoryQuery{Buyer: "recicladora", Date: "2024-04-10"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, saleID, rows[0].ID)
	assert.Equal(t, "1.833", rows[0].Tons.String())

	_, err = uc.History(ctx, dto.SaleHistoryQuery{Date: "ontem"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	m, err := uc.Metrics(ctx, dto.SalesPeriodQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.TotalSales)
	assert.Equal(t, "917", m.TotalValue.String())

	units, err := uc.ManagingUnits(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"UG Norte"}, units)
}
