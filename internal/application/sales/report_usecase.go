package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/inventory"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

const materialChartLimit = 10

// ReportUseCase historial, métricas, gráficos y detalle de ventas.
type ReportUseCase struct {
	sales     repository.SaleRepository
	analytics repository.AnalyticsRepository
	pdf       StatementPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(sales repository.SaleRepository, analytics repository.AnalyticsRepository, pdf StatementPDFGenerator) *ReportUseCase {
	return &ReportUseCase{sales: sales, analytics: analytics, pdf: pdf}
}

// History ventas filtradas por cliente, pedido y fecha, con las toneladas vinculadas.
func (uc *ReportUseCase) History(ctx context.Context, q dto.SaleHistoryQuery) ([]dto.SaleHistoryItem, error) {
	date, err := parseOptionalDate("data", q.Date)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analytics.SalesHistory(ctx, repository.SaleFilter{
		Buyer:         strings.TrimSpace(q.Buyer),
		PurchaseOrder: strings.TrimSpace(q.PurchaseOrder),
		Date:          date,
	})
	if err != nil {
		return nil, fmt.Errorf("vendas: histórico: %w", err)
	}
	out := make([]dto.SaleHistoryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SaleHistoryItem{
			ID:            r.ID,
			BuyerName:     r.BuyerName,
			PurchaseOrder: r.PurchaseOrder,
			SaleDate:      r.SaleDate,
			TotalValue:    r.TotalValue,
			BusinessUnit:  r.BusinessUnit,
			Tons:          r.Tons,
		})
	}
	return out, nil
}

// Metrics totales del período; sin fechas cubre todo el historial.
func (uc *ReportUseCase) Metrics(ctx context.Context, q dto.SalesPeriodQuery) (*dto.SalesMetricsResponse, error) {
	from, to, err := period(q)
	if err != nil {
		return nil, err
	}
	m, err := uc.analytics.SalesMetrics(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("vendas: métricas: %w", err)
	}
	return &dto.SalesMetricsResponse{
		TotalSales:    m.TotalSales,
		TotalValue:    m.TotalValue,
		AverageTicket: m.AverageTicket,
		Customers:     m.Customers,
	}, nil
}

// Charts serie del tipo pedido. En vendas_por_material el valor se estima con el precio
// de referencia por tonelada y se devuelven los 10 mayores.
func (uc *ReportUseCase) Charts(ctx context.Context, q dto.SalesPeriodQuery) ([]dto.ChartPointResponse, error) {
	kind := repository.ChartKind(q.Kind)
	switch kind {
	case repository.ChartSalesByPeriod, repository.ChartTopCustomers, repository.ChartSalesByMaterial:
	default:
		return nil, domain.NewValidationError("tipo", "Tipo de gráfico inválido.")
	}
	from, to, err := period(q)
	if err != nil {
		return nil, err
	}
	points, err := uc.analytics.SalesChart(ctx, kind, from, to)
	if err != nil {
		return nil, fmt.Errorf("vendas: gráfico %s: %w", kind, err)
	}

	out := make([]dto.ChartPointResponse, 0, len(points))
	for _, p := range points {
		point := dto.ChartPointResponse{Label: p.Label, Value: p.Value, Quantity: p.Quantity}
		if kind == repository.ChartSalesByMaterial && p.Quantity != nil {
			point.Value = inventory.EstimatedValue(p.Label, *p.Quantity).Round(2)
		}
		out = append(out, point)
	}
	if kind == repository.ChartSalesByMaterial {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
		if len(out) > materialChartLimit {
			out = out[:materialChartLimit]
		}
	}
	return out, nil
}

// ManagingUnits unidades gestoras con ventas.
func (uc *ReportUseCase) ManagingUnits(ctx context.Context) ([]string, error) {
	units, err := uc.analytics.ManagingUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("vendas: unidades gestoras: %w", err)
	}
	if units == nil {
		units = []string{}
	}
	return units, nil
}

// Materials materiales distintos presentes en las notas.
func (uc *ReportUseCase) Materials(ctx context.Context) ([]string, error) {
	materials, err := uc.analytics.DistinctMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("vendas: materiais: %w", err)
	}
	if materials == nil {
		materials = []string{}
	}
	return materials, nil
}

// Details venta con sus ítems, agrupados por material. El total de cada grupo es
// toneladas × valor por tonelada; el último grupo absorbe el redondeo hasta el valor total.
func (uc *ReportUseCase) Details(ctx context.Context, saleID int64) (*dto.SaleDetailsResponse, error) {
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("vendas: venda %d: %w", saleID, err)
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venda %d não encontrada", domain.ErrNotFound, saleID)
	}
	rows, err := uc.analytics.SaleItems(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("vendas: itens da venda %d: %w", saleID, err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Material != rows[j].Material {
			return rows[i].Material < rows[j].Material
		}
		return rows[i].Description < rows[j].Description
	})

	out := &dto.SaleDetailsResponse{
		Success: true,
		Sale: dto.SaleView{
			ID:                 sale.ID,
			BuyerName:          sale.BuyerName,
			BuyerTaxID:         sale.BuyerTaxID,
			TotalValue:         sale.TotalValue,
			PurchaseOrder:      sale.PurchaseOrder,
			BusinessUnit:       sale.BusinessUnit,
			SaleDate:           sale.SaleDate,
			SaleDateFormatted:  sale.SaleDate.Format(dateFormatBR),
			Notes:              sale.Notes,
			ServiceInvoice:     sale.ServiceInvoice,
			FinalCustomer:      sale.FinalCustomer,
			PricePerTon:        sale.PricePerTon,
			RegisteredAt:       sale.RegisteredAt,
			RegisteredAtFormat: sale.RegisteredAt.Format(dateTimeFormatBR),
		},
		Items: make([]dto.SaleItemView, 0, len(rows)),
	}

	groupIndex := map[string]int{}
	totalTons := decimal.Zero
	for _, r := range rows {
		tons := inventory.KgToTons(r.Quantity)
		reference := inventory.ReferencePricePerTon(r.Material)
		item := dto.SaleItemView{
			ID:                 r.ItemID,
			Material:           r.Material,
			Quantity:           r.Quantity,
			QuantityTons:       tons,
			Unit:               r.Unit,
			Description:        r.Description,
			InvoiceNumber:      r.InvoiceNumber,
			IssuerName:         r.IssuerName,
			IssuerTaxID:        r.IssuerTaxID,
			IssuedAt:           r.IssuedAt,
			EstimatedUnitPrice: reference,
			EstimatedTotal:     reference.Mul(tons).Round(2),
			UnitPrice:          sale.PricePerTon,
			ItemTotal:          sale.PricePerTon.Mul(tons).Round(2),
		}
		out.Items = append(out.Items, item)
		totalTons = totalTons.Add(tons)

		idx, ok := groupIndex[r.Material]
		if !ok {
			idx = len(out.ByMaterial)
			groupIndex[r.Material] = idx
			out.ByMaterial = append(out.ByMaterial, dto.MaterialGroup{
				Material:  r.Material,
				UnitPrice: sale.PricePerTon,
			})
		}
		g := &out.ByMaterial[idx]
		g.QuantityTn = g.QuantityTn.Add(tons)
		g.Items = append(g.Items, item)
	}

	allocated := decimal.Zero
	for i := range out.ByMaterial {
		g := &out.ByMaterial[i]
		if i == len(out.ByMaterial)-1 {
			g.TotalValue = sale.TotalValue.Sub(allocated)
			break
		}
		g.TotalValue = g.QuantityTn.Mul(sale.PricePerTon).Round(2)
		allocated = allocated.Add(g.TotalValue)
	}

	out.Totals = dto.SaleTotals{
		TotalItems:    len(out.Items),
		TotalQuantity: totalTons,
		TotalValue:    sale.TotalValue,
		PricePerTon:   sale.PricePerTon,
	}
	return out, nil
}

// PDF extracto de la venta.
func (uc *ReportUseCase) PDF(ctx context.Context, saleID int64) ([]byte, error) {
	details, err := uc.Details(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if uc.pdf == nil {
		return nil, fmt.Errorf("vendas: gerador de PDF não configurado")
	}
	data, err := uc.pdf.Generate(details)
	if err != nil {
		return nil, fmt.Errorf("vendas: gerar PDF da venda %d: %w", saleID, err)
	}
	return data, nil
}

// period fechas opcionales; dataFim incluye el día entero.
func period(q dto.SalesPeriodQuery) (*time.Time, *time.Time, error) {
	from, err := parseOptionalDate("dataInicio", q.From)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseOptionalDate("dataFim", q.To)
	if err != nil {
		return nil, nil, err
	}
	if to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, domain.NewValidationError("dataInicio", "data inicial posterior à data final")
	}
	return from, to, nil
}
