package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
)

// StatusCount cantidad de notas en un status.
type StatusCount struct {
	Status entity.InvoiceStatus
	Count  int64
}

// MaterialStatusTotal cantidad de un material (nombre crudo) en notas de un status.
type MaterialStatusTotal struct {
	Material string
	Status   entity.InvoiceStatus
	Total    decimal.Decimal
}

// InvoiceLine fila nota + ítem (LEFT JOIN: los campos del ítem pueden venir vacíos).
type InvoiceLine struct {
	InvoiceID     int64
	Number        string
	IssuedAt      time.Time
	IssuerName    string
	RecipientName string
	Status        entity.InvoiceStatus
	BusinessUnit  string
	PurchaseOrder *string
	ItemID        *int64
	NCM           *string
	Description   *string
	Material      *string
	Quantity      *decimal.Decimal
	Unit          *string
}

// SoldInvoice nota vendida para listados.
type SoldInvoice struct {
	Number        string
	RecipientName string
	IssuedAt      time.Time
	PurchaseOrder *string
}

// MaterialQuantity cantidad total por material.
type MaterialQuantity struct {
	Material string
	Quantity decimal.Decimal
}

// SaleFilter filtros del historial de ventas.
type SaleFilter struct {
	Buyer         string
	PurchaseOrder string
	Date          *time.Time
}

// SaleHistoryRow venta resumida con sus toneladas vinculadas.
type SaleHistoryRow struct {
	ID            int64
	BuyerName     string
	PurchaseOrder string
	SaleDate      time.Time
	TotalValue    decimal.Decimal
	BusinessUnit  string
	Tons          decimal.Decimal
}

// SalesMetrics agregados de ventas en un período.
type SalesMetrics struct {
	TotalSales    int64
	TotalValue    decimal.Decimal
	AverageTicket decimal.Decimal
	Customers     int64
}

// ChartKind tipo de serie para los gráficos de ventas.
type ChartKind string

const (
	ChartSalesByPeriod   ChartKind = "vendas_por_periodo"
	ChartTopCustomers    ChartKind = "top_clientes"
	ChartSalesByMaterial ChartKind = "vendas_por_material"
)

// ChartPoint punto de una serie. Quantity solo aplica a vendas_por_material.
type ChartPoint struct {
	Label    string
	Quantity *decimal.Decimal
	Value    decimal.Decimal
}

// SaleItemRow ítem vinculado a una venta con los datos de su nota.
type SaleItemRow struct {
	ItemID        int64
	Material      string
	Quantity      decimal.Decimal
	Unit          string
	Description   string
	InvoiceNumber string
	IssuerName    string
	IssuerTaxID   string
	IssuedAt      time.Time
}

// ValidationStats estadísticas para la pantalla de validación de lotes de venta.
type ValidationStats struct {
	TotalSales         int64
	SalesLast30Days    int64
	TotalValue         decimal.Decimal
	DistinctCustomers  int64
	TotalItems         int64
	ItemsInvalidStatus int64
	ItemsAlreadySold   int64
}

// LotCustomer cliente con notas disponibles de un material.
type LotCustomer struct {
	CustomerID *int64
	IssuerName string
}

// AnalyticsRepository consultas de lectura para reportes y dashboards.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	StatusCounts(ctx context.Context) ([]StatusCount, error)
	MaterialsByStatus(ctx context.Context) ([]MaterialStatusTotal, error)
	AvailableYears(ctx context.Context) ([]int, error)

	// ── Listados de notas ─────────────────────────────────────────────────────

	InvoiceLinesByCustomer(ctx context.Context, name string, year *int) ([]InvoiceLine, error)
	InvoiceLinesByNumbers(ctx context.Context, numbers []string) ([]InvoiceLine, error)
	InvoiceLinesByPurchaseOrder(ctx context.Context, purchaseOrder string) ([]InvoiceLine, error)
	// InvoiceLinesForSale notas disponivel/ofertada con sus ítems; filtros opcionales.
	InvoiceLinesForSale(ctx context.Context, number string, status *entity.InvoiceStatus) ([]InvoiceLine, error)
	SoldInvoices(ctx context.Context) ([]SoldInvoice, error)
	SoldMaterials(ctx context.Context) ([]MaterialQuantity, error)

	// ── Ventas ────────────────────────────────────────────────────────────────

	SalesHistory(ctx context.Context, filter SaleFilter) ([]SaleHistoryRow, error)
	SalesMetrics(ctx context.Context, from, to *time.Time) (SalesMetrics, error)
	SalesChart(ctx context.Context, kind ChartKind, from, to *time.Time) ([]ChartPoint, error)
	ManagingUnits(ctx context.Context) ([]string, error)
	DistinctMaterials(ctx context.Context) ([]string, error)
	SaleItems(ctx context.Context, saleID int64) ([]SaleItemRow, error)
	ValidationStats(ctx context.Context, since time.Time) (ValidationStats, error)

	// ── Lotes ─────────────────────────────────────────────────────────────────

	LotCustomers(ctx context.Context, material string, year *int) ([]LotCustomer, error)
}
