package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/domain"
)

// RegisterSaleRequest body para POST /api/sales/register.
// SaleDate acepta AAAA-MM-DD o RFC3339.
type RegisterSaleRequest struct {
	ItemIDs        []int64          `json:"itens_vendidos_ids"`
	BuyerName      string           `json:"cliente_nome"`
	BuyerTaxID     string           `json:"cliente_documento,omitempty"`
	TotalValue     *decimal.Decimal `json:"valor_total"`
	PurchaseOrder  string           `json:"numero_pedido_compra"`
	BusinessUnit   string           `json:"unidade_gestora"`
	SaleDate       string           `json:"data_venda"`
	Notes          string           `json:"observacoes,omitempty"`
	ServiceInvoice string           `json:"numero_nf_servico,omitempty"`
	FinalCustomer  string           `json:"cliente_final,omitempty"`
	PricePerTon    *decimal.Decimal `json:"valor_por_tonelada,omitempty"`
}

// RegisteredSale datos de la venta registrada.
type RegisteredSale struct {
	SaleID          int64           `json:"venda_id"`
	BuyerName       string          `json:"cliente_nome"`
	TotalValue      decimal.Decimal `json:"valor_total"`
	ItemsSold       int             `json:"itens_vendidos"`
	InvoicesUpdated int64           `json:"notas_atualizadas"`
}

// RegisterSaleResponse respuesta del registro de venta.
type RegisterSaleResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Sale    RegisteredSale `json:"dados_venda"`
}

// ValidateSaleRequest body para POST /api/sales/validate.
type ValidateSaleRequest struct {
	ItemIDs       []int64          `json:"itens_vendidos_ids"`
	BuyerName     string           `json:"cliente_nome"`
	TotalValue    *decimal.Decimal `json:"valor_total"`
	BusinessUnit  string           `json:"unidade_gestora"`
	PurchaseOrder string           `json:"numero_pedido_compra"`
}

// SaleValidationSummary resumen de un lote de venta válido.
type SaleValidationSummary struct {
	TotalItems          int      `json:"total_itens"`
	TotalValue          string   `json:"valor_total"`
	DistinctMaterials   int      `json:"materiais_diferentes"`
	Buyer               string   `json:"cliente"`
	BusinessUnit        string   `json:"unidade_gestora"`
	PurchaseOrder       string   `json:"numero_pedido_compra"`
	PurchaseOrdersFound []string `json:"pedidos_compra_encontrados"`
}

// ValidatedItem ítem aprobado por la validación.
type ValidatedItem struct {
	ID              int64           `json:"id"`
	Material        string          `json:"material"`
	Quantity        decimal.Decimal `json:"quantidade"`
	InvoiceNumber   string          `json:"numero_nota"`
	CurrentPurchase *string         `json:"pedido_atual"`
}

// ValidateSaleResponse lote de venta validado.
type ValidateSaleResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Summary SaleValidationSummary `json:"resumo"`
	Items   []ValidatedItem       `json:"itens_validados"`
}

// SaleValidationFailure cuerpo 400 de una validación rechazada.
type SaleValidationFailure struct {
	Success        bool                   `json:"success"`
	Message        string                 `json:"message"`
	Details        map[string]any         `json:"detalhes,omitempty"`
	ItemProblems   []domain.SaleProblem   `json:"itens_com_problemas,omitempty"`
	ValidItems     *int                   `json:"itens_validos,omitempty"`
	StockShortages []domain.StockShortage `json:"disponibilidade_estoque,omitempty"`
}

// ItemValidationInfo datos del ítem validado individualmente.
type ItemValidationInfo struct {
	ID              int64           `json:"id"`
	Material        string          `json:"material"`
	Quantity        decimal.Decimal `json:"quantidade"`
	InvoiceNumber   string          `json:"numero_nota"`
	IssuerName      string          `json:"emitente_nome"`
	InvoiceStatus   string          `json:"status_nota"`
	CurrentPurchase *string         `json:"pedido_atual"`
}

// ItemValidation resultado de la validación individual.
type ItemValidation struct {
	Valid          bool            `json:"is_valido"`
	Problems       []string        `json:"problemas"`
	Warnings       []string        `json:"avisos"`
	AvailableStock decimal.Decimal `json:"quantidade_disponivel_estoque"`
}

// ValidateItemResponse respuesta de GET /api/sales/validate/item/:id.
type ValidateItemResponse struct {
	Success    bool               `json:"success"`
	Item       ItemValidationInfo `json:"item"`
	Validation ItemValidation     `json:"validacao"`
}

// ValidationStatsResponse estadísticas de validación.
type ValidationStatsResponse struct {
	Success bool `json:"success"`
	Stats   struct {
		Sales struct {
			Total             int64           `json:"total"`
			Last30Days        int64           `json:"ultimos_30_dias"`
			TotalValue        decimal.Decimal `json:"valor_total"`
			DistinctCustomers int64           `json:"clientes_diferentes"`
		} `json:"vendas"`
		Items struct {
			Total         int64 `json:"total"`
			InvalidStatus int64 `json:"status_invalido"`
			AlreadySold   int64 `json:"ja_vendidos"`
		} `json:"itens"`
	} `json:"estatisticas"`
}

// SaleReversalResponse resultado de DELETE /api/sales/:id.
type SaleReversalResponse struct {
	Success          bool    `json:"success"`
	Message          string  `json:"message"`
	SaleID           int64   `json:"venda_id"`
	ItemsUnlinked    int64   `json:"itens_desvinculados"`
	InvoicesReopened []int64 `json:"notas_reabertas"`
}

// SaleHistoryItem venta resumida del historial.
type SaleHistoryItem struct {
	ID            int64           `json:"id"`
	BuyerName     string          `json:"cliente_nome"`
	PurchaseOrder string          `json:"numero_pedido_compra"`
	SaleDate      time.Time       `json:"data_venda"`
	TotalValue    decimal.Decimal `json:"valor_total"`
	BusinessUnit  string          `json:"unidade_gestora"`
	Tons          decimal.Decimal `json:"toneladas"`
}

// SalesMetricsResponse métricas del período.
type SalesMetricsResponse struct {
	TotalSales    int64           `json:"total_vendas"`
	TotalValue    decimal.Decimal `json:"valor_total_vendido"`
	AverageTicket decimal.Decimal `json:"ticket_medio"`
	Customers     int64           `json:"total_clientes"`
}

// ChartPointResponse punto de gráfico.
type ChartPointResponse struct {
	Label    string           `json:"label"`
	Value    decimal.Decimal  `json:"valor"`
	Quantity *decimal.Decimal `json:"quantidade,omitempty"`
}

// SaleView cabecera de venta en el detalle.
type SaleView struct {
	ID                 int64           `json:"id"`
	BuyerName          string          `json:"cliente_nome"`
	BuyerTaxID         string          `json:"cliente_documento"`
	TotalValue         decimal.Decimal `json:"valor_total"`
	PurchaseOrder      string          `json:"numero_pedido_compra"`
	BusinessUnit       string          `json:"unidade_gestora"`
	SaleDate           time.Time       `json:"data_venda"`
	SaleDateFormatted  string          `json:"data_venda_formatada"`
	Notes              string          `json:"observacoes"`
	ServiceInvoice     string          `json:"numero_nf_servico"`
	FinalCustomer      string          `json:"cliente_final"`
	PricePerTon        decimal.Decimal `json:"valor_por_tonelada"`
	RegisteredAt       time.Time       `json:"data_registro"`
	RegisteredAtFormat string          `json:"data_registro_formatada"`
}

// SaleItemView ítem vinculado a la venta.
type SaleItemView struct {
	ID                 int64           `json:"id"`
	Material           string          `json:"material"`
	Quantity           decimal.Decimal `json:"quantidade"`
	QuantityTons       decimal.Decimal `json:"quantidade_ton"`
	Unit               string          `json:"unidade"`
	Description        string          `json:"descricao"`
	InvoiceNumber      string          `json:"numero_nota"`
	IssuerName         string          `json:"emitente_nome"`
	IssuerTaxID        string          `json:"emitente_cnpj"`
	IssuedAt           time.Time       `json:"data_emissao"`
	EstimatedUnitPrice decimal.Decimal `json:"valor_unitario_estimado"`
	EstimatedTotal     decimal.Decimal `json:"valor_total_item_estimado"`
	UnitPrice          decimal.Decimal `json:"valor_unitario"`
	ItemTotal          decimal.Decimal `json:"valor_total_item"`
}

// MaterialGroup ítems de la venta agrupados por material.
type MaterialGroup struct {
	Material   string          `json:"material"`
	QuantityTn decimal.Decimal `json:"quantidade"`
	UnitPrice  decimal.Decimal `json:"valor_unitario"`
	TotalValue decimal.Decimal `json:"valor_total"`
	Items      []SaleItemView  `json:"itens"`
}

// SaleTotals totales del detalle.
type SaleTotals struct {
	TotalItems    int             `json:"total_itens"`
	TotalQuantity decimal.Decimal `json:"total_quantidade"`
	TotalValue    decimal.Decimal `json:"total_valor"`
	PricePerTon   decimal.Decimal `json:"valor_por_tonelada"`
}

// SaleDetailsResponse respuesta de GET /api/sales/:id.
type SaleDetailsResponse struct {
	Success    bool            `json:"success"`
	Sale       SaleView        `json:"venda"`
	Items      []SaleItemView  `json:"itens"`
	ByMaterial []MaterialGroup `json:"itens_por_material"`
	Totals     SaleTotals      `json:"totais"`
}

// SaleHistoryQuery filtros de GET /api/sales.
type SaleHistoryQuery struct {
	Buyer         string `query:"cliente"`
	PurchaseOrder string `query:"pedido"`
	Date          string `query:"data"`
}

// SalesPeriodQuery período opcional de métricas y gráficos (AAAA-MM-DD).
type SalesPeriodQuery struct {
	From string `query:"dataInicio"`
	To   string `query:"dataFim"`
	Kind string `query:"tipo"`
}
