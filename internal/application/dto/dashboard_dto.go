package dto

import "github.com/shopspring/decimal"

// SalesSummaryDTO respuesta de GET /api/dashboard/sales-summary.
type SalesSummaryDTO struct {
	SoldInvoices    int64           `json:"totalNotasVendidas"`
	SoldValue       decimal.Decimal `json:"valorTotalVendidas"` // suma de vendas.valor_total
	OfferedInvoices int64           `json:"totalNotasOfertadas"`
	InLotInvoices   int64           `json:"totalNotasEmLote"`
	Sales           int64           `json:"totalVendas"`
}

// StatusCountsResponse cantidad de notas por status, con todos los status presentes.
type StatusCountsResponse struct {
	Success bool             `json:"success"`
	Counts  map[string]int64 `json:"counts"`
}

// MaterialsByStatus cantidades por material normalizado y status, más "total".
type MaterialsByStatus map[string]map[string]decimal.Decimal
