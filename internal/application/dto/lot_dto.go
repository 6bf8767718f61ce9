package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
)

// LotSearchRequest filtros de GET /api/lots/available-invoices.
type LotSearchRequest struct {
	Material   string          `query:"material"`
	CustomerID int64           `query:"clienteId"`
	Year       int             `query:"ano"`
	Quantity   decimal.Decimal `query:"quantidade"`
}

// LotSearchResponse notas seleccionadas para el lote, o el motivo del fallo.
type LotSearchResponse struct {
	Success  bool                  `json:"success"`
	Message  string                `json:"message,omitempty"`
	Invoices []entity.LotCandidate `json:"notas,omitempty"`
	Total    *decimal.Decimal      `json:"total,omitempty"`
	Target   *decimal.Decimal      `json:"alvo,omitempty"`
	Limit    *decimal.Decimal      `json:"limite,omitempty"`
}

// CreateLotRequest body para POST /api/lots/create.
type CreateLotRequest struct {
	BusinessUnit string  `json:"unidadeGestora"`
	InvoiceIDs   []int64 `json:"notasIds"`
}

// CreateLotResponse lote creado.
type CreateLotResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	LotNumber       string `json:"loteNumero"`
	InvoicesUpdated int64  `json:"notas_atualizadas"`
}

// LotCustomerResponse cliente con notas disponibles del material.
type LotCustomerResponse struct {
	CustomerID *int64 `json:"cliente_id"`
	Name       string `json:"nome"`
}
