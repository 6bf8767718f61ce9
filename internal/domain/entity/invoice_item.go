package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem representa una línea de una nota fiscal.
type InvoiceItem struct {
	ID          int64
	InvoiceID   int64
	NCM         string
	Description string
	Quantity    decimal.Decimal // convencionalmente kg
	Unit        string
	Material    string
	CFOP        *string
	SaleID      *int64
}

// SaleCandidate ítem con los datos de su nota padre, usado en la validación de venta.
type SaleCandidate struct {
	ItemID          int64
	Material        string
	Quantity        decimal.Decimal
	SaleID          *int64
	InvoiceID       int64
	InvoiceNumber   string
	IssuerName      string
	InvoiceStatus   InvoiceStatus
	CurrentPurchase *string
}

// LotCandidate nota disponible para formar lote, con la cantidad total del material pedido.
type LotCandidate struct {
	InvoiceID     int64           `json:"id"`
	InvoiceNumber string          `json:"numeroNF"`
	IssuedAt      time.Time       `json:"dataEmissao"`
	IssuerName    string          `json:"emitenteNome"`
	Material      string          `json:"material"`
	Quantity      decimal.Decimal `json:"quantidade"`
	CustomerID    *int64          `json:"cliente_id"`
}
