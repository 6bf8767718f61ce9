package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta de material a un comprador.
type Sale struct {
	ID             int64
	BuyerName      string
	BuyerTaxID     string
	TotalValue     decimal.Decimal
	PurchaseOrder  string
	BusinessUnit   string
	SaleDate       time.Time
	Notes          string
	ServiceInvoice string // numero_nf_servico
	FinalCustomer  string // cliente_final
	PricePerTon    decimal.Decimal
	RegisteredAt   time.Time
}
