package entity

import "time"

// InvoiceStatus status del ciclo de vida de una nota fiscal.
type InvoiceStatus string

// Status de la nota fiscal. StatusInLot solo lo escribe la formación de lotes.
const (
	StatusAvailable InvoiceStatus = "disponivel"
	StatusPending   InvoiceStatus = "pendente"
	StatusOffered   InvoiceStatus = "ofertada"
	StatusShipped   InvoiceStatus = "enviada"
	StatusSold      InvoiceStatus = "vendida"
	StatusRejected  InvoiceStatus = "reprovada"
	StatusInLot     InvoiceStatus = "em_lote"
)

// Invoice representa una nota fiscal (NF-e) de proveedor.
type Invoice struct {
	ID             int64
	AccessKey      string // chave_nfe, 44 dígitos
	Number         string
	IssuedAt       time.Time
	IssuerTaxID    string
	IssuerName     string
	IssuerState    string
	RecipientTaxID string
	RecipientName  string
	RecipientState string
	Status         InvoiceStatus
	BusinessUnit   string  // unidade_gestora
	PurchaseOrder  *string // numero_pedido_compra, solo con venta activa
	LotNumber      *string // lote_associado
	CustomerID     *int64  // cliente resuelto por CNPJ del emisor
	XMLDigest      string
	UpdatedAt      *time.Time
	Items          []InvoiceItem
}

// HasPurchaseOrder indica si la nota conserva un pedido de compra.
func (i *Invoice) HasPurchaseOrder() bool {
	return i.PurchaseOrder != nil && *i.PurchaseOrder != ""
}
