package entity

import "time"

// Customer representa un cliente (proveedor de material reciclable) identificado por CNPJ.
type Customer struct {
	ID           int64
	CNPJ         string // 14 dígitos
	LegalName    string // razão social
	TradeName    string
	Address      string
	City         string
	State        string
	ZipCode      string
	Email        string
	Phone        string
	WhatsApp     string
	ContactName  string
	Active       bool
	RegisteredAt time.Time
	// Materials materiales entregados (agregado de las notas del emisor); solo lectura.
	Materials string
}
