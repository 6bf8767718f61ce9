// Package lifecycle define el ciclo de vida de la nota fiscal: status válidos,
// transiciones permitidas y los efectos sobre el pedido de compra.
package lifecycle

import (
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
)

// adjacency transiciones permitidas sin modo forzado.
var adjacency = map[entity.InvoiceStatus][]entity.InvoiceStatus{
	entity.StatusAvailable: {entity.StatusShipped, entity.StatusPending, entity.StatusOffered},
	entity.StatusPending:   {entity.StatusOffered, entity.StatusShipped, entity.StatusRejected},
	entity.StatusOffered:   {entity.StatusOffered, entity.StatusSold, entity.StatusRejected},
	entity.StatusShipped:   {entity.StatusOffered, entity.StatusSold, entity.StatusRejected},
	entity.StatusSold:      {entity.StatusAvailable},
	entity.StatusRejected:  {entity.StatusAvailable},
	entity.StatusInLot:     {entity.StatusAvailable, entity.StatusOffered, entity.StatusShipped, entity.StatusSold},
}

// Writable status que un cliente puede pedir explícitamente. em_lote queda fuera:
// solo la formación de lotes lo asigna.
var Writable = []entity.InvoiceStatus{
	entity.StatusAvailable,
	entity.StatusPending,
	entity.StatusOffered,
	entity.StatusShipped,
	entity.StatusSold,
	entity.StatusRejected,
}

// Known todos los status que pueden persistirse.
var Known = append(append([]entity.InvoiceStatus{}, Writable...), entity.StatusInLot)

// IsWritable indica si s puede pedirse como status destino.
func IsWritable(s entity.InvoiceStatus) bool {
	for _, w := range Writable {
		if w == s {
			return true
		}
	}
	return false
}

// ParseWritable valida un status recibido del exterior.
func ParseWritable(raw string) (entity.InvoiceStatus, error) {
	s := entity.InvoiceStatus(raw)
	if !IsWritable(s) {
		return "", domain.NewValidationError("status", "status inválido: '"+raw+"'. Status permitidos: disponivel, pendente, ofertada, enviada, vendida, reprovada")
	}
	return s, nil
}

// Allowed devuelve los destinos permitidos desde current sin forzar.
func Allowed(current entity.InvoiceStatus) []entity.InvoiceStatus {
	return adjacency[current]
}

// ValidateTransition verifica que current -> requested sea legal.
// Con forced la verificación se omite por completo.
func ValidateTransition(current, requested entity.InvoiceStatus, forced bool) error {
	if forced {
		return nil
	}
	for _, s := range adjacency[current] {
		if s == requested {
			return nil
		}
	}
	return &domain.TransitionError{From: string(current), To: string(requested)}
}

// RequiresLinkageCheck indica si antes de aplicar la transición hay que verificar
// que ninguna venta referencia ítems de la nota.
func RequiresLinkageCheck(current, requested entity.InvoiceStatus, forced bool) bool {
	return !forced && current == entity.StatusSold && requested == entity.StatusAvailable
}

// LeavesSold indica si la transición sale de vendida; el pedido de compra debe limpiarse.
func LeavesSold(current, requested entity.InvoiceStatus) bool {
	return current == entity.StatusSold && requested != entity.StatusSold
}
