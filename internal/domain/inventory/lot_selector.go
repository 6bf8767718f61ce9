package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
)

// DefaultLotTolerance exceso máximo admitido sobre la cantidad objetivo (5%).
var DefaultLotTolerance = decimal.NewFromFloat(0.05)

// LotSelector acumula notas (más antiguas primero) hasta alcanzar la cantidad objetivo
// sin superar objetivo*(1+tolerancia) después de la primera nota aceptada.
// Puede alimentarse con varias pasadas (cliente prioritario y luego los demás);
// el total acumulado se conserva entre pasadas.
type LotSelector struct {
	target   decimal.Decimal
	limit    decimal.Decimal
	total    decimal.Decimal
	selected []entity.LotCandidate
}

// NewLotSelector construye el selector para target con la tolerancia dada.
func NewLotSelector(target, tolerance decimal.Decimal) *LotSelector {
	return &LotSelector{
		target: target,
		limit:  target.Mul(decimal.NewFromInt(1).Add(tolerance)),
		total:  decimal.Zero,
	}
}

// Offer procesa una pasada de candidatas, en el orden recibido.
func (s *LotSelector) Offer(candidates []entity.LotCandidate) {
	for _, c := range candidates {
		if s.Complete() {
			return
		}
		if len(s.selected) > 0 && s.total.Add(c.Quantity).GreaterThan(s.limit) {
			continue
		}
		s.selected = append(s.selected, c)
		s.total = s.total.Add(c.Quantity)
	}
}

// Complete indica si el total acumulado alcanzó el objetivo.
func (s *LotSelector) Complete() bool {
	return s.total.GreaterThanOrEqual(s.target)
}

// Selected notas aceptadas en orden de aceptación.
func (s *LotSelector) Selected() []entity.LotCandidate { return s.selected }

// Total cantidad acumulada.
func (s *LotSelector) Total() decimal.Decimal { return s.total }

// Target cantidad objetivo.
func (s *LotSelector) Target() decimal.Decimal { return s.target }

// Limit cantidad máxima admitida.
func (s *LotSelector) Limit() decimal.Decimal { return s.limit }
