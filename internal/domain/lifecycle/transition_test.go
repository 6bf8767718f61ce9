package lifecycle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/lifecycle"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de adyacencia
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateTransition_TablaCompleta(t *testing.T) {
	permitidas := map[entity.InvoiceStatus][]entity.InvoiceStatus{
		entity.StatusAvailable: {entity.StatusShipped, entity.StatusPending, entity.StatusOffered},
		entity.StatusPending:   {entity.StatusOffered, entity.StatusShipped, entity.StatusRejected},
		entity.StatusOffered:   {entity.StatusOffered, entity.StatusSold, entity.StatusRejected},
		entity.StatusShipped:   {entity.StatusOffered, entity.StatusSold, entity.StatusRejected},
		entity.StatusSold:      {entity.StatusAvailable},
		entity.StatusRejected:  {entity.StatusAvailable},
	}

	for from, targets := range permitidas {
		allowed := make(map[entity.InvoiceStatus]bool, len(targets))
		for _, to := range targets {
			allowed[to] = true
		}
		for _, to := range lifecycle.Writable {
			err := lifecycle.ValidateTransition(from, to, false)
			if allowed[to] {
				assert.NoError(t, err, "%s -> %s debe ser permitida", from, to)
				continue
			}
			require.Error(t, err, "%s -> %s no debe ser permitida", from, to)
			var te *domain.TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, string(from), te.From)
			assert.Equal(t, string(to), te.To)
			assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
			assert.Contains(t, err.Error(), "forcarAlteracao", "el error debe sugerir el modo forzado")
		}
	}
}

func TestValidateTransition_ForzadoAceptaCualquierPar(t *testing.T) {
	for _, from := range lifecycle.Known {
		for _, to := range lifecycle.Writable {
			assert.NoError(t, lifecycle.ValidateTransition(from, to, true), "%s -> %s forzada", from, to)
		}
	}
}

func TestValidateTransition_DesdeEmLote(t *testing.T) {
	assert.NoError(t, lifecycle.ValidateTransition(entity.StatusInLot, entity.StatusAvailable, false))
	assert.NoError(t, lifecycle.ValidateTransition(entity.StatusInLot, entity.StatusSold, false))
	assert.Error(t, lifecycle.ValidateTransition(entity.StatusInLot, entity.StatusRejected, false))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas auxiliares
// ──────────────────────────────────────────────────────────────────────────────

func TestRequiresLinkageCheck(t *testing.T) {
	assert.True(t, lifecycle.RequiresLinkageCheck(entity.StatusSold, entity.StatusAvailable, false))
	assert.False(t, lifecycle.RequiresLinkageCheck(entity.StatusSold, entity.StatusAvailable, true))
	assert.False(t, lifecycle.RequiresLinkageCheck(entity.StatusRejected, entity.StatusAvailable, false))
}

func TestLeavesSold(t *testing.T) {
	assert.True(t, lifecycle.LeavesSold(entity.StatusSold, entity.StatusAvailable))
	assert.True(t, lifecycle.LeavesSold(entity.StatusSold, entity.StatusRejected))
	assert.False(t, lifecycle.LeavesSold(entity.StatusSold, entity.StatusSold))
	assert.False(t, lifecycle.LeavesSold(entity.StatusOffered, entity.StatusSold))
}

func TestParseWritable(t *testing.T) {
	s, err := lifecycle.ParseWritable("ofertada")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOffered, s)

	_, err = lifecycle.ParseWritable("em_lote")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "em_lote no puede pedirse directamente")

	_, err = lifecycle.ParseWritable("cancelada")
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "status", ve.Field)
}
