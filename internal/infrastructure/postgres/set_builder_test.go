package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/infrastructure/postgres"
)

func TestSetBuilder_AsignacionesYArgumentosEnOrden(t *testing.T) {
	b := postgres.NewSetBuilder(2).
		Set("status", "vendida").
		Set("unidade_gestora", "UG-01").
		SetExpr("data_atualizacao", "NOW()")

	clause, args, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "status = $2, unidade_gestora = $3, data_atualizacao = NOW()", clause)
	assert.Equal(t, []any{"vendida", "UG-01"}, args)
	assert.Equal(t, 4, b.NextPlaceholder())
	assert.Equal(t, 3, b.Len())
}

func TestSetBuilder_SinColumnasEsError(t *testing.T) {
	_, _, err := postgres.NewSetBuilder(1).Build()
	assert.Error(t, err)
}

func TestSetBuilder_RechazaIdentificadorNoSeguro(t *testing.T) {
	b := postgres.NewSetBuilder(1).
		Set("status; DROP TABLE vendas", "x").
		Set("unidade_gestora", "UG")

	_, _, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coluna inválida")
}

func TestSetBuilder_ValorMaliciosoViajaComoParametro(t *testing.T) {
	clause, args, err := postgres.NewSetBuilder(1).Set("unidade_gestora", "x'; DELETE FROM vendas; --").Build()
	require.NoError(t, err)
	assert.Equal(t, "unidade_gestora = $1", clause)
	assert.Equal(t, []any{"x'; DELETE FROM vendas; --"}, args)
}

func TestSetBuilder_InicioMenorQueUnoSeNormaliza(t *testing.T) {
	clause, _, err := postgres.NewSetBuilder(0).Set("status", "pendente").Build()
	require.NoError(t, err)
	assert.Equal(t, "status = $1", clause)
}
