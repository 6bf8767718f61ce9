package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/reciclagem-api/internal/domain/inventory"
)

func TestNormalizeMaterialName(t *testing.T) {
	cases := map[string]string{
		"Papelão":   "papelao",
		"Papelões":  "papeloe",
		"PLÁSTICOS": "plastico",
		"Vidro":     "vidro",
		" Metais ":  "metai",
		"":          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, inventory.NormalizeMaterialName(in), "entrada %q", in)
	}
}

func TestReferencePricePerTon(t *testing.T) {
	assert.True(t, inventory.ReferencePricePerTon("Papel").Equal(decimal.NewFromInt(800)))
	assert.True(t, inventory.ReferencePricePerTon("Papelão").Equal(decimal.NewFromInt(600)))
	assert.True(t, inventory.ReferencePricePerTon("Vidro").Equal(decimal.NewFromInt(1200)))
	assert.True(t, inventory.ReferencePricePerTon("Metal").Equal(decimal.NewFromInt(1500)))
	assert.True(t, inventory.ReferencePricePerTon("Plástico").Equal(decimal.NewFromInt(1000)))
	assert.True(t, inventory.ReferencePricePerTon("Borracha").Equal(decimal.NewFromInt(800)), "material sin tabla usa 800")
}

func TestEstimatedValue(t *testing.T) {
	// 2500 kg de vidro = 2,5 t * 1200
	got := inventory.EstimatedValue("Vidro", decimal.NewFromInt(2500))
	assert.True(t, got.Equal(decimal.NewFromInt(3000)), "obtenido %s", got)
}

func TestWithinTolerance(t *testing.T) {
	tol := decimal.NewFromFloat(0.01)
	computed := decimal.NewFromInt(1000)
	assert.True(t, inventory.WithinTolerance(decimal.NewFromInt(1010), computed, tol))
	assert.True(t, inventory.WithinTolerance(decimal.NewFromInt(990), computed, tol))
	assert.False(t, inventory.WithinTolerance(decimal.NewFromFloat(1010.01), computed, tol))
}

func TestValidNCM(t *testing.T) {
	assert.True(t, inventory.ValidNCM("47079000"))
	assert.False(t, inventory.ValidNCM("4707900"))
	assert.False(t, inventory.ValidNCM("4707900a"))
	assert.False(t, inventory.ValidNCM(""))
}
