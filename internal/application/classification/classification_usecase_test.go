package classification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/application/classification"
	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/memstore"
)

func TestClassification_CicloCompleto(t *testing.T) {
	st := memstore.New()
	uc := classification.NewUseCase(st.Classifications())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.NCMRequest{NCM: "47079000", Material: " papelao "})
	require.NoError(t, err)
	assert.Equal(t, "papelao", created.Material)

	material, err := st.Classifications().MaterialFor(ctx, "47079000")
	require.NoError(t, err)
	assert.Equal(t, "papelao", material, "la importación ve la clasificación nueva")

	_, err = uc.Create(ctx, dto.NCMRequest{NCM: "47079000", Material: "papel"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	updated, err := uc.Update(ctx, "47079000", dto.NCMRequest{NCM: "00000000", Material: "papel"})
	require.NoError(t, err)
	assert.Equal(t, "47079000", updated.NCM, "el NCM de la ruta manda")

	got, err := uc.Get(ctx, "47079000")
	require.NoError(t, err)
	assert.Equal(t, "papel", got.Material)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, "47079000"))
	_, err = uc.Get(ctx, "47079000")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestClassification_Errores(t *testing.T) {
	uc := classification.NewUseCase(memstore.New().Classifications())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.NCMRequest{NCM: "4707", Material: "papel"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, dto.NCMRequest{NCM: "47079000"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "material obligatorio")

	_, err = uc.Update(ctx, "39151000", dto.NCMRequest{Material: "plastico"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.True(t, errors.Is(uc.Delete(ctx, "39151000"), domain.ErrNotFound))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
