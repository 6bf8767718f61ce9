package repository

import (
	"context"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
)

// ClassificationRepository tabla NCM -> material.
type ClassificationRepository interface {
	// MaterialFor devuelve el material del NCM o "" si no está clasificado.
	MaterialFor(ctx context.Context, ncm string) (string, error)
	Get(ctx context.Context, ncm string) (*entity.NCMClassification, error)
	List(ctx context.Context) ([]entity.NCMClassification, error)
	// Create devuelve domain.ErrDuplicate si el NCM ya existe.
	Create(ctx context.Context, c *entity.NCMClassification) error
	// Update y Delete devuelven domain.ErrNotFound si el NCM no existe.
	Update(ctx context.Context, c *entity.NCMClassification) error
	Delete(ctx context.Context, ncm string) error
}
