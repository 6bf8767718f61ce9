// Package classification mantiene la tabla NCM -> material consultada en la importación.
package classification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/inventory"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

// UseCase CRUD de clasificaciones NCM.
type UseCase struct {
	repo repository.ClassificationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ClassificationRepository) *UseCase {
	return &UseCase{repo: repo}
}

func (uc *UseCase) List(ctx context.Context) ([]entity.NCMClassification, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ncm: listar: %w", err)
	}
	if list == nil {
		list = []entity.NCMClassification{}
	}
	return list, nil
}

func (uc *UseCase) Get(ctx context.Context, ncm string) (*entity.NCMClassification, error) {
	if !inventory.ValidNCM(ncm) {
		return nil, domain.NewValidationError("ncm", "NCM deve ter 8 dígitos")
	}
	c, err := uc.repo.Get(ctx, ncm)
	if err != nil {
		return nil, fmt.Errorf("ncm: buscar %s: %w", ncm, err)
	}
	if c == nil {
		return nil, notFound(ncm)
	}
	return c, nil
}

// Create devuelve domain.ErrDuplicate si el NCM ya está clasificado.
func (uc *UseCase) Create(ctx context.Context, in dto.NCMRequest) (*entity.NCMClassification, error) {
	c, err := validate(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: NCM %s já classificado", domain.ErrDuplicate, c.NCM)
		}
		return nil, fmt.Errorf("ncm: criar %s: %w", c.NCM, err)
	}
	return c, nil
}

// Update cambia el material; el NCM de la ruta manda sobre el del body.
func (uc *UseCase) Update(ctx context.Context, ncm string, in dto.NCMRequest) (*entity.NCMClassification, error) {
	in.NCM = ncm
	c, err := validate(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound(ncm)
		}
		return nil, fmt.Errorf("ncm: atualizar %s: %w", ncm, err)
	}
	return c, nil
}

func (uc *UseCase) Delete(ctx context.Context, ncm string) error {
	if !inventory.ValidNCM(ncm) {
		return domain.NewValidationError("ncm", "NCM deve ter 8 dígitos")
	}
	if err := uc.repo.Delete(ctx, ncm); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(ncm)
		}
		return fmt.Errorf("ncm: excluir %s: %w", ncm, err)
	}
	return nil
}

func validate(in dto.NCMRequest) (*entity.NCMClassification, error) {
	ncm := strings.TrimSpace(in.NCM)
	material := strings.TrimSpace(in.Material)
	if !inventory.ValidNCM(ncm) {
		return nil, domain.NewValidationError("ncm", "NCM deve ter 8 dígitos")
	}
	if material == "" {
		return nil, domain.MissingFields("material")
	}
	return &entity.NCMClassification{NCM: ncm, Material: material}, nil
}

func notFound(ncm string) error {
	return fmt.Errorf("%w: NCM %s não classificado", domain.ErrNotFound, ncm)
}
