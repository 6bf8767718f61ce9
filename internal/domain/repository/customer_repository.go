package repository

import (
	"context"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// Merge actualiza solo los campos no vacíos de customer sobre el registro id.
	Merge(ctx context.Context, id int64, customer *entity.Customer) error
	// Update reemplaza todos los campos; domain.ErrNotFound si no existe.
	Update(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
}
