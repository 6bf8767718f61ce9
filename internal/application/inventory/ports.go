package inventory

import (
	"context"

	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los repositorios
// atados a esa tx. Garantiza que un lote se vincula entero o no se vincula.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}
