package sales

import (
	"context"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

// StatementPDFGenerator genera el extracto PDF de una venta.
type StatementPDFGenerator interface {
	Generate(details *dto.SaleDetailsResponse) ([]byte, error)
}
