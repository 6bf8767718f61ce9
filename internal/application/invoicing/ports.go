package invoicing

import (
	"context"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

// InvoiceXMLParser convierte el XML de una NF-e en la petición de importación.
// Devuelve también el digest canónico del documento.
type InvoiceXMLParser interface {
	ParseImport(data []byte, businessUnit string) (dto.ImportInvoiceRequest, string, error)
}
