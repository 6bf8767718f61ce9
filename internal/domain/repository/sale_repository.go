package repository

import (
	"context"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	// Create inserta la venta y asigna sale.ID y sale.RegisteredAt.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	FindByPurchaseOrder(ctx context.Context, purchaseOrder string) (*entity.Sale, error)
	// FindLinkedToInvoice devuelve una venta que referencia algún ítem de la nota.
	FindLinkedToInvoice(ctx context.Context, invoiceID int64) (*entity.Sale, error)
	Delete(ctx context.Context, id int64) error
}
