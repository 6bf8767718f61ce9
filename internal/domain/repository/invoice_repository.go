package repository

import (
	"context"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
)

// InvoicePatch cambios a aplicar sobre una nota. Solo Status y BusinessUnit cuentan
// como alteración pedida; el pedido de compra y el lote acompañan al status.
type InvoicePatch struct {
	Status             *entity.InvoiceStatus
	BusinessUnit       *string
	PurchaseOrder      *string
	ClearPurchaseOrder bool
	ClearLot           bool
}

// IsEmpty indica que no se pidió cambiar ni status ni unidad gestora.
func (p InvoicePatch) IsEmpty() bool {
	return p.Status == nil && p.BusinessUnit == nil
}

// InvoiceRepository define el puerto de persistencia para notas fiscales.
type InvoiceRepository interface {
	// Create inserta la cabecera y asigna invoice.ID.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	GetByAccessKey(ctx context.Context, accessKey string) (*entity.Invoice, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Invoice, error)
	// ApplyPatch actualiza la nota y devuelve el status previo. (nil, "", nil) si no existe.
	ApplyPatch(ctx context.Context, id int64, patch InvoicePatch) (*entity.Invoice, entity.InvoiceStatus, error)
	// MarkSoldByItems pasa a vendida las notas padre de los ítems y devuelve cuántas cambió.
	MarkSoldByItems(ctx context.Context, itemIDs []int64, purchaseOrder string) (int64, error)
	ClearPurchaseOrder(ctx context.Context, id int64) error
	// AssignLot vincula al lote las notas disponibles de ids; devuelve cuántas cambió.
	AssignLot(ctx context.Context, ids []int64, lotNumber, businessUnit string) (int64, error)
}
