package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
)

// LotFilter criterios de búsqueda de notas para formar lote.
type LotFilter struct {
	Material   string
	Year       int
	CustomerID int64
	// ExcludeCustomer invierte el filtro: todas las notas excepto las de CustomerID.
	ExcludeCustomer bool
}

// InvoiceItemRepository define el puerto de persistencia para ítems de nota fiscal.
type InvoiceItemRepository interface {
	Create(ctx context.Context, item *entity.InvoiceItem) error
	ListByInvoice(ctx context.Context, invoiceID int64) ([]entity.InvoiceItem, error)
	ListBySale(ctx context.Context, saleID int64) ([]entity.InvoiceItem, error)
	InvoiceIDsBySale(ctx context.Context, saleID int64) ([]int64, error)
	// GetSaleCandidates devuelve los ítems encontrados junto con los datos de su nota.
	GetSaleCandidates(ctx context.Context, itemIDs []int64) ([]entity.SaleCandidate, error)
	// LinkToSale vincula solo ítems sin venta; devuelve cuántos vinculó.
	LinkToSale(ctx context.Context, saleID int64, itemIDs []int64) (int64, error)
	UnlinkSale(ctx context.Context, saleID int64) (int64, error)
	UnlinkInvoice(ctx context.Context, invoiceID int64) (int64, error)
	// AvailableQuantity suma los ítems del material en notas disponivel/em_lote sin venta.
	AvailableQuantity(ctx context.Context, material string) (decimal.Decimal, error)
	// LotCandidates notas disponivel del material y año, más antiguas primero.
	LotCandidates(ctx context.Context, filter LotFilter) ([]entity.LotCandidate, error)
}
