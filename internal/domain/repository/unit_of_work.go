package repository

import "context"

// UnitOfWork expone los repositorios atados a una transacción abierta.
type UnitOfWork interface {
	Invoices() InvoiceRepository
	Items() InvoiceItemRepository
	Sales() SaleRepository
	Audit() AuditRepository
	Classifications() ClassificationRepository
	Customers() CustomerRepository
	// Savepoint ejecuta fn en una subtransacción: si fn falla se revierte solo lo
	// hecho dentro de ella y la transacción externa sigue utilizable.
	Savepoint(ctx context.Context, fn func(uow UnitOfWork) error) error
}
