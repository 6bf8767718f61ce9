package repository

import (
	"context"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
)

// AuditRepository registro append-only de cambios en notas fiscales.
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditLogEntry) error
	ListByInvoice(ctx context.Context, invoiceID int64) ([]entity.AuditLogEntry, error)
}
