package entity

import "time"

// AuditLogEntry registro append-only de un cambio de campo en una nota fiscal.
type AuditLogEntry struct {
	ID          int64
	InvoiceID   int64
	Field       string
	OldValue    string
	NewValue    string
	IP          string
	OperationID string // UUID de la operación en lote
	Forced      bool
	ChangedAt   time.Time
}
