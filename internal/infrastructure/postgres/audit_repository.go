package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo escribe y lee auditoria_notas_fiscais.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append agrega una entrada; nunca actualiza ni borra.
func (r *AuditRepo) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	query := `
		INSERT INTO auditoria_notas_fiscais (
			nota_fiscal_id, campo_alterado, valor_anterior, valor_novo, ip, operacao_id, forcado
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7)
		RETURNING id, data_alteracao`
	err := r.q.QueryRow(ctx, query,
		entry.InvoiceID, entry.Field, nullIfEmpty(entry.OldValue), nullIfEmpty(entry.NewValue),
		entry.IP, entry.OperationID, entry.Forced,
	).Scan(&entry.ID, &entry.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert auditoria: %w", err)
	}
	return nil
}

// ListByInvoice historial de la nota, más reciente primero.
func (r *AuditRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]entity.AuditLogEntry, error) {
	query := `
		SELECT id, nota_fiscal_id, campo_alterado, COALESCE(valor_anterior, ''), COALESCE(valor_novo, ''),
		       COALESCE(ip, ''), COALESCE(operacao_id::text, ''), forcado, data_alteracao
		FROM auditoria_notas_fiscais
		WHERE nota_fiscal_id = $1
		ORDER BY data_alteracao DESC, id DESC`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("audit.ListByInvoice: %w", err)
	}
	defer rows.Close()

	var out []entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		if err := rows.Scan(
			&e.ID, &e.InvoiceID, &e.Field, &e.OldValue, &e.NewValue,
			&e.IP, &e.OperationID, &e.Forced, &e.ChangedAt,
		); err != nil {
			return nil, fmt.Errorf("audit.ListByInvoice scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
