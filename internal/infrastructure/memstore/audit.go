package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

type auditRepo struct {
	s  *Store
	at access
}

var _ repository.AuditRepository = (*auditRepo)(nil)

func (r *auditRepo) Append(_ context.Context, entry *entity.AuditLogEntry) error {
	if err := r.s.failure("audit.Append"); err != nil {
		return err
	}
	return r.at(func(st *state) error {
		entry.ID = st.nextID("auditoria_notas_fiscais")
		entry.ChangedAt = time.Now()
		st.audit = append(st.audit, *entry)
		return nil
	})
}

func (r *auditRepo) ListByInvoice(_ context.Context, invoiceID int64) ([]entity.AuditLogEntry, error) {
	var out []entity.AuditLogEntry
	err := r.at(func(st *state) error {
		for _, e := range st.audit {
			if e.InvoiceID == invoiceID {
				out = append(out, e)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, err
}
