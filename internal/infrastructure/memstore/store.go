// Package memstore implementa los puertos de repository en memoria, con transacciones
// por copia (rollback descarta la copia) y savepoints anidados. Lo usan los tests de
// casos de uso y handlers para ejercitar el flujo completo sin PostgreSQL.
package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

// state tablas en memoria. Se clona entera al abrir una transacción.
type state struct {
	seq       map[string]int64
	invoices  map[int64]*entity.Invoice
	items     map[int64]*entity.InvoiceItem
	sales     map[int64]*entity.Sale
	audit     []entity.AuditLogEntry
	ncm       map[string]string
	customers map[int64]*entity.Customer
}

func newState() *state {
	return &state{
		seq:       map[string]int64{},
		invoices:  map[int64]*entity.Invoice{},
		items:     map[int64]*entity.InvoiceItem{},
		sales:     map[int64]*entity.Sale{},
		ncm:       map[string]string{},
		customers: map[int64]*entity.Customer{},
	}
}

func (s *state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = cloneInvoice(v)
	}
	for k, v := range s.items {
		c.items[k] = cloneItem(v)
	}
	for k, v := range s.sales {
		cp := *v
		c.sales[k] = &cp
	}
	c.audit = append([]entity.AuditLogEntry(nil), s.audit...)
	for k, v := range s.ncm {
		c.ncm[k] = v
	}
	for k, v := range s.customers {
		cp := *v
		c.customers[k] = &cp
	}
	return c
}

// Store base de datos en memoria. El valor cero no es usable: usar New.
type Store struct {
	mu    sync.Mutex
	data  *state
	fails map[string]error
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newState(), fails: map[string]error{}}
}

// FailOn hace que la operación op (ej. "audit.Append", "invoices.ApplyPatch") devuelva err.
// Pasar nil quita la falla.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fails, op)
		return
	}
	s.fails[op] = err
}

func (s *Store) failure(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fails[op]
}

// access ejecuta fn sobre las tablas visibles para un repo.
type access func(fn func(st *state) error) error

func (s *Store) committed() access {
	return func(fn func(st *state) error) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn(s.data)
	}
}

func private(st *state) access {
	return func(fn func(st *state) error) error { return fn(st) }
}

// ── Repos fuera de transacción ───────────────────────────────────────────────

func (s *Store) Invoices() repository.InvoiceRepository {
	return &invoiceRepo{s: s, at: s.committed()}
}

func (s *Store) Items() repository.InvoiceItemRepository {
	return &itemRepo{s: s, at: s.committed()}
}

func (s *Store) Sales() repository.SaleRepository {
	return &saleRepo{s: s, at: s.committed()}
}

func (s *Store) Audit() repository.AuditRepository {
	return &auditRepo{s: s, at: s.committed()}
}

func (s *Store) Classifications() repository.ClassificationRepository {
	return &classificationRepo{s: s, at: s.committed()}
}

func (s *Store) Customers() repository.CustomerRepository {
	return &customerRepo{s: s, at: s.committed()}
}

func (s *Store) Analytics() repository.AnalyticsRepository {
	return &analyticsRepo{s: s, at: s.committed()}
}

// ── Transacciones ────────────────────────────────────────────────────────────

// Run trabaja sobre una copia de las tablas; si fn no falla la copia reemplaza al estado
// confirmado. No bloquea otras transacciones: la última en confirmar gana.
func (s *Store) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.failure("tx.Begin"); err != nil {
		return err
	}
	s.mu.Lock()
	working := s.data.clone()
	s.mu.Unlock()

	if err := fn(&unitOfWork{s: s, st: working}); err != nil {
		return err
	}
	if err := s.failure("tx.Commit"); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = working
	s.mu.Unlock()
	return nil
}

type unitOfWork struct {
	s  *Store
	st *state
}

var _ repository.UnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) Invoices() repository.InvoiceRepository {
	return &invoiceRepo{s: u.s, at: private(u.st)}
}

func (u *unitOfWork) Items() repository.InvoiceItemRepository {
	return &itemRepo{s: u.s, at: private(u.st)}
}

func (u *unitOfWork) Sales() repository.SaleRepository {
	return &saleRepo{s: u.s, at: private(u.st)}
}

func (u *unitOfWork) Audit() repository.AuditRepository {
	return &auditRepo{s: u.s, at: private(u.st)}
}

func (u *unitOfWork) Classifications() repository.ClassificationRepository {
	return &classificationRepo{s: u.s, at: private(u.st)}
}

func (u *unitOfWork) Customers() repository.CustomerRepository {
	return &customerRepo{s: u.s, at: private(u.st)}
}

// Savepoint clona el estado de la transacción; si fn falla la copia se descarta.
func (u *unitOfWork) Savepoint(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	child := u.st.clone()
	if err := fn(&unitOfWork{s: u.s, st: child}); err != nil {
		return err
	}
	*u.st = *child
	return nil
}

// ── Copias profundas ─────────────────────────────────────────────────────────

func cloneInvoice(in *entity.Invoice) *entity.Invoice {
	cp := *in
	cp.PurchaseOrder = cloneString(in.PurchaseOrder)
	cp.LotNumber = cloneString(in.LotNumber)
	if in.CustomerID != nil {
		id := *in.CustomerID
		cp.CustomerID = &id
	}
	if in.UpdatedAt != nil {
		t := *in.UpdatedAt
		cp.UpdatedAt = &t
	}
	cp.Items = nil
	return &cp
}

func cloneItem(in *entity.InvoiceItem) *entity.InvoiceItem {
	cp := *in
	cp.CFOP = cloneString(in.CFOP)
	if in.SaleID != nil {
		id := *in.SaleID
		cp.SaleID = &id
	}
	return &cp
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
