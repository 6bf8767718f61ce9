package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

var _ repository.UnitOfWork = (*unitOfWork)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newUnitOfWork(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// unitOfWork agrupa los repos sobre una misma pgx.Tx (o subtransacción).
type unitOfWork struct {
	tx pgx.Tx
}

func newUnitOfWork(tx pgx.Tx) *unitOfWork {
	return &unitOfWork{tx: tx}
}

func (u *unitOfWork) Invoices() repository.InvoiceRepository {
	return NewInvoiceRepository(u.tx)
}

func (u *unitOfWork) Items() repository.InvoiceItemRepository {
	return NewInvoiceItemRepository(u.tx)
}

func (u *unitOfWork) Sales() repository.SaleRepository {
	return NewSaleRepository(u.tx)
}

func (u *unitOfWork) Audit() repository.AuditRepository {
	return NewAuditRepository(u.tx)
}

func (u *unitOfWork) Classifications() repository.ClassificationRepository {
	return NewClassificationRepository(u.tx)
}

func (u *unitOfWork) Customers() repository.CustomerRepository {
	return NewCustomerRepository(u.tx)
}

// Savepoint usa tx.Begin de pgx, que dentro de una tx abierta emite SAVEPOINT.
func (u *unitOfWork) Savepoint(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	sp, err := u.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if err := fn(newUnitOfWork(sp)); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback to savepoint: %w (causa: %v)", rbErr, err)
		}
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}
