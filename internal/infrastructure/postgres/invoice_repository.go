package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `
	nf.id, nf.chave_nfe, nf.numero_nota, nf.data_emissao,
	COALESCE(nf.emitente_cnpj, ''), COALESCE(nf.emitente_nome, ''), COALESCE(nf.emitente_uf, ''),
	COALESCE(nf.destinatario_cnpj, ''), COALESCE(nf.destinatario_nome, ''), COALESCE(nf.destinatario_uf, ''),
	nf.status, COALESCE(nf.unidade_gestora, ''), nf.numero_pedido_compra, nf.lote_associado,
	nf.cliente_id, COALESCE(nf.xml_digest, ''), nf.data_atualizacao`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la nota con status disponivel (o el indicado).
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.Status == "" {
		invoice.Status = entity.StatusAvailable
	}
	query := `
		INSERT INTO notas_fiscais (
			chave_nfe, numero_nota, data_emissao,
			emitente_cnpj, emitente_nome, emitente_uf,
			destinatario_cnpj, destinatario_nome, destinatario_uf,
			status, unidade_gestora, cliente_id, xml_digest
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		invoice.AccessKey, invoice.Number, invoice.IssuedAt,
		nullIfEmpty(invoice.IssuerTaxID), nullIfEmpty(invoice.IssuerName), nullIfEmpty(invoice.IssuerState),
		nullIfEmpty(invoice.RecipientTaxID), nullIfEmpty(invoice.RecipientName), nullIfEmpty(invoice.RecipientState),
		string(invoice.Status), invoice.BusinessUnit, invoice.CustomerID, nullIfEmpty(invoice.XMLDigest),
	).Scan(&invoice.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert nota fiscal: %w", err)
	}
	return nil
}

// GetByID obtiene la nota sin ítems. nil, nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM notas_fiscais nf WHERE nf.id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get nota fiscal: %w", err)
	}
	return inv, nil
}

// GetByAccessKey busca por chave_nfe. nil, nil si no existe.
func (r *InvoiceRepo) GetByAccessKey(ctx context.Context, accessKey string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM notas_fiscais nf WHERE nf.chave_nfe = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, accessKey))
	if err != nil {
		return nil, fmt.Errorf("get nota fiscal por chave: %w", err)
	}
	return inv, nil
}

// GetForUpdate bloquea la fila hasta el fin de la transacción. Llamar solo dentro de una tx.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM notas_fiscais nf WHERE nf.id = $1 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("lock nota fiscal: %w", err)
	}
	return inv, nil
}

// ApplyPatch arma el UPDATE con SetBuilder y devuelve la nota actualizada y su status previo.
func (r *InvoiceRepo) ApplyPatch(ctx context.Context, id int64, patch repository.InvoicePatch) (*entity.Invoice, entity.InvoiceStatus, error) {
	if patch.IsEmpty() && patch.PurchaseOrder == nil && !patch.ClearPurchaseOrder {
		return nil, "", domain.ErrNothingToUpdate
	}

	b := NewSetBuilder(2)
	if patch.Status != nil {
		b.Set("status", string(*patch.Status))
	}
	if patch.BusinessUnit != nil {
		b.Set("unidade_gestora", *patch.BusinessUnit)
	}
	switch {
	case patch.PurchaseOrder != nil:
		b.Set("numero_pedido_compra", *patch.PurchaseOrder)
	case patch.ClearPurchaseOrder:
		b.SetExpr("numero_pedido_compra", "NULL")
	}
	if patch.ClearLot {
		b.SetExpr("lote_associado", "NULL")
	}
	b.SetExpr("data_atualizacao", "NOW()")

	clause, args, err := b.Build()
	if err != nil {
		return nil, "", err
	}

	// prev captura el status antes del UPDATE dentro de la misma sentencia.
	query := `
		WITH prev AS (
			SELECT id, status FROM notas_fiscais WHERE id = $1 FOR UPDATE
		)
		UPDATE notas_fiscais nf SET ` + clause + `
		FROM prev
		WHERE nf.id = prev.id
		RETURNING ` + invoiceColumns + `, prev.status`

	var (
		inv       entity.Invoice
		status    string
		prevState string
	)
	row := r.q.QueryRow(ctx, query, append([]any{id}, args...)...)
	err = row.Scan(
		&inv.ID, &inv.AccessKey, &inv.Number, &inv.IssuedAt,
		&inv.IssuerTaxID, &inv.IssuerName, &inv.IssuerState,
		&inv.RecipientTaxID, &inv.RecipientName, &inv.RecipientState,
		&status, &inv.BusinessUnit, &inv.PurchaseOrder, &inv.LotNumber,
		&inv.CustomerID, &inv.XMLDigest, &inv.UpdatedAt, &prevState,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("update nota fiscal: %w", err)
	}
	inv.Status = entity.InvoiceStatus(status)
	return &inv, entity.InvoiceStatus(prevState), nil
}

// MarkSoldByItems pasa a vendida todas las notas padre de los ítems en un solo UPDATE.
func (r *InvoiceRepo) MarkSoldByItems(ctx context.Context, itemIDs []int64, purchaseOrder string) (int64, error) {
	query := `
		UPDATE notas_fiscais
		SET status = 'vendida', numero_pedido_compra = $1, data_atualizacao = NOW()
		WHERE id IN (
			SELECT DISTINCT nota_fiscal_id FROM itens_notas_fiscais WHERE id = ANY($2)
		)`
	tag, err := r.q.Exec(ctx, query, purchaseOrder, itemIDs)
	if err != nil {
		return 0, fmt.Errorf("marcar notas vendidas: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ClearPurchaseOrder quita el pedido de compra de la nota.
func (r *InvoiceRepo) ClearPurchaseOrder(ctx context.Context, id int64) error {
	query := `UPDATE notas_fiscais SET numero_pedido_compra = NULL, data_atualizacao = NOW() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("limpar pedido de compra: %w", err)
	}
	return nil
}

// AssignLot vincula al lote solo las notas que siguen disponibles.
func (r *InvoiceRepo) AssignLot(ctx context.Context, ids []int64, lotNumber, businessUnit string) (int64, error) {
	query := `
		UPDATE notas_fiscais
		SET status = 'em_lote', lote_associado = $1, unidade_gestora = $2, data_atualizacao = NOW()
		WHERE id = ANY($3) AND status = 'disponivel'`
	tag, err := r.q.Exec(ctx, query, lotNumber, businessUnit, ids)
	if err != nil {
		return 0, fmt.Errorf("vincular lote: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv       entity.Invoice
		status    string
		updatedAt *time.Time
	)
	err := row.Scan(
		&inv.ID, &inv.AccessKey, &inv.Number, &inv.IssuedAt,
		&inv.IssuerTaxID, &inv.IssuerName, &inv.IssuerState,
		&inv.RecipientTaxID, &inv.RecipientName, &inv.RecipientState,
		&status, &inv.BusinessUnit, &inv.PurchaseOrder, &inv.LotNumber,
		&inv.CustomerID, &inv.XMLDigest, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	inv.UpdatedAt = updatedAt
	return &inv, nil
}
