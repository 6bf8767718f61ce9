package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

var _ repository.InvoiceItemRepository = (*InvoiceItemRepo)(nil)

const itemColumns = `
	i.id, i.nota_fiscal_id, i.ncm, COALESCE(i.descricao, ''), i.quantidade,
	COALESCE(i.unidade, ''), COALESCE(i.material, ''), i.cfop, i.venda_id`

// InvoiceItemRepo implementación de InvoiceItemRepository (usable con pool o tx).
type InvoiceItemRepo struct {
	q Querier
}

// NewInvoiceItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceItemRepository(q Querier) *InvoiceItemRepo {
	return &InvoiceItemRepo{q: q}
}

// Create persiste un ítem y asigna item.ID.
func (r *InvoiceItemRepo) Create(ctx context.Context, item *entity.InvoiceItem) error {
	query := `
		INSERT INTO itens_notas_fiscais (nota_fiscal_id, ncm, descricao, quantidade, unidade, material, cfop)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		item.InvoiceID, item.NCM, item.Description, item.Quantity, item.Unit, item.Material, item.CFOP,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert item nota fiscal: %w", err)
	}
	return nil
}

// ListByInvoice ítems de una nota en orden de inserción.
func (r *InvoiceItemRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]entity.InvoiceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM itens_notas_fiscais i WHERE i.nota_fiscal_id = $1 ORDER BY i.id`
	return r.list(ctx, "ListByInvoice", query, invoiceID)
}

// ListBySale ítems vinculados a una venta.
func (r *InvoiceItemRepo) ListBySale(ctx context.Context, saleID int64) ([]entity.InvoiceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM itens_notas_fiscais i WHERE i.venda_id = $1 ORDER BY i.id`
	return r.list(ctx, "ListBySale", query, saleID)
}

func (r *InvoiceItemRepo) list(ctx context.Context, op, query string, args ...any) ([]entity.InvoiceItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("items.%s: %w", op, err)
	}
	defer rows.Close()

	var out []entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.NCM, &it.Description, &it.Quantity,
			&it.Unit, &it.Material, &it.CFOP, &it.SaleID,
		); err != nil {
			return nil, fmt.Errorf("items.%s scan: %w", op, err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// InvoiceIDsBySale notas distintas con ítems vinculados a la venta.
func (r *InvoiceItemRepo) InvoiceIDsBySale(ctx context.Context, saleID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT nota_fiscal_id
		FROM itens_notas_fiscais
		WHERE venda_id = $1
		ORDER BY nota_fiscal_id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("items.InvoiceIDsBySale: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("items.InvoiceIDsBySale scan: %w", err)
	}
	return ids, nil
}

// GetSaleCandidates ítems encontrados con el status y pedido actual de su nota. Bloquea
// las filas de los ítems hasta el fin de la transacción.
func (r *InvoiceItemRepo) GetSaleCandidates(ctx context.Context, itemIDs []int64) ([]entity.SaleCandidate, error) {
	query := `
		SELECT i.id, COALESCE(i.material, ''), i.quantidade, i.venda_id,
		       nf.id, nf.numero_nota, COALESCE(nf.emitente_nome, ''), nf.status, nf.numero_pedido_compra
		FROM itens_notas_fiscais i
		JOIN notas_fiscais nf ON nf.id = i.nota_fiscal_id
		WHERE i.id = ANY($1)
		ORDER BY i.id
		FOR UPDATE OF i`
	rows, err := r.q.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("items.GetSaleCandidates: %w", err)
	}
	defer rows.Close()

	var out []entity.SaleCandidate
	for rows.Next() {
		var (
			c      entity.SaleCandidate
			status string
		)
		if err := rows.Scan(
			&c.ItemID, &c.Material, &c.Quantity, &c.SaleID,
			&c.InvoiceID, &c.InvoiceNumber, &c.IssuerName, &status, &c.CurrentPurchase,
		); err != nil {
			return nil, fmt.Errorf("items.GetSaleCandidates scan: %w", err)
		}
		c.InvoiceStatus = entity.InvoiceStatus(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

// LinkToSale fija venta_id en los ítems indicados que aún no tienen venta.
func (r *InvoiceItemRepo) LinkToSale(ctx context.Context, saleID int64, itemIDs []int64) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE itens_notas_fiscais SET venda_id = $1 WHERE id = ANY($2) AND venda_id IS NULL`, saleID, itemIDs)
	if err != nil {
		return 0, fmt.Errorf("vincular itens à venda: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UnlinkSale anula venta_id en todos los ítems de la venta.
func (r *InvoiceItemRepo) UnlinkSale(ctx context.Context, saleID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `UPDATE itens_notas_fiscais SET venda_id = NULL WHERE venda_id = $1`, saleID)
	if err != nil {
		return 0, fmt.Errorf("desvincular itens da venda: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UnlinkInvoice anula venta_id en los ítems de una nota.
func (r *InvoiceItemRepo) UnlinkInvoice(ctx context.Context, invoiceID int64) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE itens_notas_fiscais SET venda_id = NULL WHERE nota_fiscal_id = $1 AND venda_id IS NOT NULL`, invoiceID)
	if err != nil {
		return 0, fmt.Errorf("desvincular itens da nota: %w", err)
	}
	return tag.RowsAffected(), nil
}

// AvailableQuantity stock vendible del material (notas disponivel/em_lote, ítems sin venta).
func (r *InvoiceItemRepo) AvailableQuantity(ctx context.Context, material string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(i.quantidade), 0)
		FROM itens_notas_fiscais i
		JOIN notas_fiscais nf ON nf.id = i.nota_fiscal_id
		WHERE UPPER(i.material) = UPPER($1)
		  AND nf.status IN ('disponivel', 'em_lote')
		  AND i.venda_id IS NULL`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, material).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("items.AvailableQuantity: %w", err)
	}
	return total, nil
}

// LotCandidates agrega por nota la cantidad del material; más antiguas primero.
// CustomerID 0 sin ExcludeCustomer no filtra por cliente.
func (r *InvoiceItemRepo) LotCandidates(ctx context.Context, filter repository.LotFilter) ([]entity.LotCandidate, error) {
	args := []any{filter.Material, filter.Year}
	customerClause := `TRUE`
	switch {
	case filter.ExcludeCustomer:
		customerClause = `nf.cliente_id IS DISTINCT FROM $3`
		args = append(args, filter.CustomerID)
	case filter.CustomerID != 0:
		customerClause = `nf.cliente_id = $3`
		args = append(args, filter.CustomerID)
	}
	query := `
		SELECT nf.id, nf.numero_nota, nf.data_emissao, COALESCE(nf.emitente_nome, ''),
		       MIN(i.material), SUM(i.quantidade), nf.cliente_id
		FROM notas_fiscais nf
		JOIN itens_notas_fiscais i ON i.nota_fiscal_id = nf.id
		WHERE nf.status = 'disponivel'
		  AND UPPER(i.material) = UPPER($1)
		  AND ($2::int = 0 OR EXTRACT(YEAR FROM nf.data_emissao) = $2::int)
		  AND ` + customerClause + `
		GROUP BY nf.id
		ORDER BY nf.data_emissao ASC, nf.id ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("items.LotCandidates: %w", err)
	}
	defer rows.Close()

	var out []entity.LotCandidate
	for rows.Next() {
		var c entity.LotCandidate
		if err := rows.Scan(
			&c.InvoiceID, &c.InvoiceNumber, &c.IssuedAt, &c.IssuerName,
			&c.Material, &c.Quantity, &c.CustomerID,
		); err != nil {
			return nil, fmt.Errorf("items.LotCandidates scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
