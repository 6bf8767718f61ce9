package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `
	v.id, v.cliente_nome, COALESCE(v.cliente_documento, ''), v.valor_total,
	v.numero_pedido_compra, v.unidade_gestora, v.data_venda,
	COALESCE(v.observacoes, ''), COALESCE(v.numero_nf_servico, ''), COALESCE(v.cliente_final, ''),
	COALESCE(v.valor_por_tonelada, 0), v.data_registro`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta; data_registro la fija la base.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO vendas (
			cliente_nome, cliente_documento, valor_total, numero_pedido_compra, unidade_gestora,
			data_venda, observacoes, numero_nf_servico, cliente_final, valor_por_tonelada, data_registro
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, data_registro`
	var pricePerTon any
	if !sale.PricePerTon.IsZero() {
		pricePerTon = sale.PricePerTon
	}
	err := r.q.QueryRow(ctx, query,
		sale.BuyerName, nullIfEmpty(sale.BuyerTaxID), sale.TotalValue, sale.PurchaseOrder, sale.BusinessUnit,
		sale.SaleDate, nullIfEmpty(sale.Notes), nullIfEmpty(sale.ServiceInvoice), nullIfEmpty(sale.FinalCustomer),
		pricePerTon,
	).Scan(&sale.ID, &sale.RegisteredAt)
	if err != nil {
		return fmt.Errorf("insert venda: %w", err)
	}
	return nil
}

// GetByID obtiene una venta. nil, nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM vendas v WHERE v.id = $1`
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get venda: %w", err)
	}
	return s, nil
}

// FindByPurchaseOrder la venta más reciente con ese pedido de compra.
func (r *SaleRepo) FindByPurchaseOrder(ctx context.Context, purchaseOrder string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM vendas v WHERE v.numero_pedido_compra = $1 ORDER BY v.id DESC LIMIT 1`
	s, err := scanSale(r.q.QueryRow(ctx, query, purchaseOrder))
	if err != nil {
		return nil, fmt.Errorf("get venda por pedido: %w", err)
	}
	return s, nil
}

// FindLinkedToInvoice venta referenciada por algún ítem de la nota.
func (r *SaleRepo) FindLinkedToInvoice(ctx context.Context, invoiceID int64) (*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM vendas v
		WHERE v.id IN (
			SELECT venda_id FROM itens_notas_fiscais
			WHERE nota_fiscal_id = $1 AND venda_id IS NOT NULL
		)
		ORDER BY v.id
		LIMIT 1`
	s, err := scanSale(r.q.QueryRow(ctx, query, invoiceID))
	if err != nil {
		return nil, fmt.Errorf("get venda vinculada: %w", err)
	}
	return s, nil
}

// Delete elimina la venta. Los ítems deben estar desvinculados antes.
func (r *SaleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM vendas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.BuyerName, &s.BuyerTaxID, &s.TotalValue,
		&s.PurchaseOrder, &s.BusinessUnit, &s.SaleDate,
		&s.Notes, &s.ServiceInvoice, &s.FinalCustomer,
		&s.PricePerTon, &s.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
