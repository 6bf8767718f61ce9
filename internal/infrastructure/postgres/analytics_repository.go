package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementa AnalyticsRepository con SQL directo sobre pgx.
// Todas las consultas son read-only y se ejecutan sobre el pool (sin transacción).
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el repositorio con el pool de conexiones.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario por status
// ──────────────────────────────────────────────────────────────────────────────

// StatusCounts cantidad de notas por status presente en la tabla.
func (r *AnalyticsRepo) StatusCounts(ctx context.Context) ([]repository.StatusCount, error) {
	const query = `SELECT status, COUNT(*) FROM notas_fiscais GROUP BY status ORDER BY status`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.StatusCounts: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusCount
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("analytics.StatusCounts scan: %w", err)
		}
		results = append(results, repository.StatusCount{Status: entity.InvoiceStatus(status), Count: count})
	}
	return results, rows.Err()
}

// MaterialsByStatus suma de cantidades por material crudo y status; la normalización la hace el caso de uso.
func (r *AnalyticsRepo) MaterialsByStatus(ctx context.Context) ([]repository.MaterialStatusTotal, error) {
	const query = `
	SELECT
	    i.material,
	    nf.status,
	    COALESCE(SUM(i.quantidade), 0) AS total
	FROM itens_notas_fiscais i
	JOIN notas_fiscais nf ON nf.id = i.nota_fiscal_id
	WHERE i.material IS NOT NULL AND i.material <> ''
	GROUP BY i.material, nf.status`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.MaterialsByStatus: %w", err)
	}
	defer rows.Close()

	var results []repository.MaterialStatusTotal
	for rows.Next() {
		var (
			row    repository.MaterialStatusTotal
			status string
		)
		if err := rows.Scan(&row.Material, &status, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.MaterialsByStatus scan: %w", err)
		}
		row.Status = entity.InvoiceStatus(status)
		results = append(results, row)
	}
	return results, rows.Err()
}

// AvailableYears años de emisión presentes, más reciente primero.
func (r *AnalyticsRepo) AvailableYears(ctx context.Context) ([]int, error) {
	const query = `
	SELECT DISTINCT EXTRACT(YEAR FROM data_emissao)::int AS ano
	FROM notas_fiscais
	WHERE data_emissao IS NOT NULL
	ORDER BY ano DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.AvailableYears: %w", err)
	}
	years, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("analytics.AvailableYears scan: %w", err)
	}
	return years, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados de notas con ítems
// ──────────────────────────────────────────────────────────────────────────────

const invoiceLineSelect = `
	SELECT
	    nf.id, nf.numero_nota, nf.data_emissao,
	    COALESCE(nf.emitente_nome, ''), COALESCE(nf.destinatario_nome, ''),
	    nf.status, COALESCE(nf.unidade_gestora, ''), nf.numero_pedido_compra,
	    i.id, i.ncm, i.descricao, i.material, i.quantidade, i.unidade
	FROM notas_fiscais nf
	LEFT JOIN itens_notas_fiscais i ON i.nota_fiscal_id = nf.id`

// InvoiceLinesByCustomer busca por nombre de emisor o destinatario (ILIKE); year nil = todos.
func (r *AnalyticsRepo) InvoiceLinesByCustomer(ctx context.Context, name string, year *int) ([]repository.InvoiceLine, error) {
	query := invoiceLineSelect + `
	WHERE (nf.destinatario_nome ILIKE $1 OR nf.emitente_nome ILIKE $1)
	  AND ($2::int IS NULL OR EXTRACT(YEAR FROM nf.data_emissao) = $2::int)
	ORDER BY nf.data_emissao DESC, nf.numero_nota ASC, i.id`
	return r.invoiceLines(ctx, "InvoiceLinesByCustomer", query, "%"+name+"%", year)
}

// InvoiceLinesByNumbers notas cuyo número está en la lista.
func (r *AnalyticsRepo) InvoiceLinesByNumbers(ctx context.Context, numbers []string) ([]repository.InvoiceLine, error) {
	query := invoiceLineSelect + `
	WHERE nf.numero_nota = ANY($1::text[])
	ORDER BY nf.data_emissao DESC, i.id`
	return r.invoiceLines(ctx, "InvoiceLinesByNumbers", query, numbers)
}

// InvoiceLinesByPurchaseOrder notas del pedido que aún no fueron vendidas.
func (r *AnalyticsRepo) InvoiceLinesByPurchaseOrder(ctx context.Context, purchaseOrder string) ([]repository.InvoiceLine, error) {
	query := invoiceLineSelect + `
	WHERE nf.numero_pedido_compra = $1
	  AND nf.status <> 'vendida'
	ORDER BY nf.data_emissao DESC, i.id`
	return r.invoiceLines(ctx, "InvoiceLinesByPurchaseOrder", query, purchaseOrder)
}

// InvoiceLinesForSale notas disponivel/ofertada; number filtra por ILIKE y status restringe aún más.
func (r *AnalyticsRepo) InvoiceLinesForSale(ctx context.Context, number string, status *entity.InvoiceStatus) ([]repository.InvoiceLine, error) {
	var statusArg any
	if status != nil {
		statusArg = string(*status)
	}
	query := invoiceLineSelect + `
	WHERE nf.status IN ('disponivel', 'ofertada')
	  AND ($1 = '' OR nf.numero_nota ILIKE '%' || $1 || '%')
	  AND ($2::text IS NULL OR nf.status = $2::text)
	ORDER BY nf.data_emissao DESC, nf.numero_nota ASC, i.id`
	return r.invoiceLines(ctx, "InvoiceLinesForSale", query, number, statusArg)
}

func (r *AnalyticsRepo) invoiceLines(ctx context.Context, op, query string, args ...any) ([]repository.InvoiceLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.%s: %w", op, err)
	}
	defer rows.Close()

	var results []repository.InvoiceLine
	for rows.Next() {
		var (
			row    repository.InvoiceLine
			status string
		)
		if err := rows.Scan(
			&row.InvoiceID, &row.Number, &row.IssuedAt,
			&row.IssuerName, &row.RecipientName,
			&status, &row.BusinessUnit, &row.PurchaseOrder,
			&row.ItemID, &row.NCM, &row.Description, &row.Material, &row.Quantity, &row.Unit,
		); err != nil {
			return nil, fmt.Errorf("analytics.%s scan: %w", op, err)
		}
		row.Status = entity.InvoiceStatus(status)
		results = append(results, row)
	}
	return results, rows.Err()
}

// SoldInvoices notas en status vendida, más recientes primero.
func (r *AnalyticsRepo) SoldInvoices(ctx context.Context) ([]repository.SoldInvoice, error) {
	const query = `
	SELECT numero_nota, COALESCE(destinatario_nome, ''), data_emissao, numero_pedido_compra
	FROM notas_fiscais
	WHERE status = 'vendida'
	ORDER BY data_emissao DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.SoldInvoices: %w", err)
	}
	defer rows.Close()

	var results []repository.SoldInvoice
	for rows.Next() {
		var row repository.SoldInvoice
		if err := rows.Scan(&row.Number, &row.RecipientName, &row.IssuedAt, &row.PurchaseOrder); err != nil {
			return nil, fmt.Errorf("analytics.SoldInvoices scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SoldMaterials cantidad total vendida por material.
func (r *AnalyticsRepo) SoldMaterials(ctx context.Context) ([]repository.MaterialQuantity, error) {
	const query = `
	SELECT i.material, SUM(i.quantidade)
	FROM itens_notas_fiscais i
	JOIN notas_fiscais nf ON nf.id = i.nota_fiscal_id
	WHERE nf.status = 'vendida' AND i.material IS NOT NULL
	GROUP BY i.material
	ORDER BY i.material`
	return r.materialQuantities(ctx, "SoldMaterials", query)
}

func (r *AnalyticsRepo) materialQuantities(ctx context.Context, op, query string, args ...any) ([]repository.MaterialQuantity, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.%s: %w", op, err)
	}
	defer rows.Close()

	var results []repository.MaterialQuantity
	for rows.Next() {
		var row repository.MaterialQuantity
		if err := rows.Scan(&row.Material, &row.Quantity); err != nil {
			return nil, fmt.Errorf("analytics.%s scan: %w", op, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

// SalesHistory ventas filtradas con las toneladas de sus ítems vinculados.
func (r *AnalyticsRepo) SalesHistory(ctx context.Context, filter repository.SaleFilter) ([]repository.SaleHistoryRow, error) {
	var date any
	if filter.Date != nil {
		date = *filter.Date
	}
	const query = `
	SELECT
	    v.id, v.cliente_nome, v.numero_pedido_compra, v.data_venda, v.valor_total, v.unidade_gestora,
	    COALESCE(SUM(i.quantidade) / 1000.0, 0) AS toneladas
	FROM vendas v
	LEFT JOIN itens_notas_fiscais i ON i.venda_id = v.id
	WHERE ($1 = '' OR v.cliente_nome ILIKE '%' || $1 || '%')
	  AND ($2 = '' OR v.numero_pedido_compra ILIKE '%' || $2 || '%')
	  AND ($3::date IS NULL OR v.data_venda = $3::date)
	GROUP BY v.id
	ORDER BY v.id DESC`

	rows, err := r.q.Query(ctx, query, filter.Buyer, filter.PurchaseOrder, date)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesHistory: %w", err)
	}
	defer rows.Close()

	var results []repository.SaleHistoryRow
	for rows.Next() {
		var row repository.SaleHistoryRow
		if err := rows.Scan(
			&row.ID, &row.BuyerName, &row.PurchaseOrder, &row.SaleDate,
			&row.TotalValue, &row.BusinessUnit, &row.Tons,
		); err != nil {
			return nil, fmt.Errorf("analytics.SalesHistory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesMetrics usa COALESCE para devolver cero si no hay ventas en el período.
func (r *AnalyticsRepo) SalesMetrics(ctx context.Context, from, to *time.Time) (repository.SalesMetrics, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(valor_total), 0),
	    COALESCE(AVG(valor_total), 0),
	    COUNT(DISTINCT cliente_nome)
	FROM vendas
	WHERE ($1::date IS NULL OR data_venda >= $1::date)
	  AND ($2::date IS NULL OR data_venda <= $2::date)`

	var m repository.SalesMetrics
	err := r.q.QueryRow(ctx, query, optionalTime(from), optionalTime(to)).
		Scan(&m.TotalSales, &m.TotalValue, &m.AverageTicket, &m.Customers)
	if err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("analytics.SalesMetrics: %w", err)
	}
	m.AverageTicket = m.AverageTicket.Round(2)
	return m, nil
}

// SalesChart serie del gráfico pedido. Para vendas_por_material solo trae la cantidad
// vendida; el valor lo calcula el caso de uso con el precio de referencia.
func (r *AnalyticsRepo) SalesChart(ctx context.Context, kind repository.ChartKind, from, to *time.Time) ([]repository.ChartPoint, error) {
	var query string
	switch kind {
	case repository.ChartSalesByPeriod:
		query = `
		SELECT TO_CHAR(v.data_venda, 'YYYY-MM-DD') AS rotulo, NULL::numeric, SUM(v.valor_total)
		FROM vendas v
		WHERE ($1::date IS NULL OR v.data_venda >= $1::date)
		  AND ($2::date IS NULL OR v.data_venda <= $2::date)
		GROUP BY rotulo
		ORDER BY rotulo DESC
		LIMIT 30`
	case repository.ChartTopCustomers:
		query = `
		SELECT v.cliente_nome, NULL::numeric, SUM(v.valor_total) AS total
		FROM vendas v
		WHERE ($1::date IS NULL OR v.data_venda >= $1::date)
		  AND ($2::date IS NULL OR v.data_venda <= $2::date)
		GROUP BY v.cliente_nome
		ORDER BY total DESC
		LIMIT 10`
	case repository.ChartSalesByMaterial:
		query = `
		SELECT i.material, SUM(i.quantidade), 0::numeric
		FROM vendas v
		JOIN itens_notas_fiscais i ON i.venda_id = v.id
		WHERE ($1::date IS NULL OR v.data_venda >= $1::date)
		  AND ($2::date IS NULL OR v.data_venda <= $2::date)
		  AND i.material IS NOT NULL
		GROUP BY i.material`
	default:
		return nil, fmt.Errorf("analytics.SalesChart: tipo desconhecido %q", kind)
	}

	rows, err := r.q.Query(ctx, query, optionalTime(from), optionalTime(to))
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesChart: %w", err)
	}
	defer rows.Close()

	var results []repository.ChartPoint
	for rows.Next() {
		var p repository.ChartPoint
		if err := rows.Scan(&p.Label, &p.Quantity, &p.Value); err != nil {
			return nil, fmt.Errorf("analytics.SalesChart scan: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// ManagingUnits unidades gestoras distintas registradas en ventas.
func (r *AnalyticsRepo) ManagingUnits(ctx context.Context) ([]string, error) {
	const query = `
	SELECT DISTINCT unidade_gestora
	FROM vendas
	WHERE unidade_gestora IS NOT NULL AND unidade_gestora <> ''
	ORDER BY unidade_gestora`
	return r.strings(ctx, "ManagingUnits", query)
}

// DistinctMaterials materiales presentes en ítems de notas.
func (r *AnalyticsRepo) DistinctMaterials(ctx context.Context) ([]string, error) {
	const query = `
	SELECT DISTINCT material
	FROM itens_notas_fiscais
	WHERE material IS NOT NULL AND material <> ''
	ORDER BY material`
	return r.strings(ctx, "DistinctMaterials", query)
}

func (r *AnalyticsRepo) strings(ctx context.Context, op, query string) ([]string, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.%s: %w", op, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("analytics.%s scan: %w", op, err)
	}
	return out, nil
}

// SaleItems ítems de la venta con los datos de su nota, ordenados por material.
func (r *AnalyticsRepo) SaleItems(ctx context.Context, saleID int64) ([]repository.SaleItemRow, error) {
	const query = `
	SELECT
	    i.id, COALESCE(i.material, ''), i.quantidade, COALESCE(i.unidade, ''), COALESCE(i.descricao, ''),
	    nf.numero_nota, COALESCE(nf.emitente_nome, ''), COALESCE(nf.emitente_cnpj, ''), nf.data_emissao
	FROM itens_notas_fiscais i
	JOIN notas_fiscais nf ON nf.id = i.nota_fiscal_id
	WHERE i.venda_id = $1
	ORDER BY i.material, i.descricao, i.id`

	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("analytics.SaleItems: %w", err)
	}
	defer rows.Close()

	var results []repository.SaleItemRow
	for rows.Next() {
		var row repository.SaleItemRow
		if err := rows.Scan(
			&row.ItemID, &row.Material, &row.Quantity, &row.Unit, &row.Description,
			&row.InvoiceNumber, &row.IssuerName, &row.IssuerTaxID, &row.IssuedAt,
		); err != nil {
			return nil, fmt.Errorf("analytics.SaleItems scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ValidationStats agregados de ventas (desde since para "recientes") y de ítems.
func (r *AnalyticsRepo) ValidationStats(ctx context.Context, since time.Time) (repository.ValidationStats, error) {
	const salesQuery = `
	SELECT
	    COUNT(*),
	    COUNT(*) FILTER (WHERE data_venda >= $1::date),
	    COALESCE(SUM(valor_total), 0),
	    COUNT(DISTINCT cliente_nome)
	FROM vendas`

	const itemsQuery = `
	SELECT
	    COUNT(*),
	    COUNT(*) FILTER (WHERE nf.status NOT IN ('disponivel', 'em_lote')),
	    COUNT(*) FILTER (WHERE i.venda_id IS NOT NULL)
	FROM itens_notas_fiscais i
	JOIN notas_fiscais nf ON nf.id = i.nota_fiscal_id`

	var s repository.ValidationStats
	if err := r.q.QueryRow(ctx, salesQuery, since).
		Scan(&s.TotalSales, &s.SalesLast30Days, &s.TotalValue, &s.DistinctCustomers); err != nil {
		return repository.ValidationStats{}, fmt.Errorf("analytics.ValidationStats vendas: %w", err)
	}
	if err := r.q.QueryRow(ctx, itemsQuery).
		Scan(&s.TotalItems, &s.ItemsInvalidStatus, &s.ItemsAlreadySold); err != nil {
		return repository.ValidationStats{}, fmt.Errorf("analytics.ValidationStats itens: %w", err)
	}
	return s, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes
// ──────────────────────────────────────────────────────────────────────────────

// LotCustomers emisores distintos con notas disponivel del material; year nil = todos.
func (r *AnalyticsRepo) LotCustomers(ctx context.Context, material string, year *int) ([]repository.LotCustomer, error) {
	const query = `
	SELECT DISTINCT nf.cliente_id, COALESCE(nf.emitente_nome, '') AS emitente
	FROM notas_fiscais nf
	JOIN itens_notas_fiscais i ON i.nota_fiscal_id = nf.id
	WHERE nf.status = 'disponivel'
	  AND UPPER(i.material) = UPPER($1)
	  AND ($2::int IS NULL OR EXTRACT(YEAR FROM nf.data_emissao) = $2::int)
	ORDER BY emitente`

	rows, err := r.q.Query(ctx, query, material, year)
	if err != nil {
		return nil, fmt.Errorf("analytics.LotCustomers: %w", err)
	}
	defer rows.Close()

	var results []repository.LotCustomer
	for rows.Next() {
		var row repository.LotCustomer
		if err := rows.Scan(&row.CustomerID, &row.IssuerName); err != nil {
			return nil, fmt.Errorf("analytics.LotCustomers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func optionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
