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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `
	c.id, c.cnpj, c.razao_social, COALESCE(c.nome_fantasia, ''), COALESCE(c.endereco, ''),
	COALESCE(c.cidade, ''), COALESCE(c.uf, ''), COALESCE(c.cep, ''), COALESCE(c.email_contato, ''),
	COALESCE(c.telefone_contato, ''), COALESCE(c.whatsapp_numero, ''), COALESCE(c.nome_contato, ''),
	c.ativo, c.data_cadastro`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO clientes (
			cnpj, razao_social, nome_fantasia, endereco, cidade, uf, cep,
			email_contato, telefone_contato, whatsapp_numero, nome_contato, ativo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, data_cadastro`
	err := r.q.QueryRow(ctx, query,
		customer.CNPJ, customer.LegalName, nullIfEmpty(customer.TradeName), nullIfEmpty(customer.Address),
		nullIfEmpty(customer.City), nullIfEmpty(customer.State), nullIfEmpty(customer.ZipCode),
		nullIfEmpty(customer.Email), nullIfEmpty(customer.Phone), nullIfEmpty(customer.WhatsApp),
		nullIfEmpty(customer.ContactName), customer.Active,
	).Scan(&customer.ID, &customer.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// Merge conserva el valor actual de cada columna cuando el nuevo viene vacío.
func (r *CustomerRepo) Merge(ctx context.Context, id int64, customer *entity.Customer) error {
	query := `
		UPDATE clientes SET
			razao_social     = COALESCE(NULLIF($2, ''), razao_social),
			nome_fantasia    = COALESCE(NULLIF($3, ''), nome_fantasia),
			endereco         = COALESCE(NULLIF($4, ''), endereco),
			cidade           = COALESCE(NULLIF($5, ''), cidade),
			uf               = COALESCE(NULLIF($6, ''), uf),
			cep              = COALESCE(NULLIF($7, ''), cep),
			email_contato    = COALESCE(NULLIF($8, ''), email_contato),
			telefone_contato = COALESCE(NULLIF($9, ''), telefone_contato),
			whatsapp_numero  = COALESCE(NULLIF($10, ''), whatsapp_numero),
			nome_contato     = COALESCE(NULLIF($11, ''), nome_contato)
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id,
		customer.LegalName, customer.TradeName, customer.Address, customer.City, customer.State,
		customer.ZipCode, customer.Email, customer.Phone, customer.WhatsApp, customer.ContactName,
	)
	if err != nil {
		return fmt.Errorf("merge cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update reemplaza todos los campos editables.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE clientes SET
			cnpj = $2, razao_social = $3, nome_fantasia = $4, endereco = $5, cidade = $6, uf = $7,
			cep = $8, email_contato = $9, telefone_contato = $10, whatsapp_numero = $11,
			nome_contato = $12, ativo = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, customer.ID,
		customer.CNPJ, customer.LegalName, nullIfEmpty(customer.TradeName), nullIfEmpty(customer.Address),
		nullIfEmpty(customer.City), nullIfEmpty(customer.State), nullIfEmpty(customer.ZipCode),
		nullIfEmpty(customer.Email), nullIfEmpty(customer.Phone), nullIfEmpty(customer.WhatsApp),
		nullIfEmpty(customer.ContactName), customer.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes c WHERE c.id = $1`
	return r.getOne(ctx, query, id)
}

// GetByCNPJ obtiene un cliente por CNPJ (solo dígitos).
func (r *CustomerRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes c WHERE c.cnpj = $1`
	return r.getOne(ctx, query, cnpj)
}

func (r *CustomerRepo) getOne(ctx context.Context, query string, arg any) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, arg).Scan(customerDest(&c)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// List clientes con los materiales que entregaron (por CNPJ del emisor de sus notas).
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `, COALESCE(m.materiais, 'Nenhum')
		FROM clientes c
		LEFT JOIN LATERAL (
			SELECT STRING_AGG(DISTINCT i.material, ', ' ORDER BY i.material) AS materiais
			FROM notas_fiscais nf
			JOIN itens_notas_fiscais i ON i.nota_fiscal_id = nf.id
			WHERE nf.emitente_cnpj = c.cnpj
		) m ON TRUE
		ORDER BY c.razao_social`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		dest := append(customerDest(&c), &c.Materials)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("list clientes scan: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func customerDest(c *entity.Customer) []any {
	return []any{
		&c.ID, &c.CNPJ, &c.LegalName, &c.TradeName, &c.Address,
		&c.City, &c.State, &c.ZipCode, &c.Email,
		&c.Phone, &c.WhatsApp, &c.ContactName,
		&c.Active, &c.RegisteredAt,
	}
}
