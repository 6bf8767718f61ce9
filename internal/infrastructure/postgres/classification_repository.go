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

var _ repository.ClassificationRepository = (*ClassificationRepo)(nil)

// ClassificationRepo tabla classificacao_ncm.
type ClassificationRepo struct {
	q Querier
}

// NewClassificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClassificationRepository(q Querier) *ClassificationRepo {
	return &ClassificationRepo{q: q}
}

// MaterialFor devuelve "" si el NCM no está clasificado.
func (r *ClassificationRepo) MaterialFor(ctx context.Context, ncm string) (string, error) {
	c, err := r.Get(ctx, ncm)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", nil
	}
	return c.Material, nil
}

// Get nil, nil si no existe.
func (r *ClassificationRepo) Get(ctx context.Context, ncm string) (*entity.NCMClassification, error) {
	var c entity.NCMClassification
	err := r.q.QueryRow(ctx, `SELECT ncm, material FROM classificacao_ncm WHERE ncm = $1`, ncm).
		Scan(&c.NCM, &c.Material)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get classificacao ncm: %w", err)
	}
	return &c, nil
}

func (r *ClassificationRepo) List(ctx context.Context) ([]entity.NCMClassification, error) {
	rows, err := r.q.Query(ctx, `SELECT ncm, material FROM classificacao_ncm ORDER BY ncm`)
	if err != nil {
		return nil, fmt.Errorf("list classificacao ncm: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entity.NCMClassification])
	if err != nil {
		return nil, fmt.Errorf("list classificacao ncm scan: %w", err)
	}
	return out, nil
}

func (r *ClassificationRepo) Create(ctx context.Context, c *entity.NCMClassification) error {
	_, err := r.q.Exec(ctx, `INSERT INTO classificacao_ncm (ncm, material) VALUES ($1, $2)`, c.NCM, c.Material)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert classificacao ncm: %w", err)
	}
	return nil
}

func (r *ClassificationRepo) Update(ctx context.Context, c *entity.NCMClassification) error {
	tag, err := r.q.Exec(ctx, `UPDATE classificacao_ncm SET material = $2 WHERE ncm = $1`, c.NCM, c.Material)
	if err != nil {
		return fmt.Errorf("update classificacao ncm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClassificationRepo) Delete(ctx context.Context, ncm string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM classificacao_ncm WHERE ncm = $1`, ncm)
	if err != nil {
		return fmt.Errorf("delete classificacao ncm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
