package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

type classificationRepo struct {
	s  *Store
	at access
}

var _ repository.ClassificationRepository = (*classificationRepo)(nil)

func (r *classificationRepo) MaterialFor(_ context.Context, ncm string) (string, error) {
	if err := r.s.failure("classifications.MaterialFor"); err != nil {
		return "", err
	}
	var material string
	err := r.at(func(st *state) error {
		material = st.ncm[ncm]
		return nil
	})
	return material, err
}

func (r *classificationRepo) Get(_ context.Context, ncm string) (*entity.NCMClassification, error) {
	var out *entity.NCMClassification
	err := r.at(func(st *state) error {
		if m, ok := st.ncm[ncm]; ok {
			out = &entity.NCMClassification{NCM: ncm, Material: m}
		}
		return nil
	})
	return out, err
}

func (r *classificationRepo) List(_ context.Context) ([]entity.NCMClassification, error) {
	var out []entity.NCMClassification
	err := r.at(func(st *state) error {
		for ncm, m := range st.ncm {
			out = append(out, entity.NCMClassification{NCM: ncm, Material: m})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].NCM < out[j].NCM })
	return out, err
}

func (r *classificationRepo) Create(_ context.Context, c *entity.NCMClassification) error {
	return r.at(func(st *state) error {
		if _, ok := st.ncm[c.NCM]; ok {
			return domain.ErrDuplicate
		}
		st.ncm[c.NCM] = c.Material
		return nil
	})
}

func (r *classificationRepo) Update(_ context.Context, c *entity.NCMClassification) error {
	return r.at(func(st *state) error {
		if _, ok := st.ncm[c.NCM]; !ok {
			return domain.ErrNotFound
		}
		st.ncm[c.NCM] = c.Material
		return nil
	})
}

func (r *classificationRepo) Delete(_ context.Context, ncm string) error {
	return r.at(func(st *state) error {
		if _, ok := st.ncm[ncm]; !ok {
			return domain.ErrNotFound
		}
		delete(st.ncm, ncm)
		return nil
	})
}
