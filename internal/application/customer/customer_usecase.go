// Package customer gestiona el registro de clientes (proveedores de material) por CNPJ.
package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

// UseCase casos de uso de clientes.
type UseCase struct {
	repo repository.CustomerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CustomerRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Upsert crea el cliente o, si el CNPJ ya existe, completa sus datos con los campos
// informados. created indica si el cliente es nuevo.
func (uc *UseCase) Upsert(ctx context.Context, in dto.CustomerRequest) (resp *dto.CustomerResponse, created bool, err error) {
	c, err := toEntity(in)
	if err != nil {
		return nil, false, err
	}
	existing, err := uc.repo.GetByCNPJ(ctx, c.CNPJ)
	if err != nil {
		return nil, false, fmt.Errorf("clientes: buscar cnpj: %w", err)
	}
	if existing != nil {
		if err := uc.repo.Merge(ctx, existing.ID, c); err != nil {
			return nil, false, fmt.Errorf("clientes: atualizar %d: %w", existing.ID, err)
		}
		resp, err := uc.GetByID(ctx, existing.ID)
		return resp, false, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, false, fmt.Errorf("%w: cliente com CNPJ %s já cadastrado", domain.ErrDuplicate, c.CNPJ)
		}
		return nil, false, fmt.Errorf("clientes: criar: %w", err)
	}
	return toResponse(c), true, nil
}

// Update reemplaza todos los campos del cliente id.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := toEntity(in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	if err := uc.repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("%w: cliente %d não encontrado", domain.ErrNotFound, id)
		case errors.Is(err, domain.ErrDuplicate):
			return nil, fmt.Errorf("%w: CNPJ %s pertence a outro cliente", domain.ErrDuplicate, c.CNPJ)
		}
		return nil, fmt.Errorf("clientes: atualizar %d: %w", id, err)
	}
	return uc.GetByID(ctx, id)
}

// GetByID devuelve domain.ErrNotFound si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("clientes: buscar %d: %w", id, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cliente %d não encontrado", domain.ErrNotFound, id)
	}
	return toResponse(c), nil
}

// GetByCNPJ acepta el CNPJ con o sin máscara.
func (uc *UseCase) GetByCNPJ(ctx context.Context, cnpj string) (*dto.CustomerResponse, error) {
	digits := onlyDigits(cnpj)
	c, err := uc.repo.GetByCNPJ(ctx, digits)
	if err != nil {
		return nil, fmt.Errorf("clientes: buscar cnpj: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cliente com CNPJ %s não encontrado", domain.ErrNotFound, digits)
	}
	return toResponse(c), nil
}

// List clientes con los materiales que entregaron.
func (uc *UseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("clientes: listar: %w", err)
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toResponse(c))
	}
	return out, nil
}

func toEntity(in dto.CustomerRequest) (*entity.Customer, error) {
	cnpj := onlyDigits(in.CNPJ)
	var missing []string
	if cnpj == "" {
		missing = append(missing, "cnpj")
	}
	if strings.TrimSpace(in.LegalName) == "" {
		missing = append(missing, "razao_social")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}
	if len(cnpj) != 14 {
		return nil, domain.NewValidationError("cnpj", "CNPJ deve ter 14 dígitos")
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &entity.Customer{
		CNPJ:        cnpj,
		LegalName:   strings.TrimSpace(in.LegalName),
		TradeName:   strings.TrimSpace(in.TradeName),
		Address:     strings.TrimSpace(in.Address),
		City:        strings.TrimSpace(in.City),
		State:       strings.ToUpper(strings.TrimSpace(in.State)),
		ZipCode:     onlyDigits(in.ZipCode),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		WhatsApp:    onlyDigits(in.WhatsApp),
		ContactName: strings.TrimSpace(in.ContactName),
		Active:      active,
	}, nil
}

func toResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		CNPJ:         c.CNPJ,
		LegalName:    c.LegalName,
		TradeName:    c.TradeName,
		Address:      c.Address,
		City:         c.City,
		State:        c.State,
		ZipCode:      c.ZipCode,
		Email:        c.Email,
		Phone:        c.Phone,
		WhatsApp:     c.WhatsApp,
		ContactName:  c.ContactName,
		Active:       c.Active,
		RegisteredAt: c.RegisteredAt,
		Materials:    c.Materials,
	}
}

// onlyDigits quita la máscara (12.345.678/0001-90 -> 12345678000190).
func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
