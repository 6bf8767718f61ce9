// Package inventory forma lotes de notas disponibles para un material y los vincula
// a una unidad gestora.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	domaininv "github.com/jhoicas/reciclagem-api/internal/domain/inventory"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

// LotUseCase búsqueda de notas para lote (cliente prioritario primero) y creación del lote.
type LotUseCase struct {
	txRunner  TxRunner
	items     repository.InvoiceItemRepository
	analytics repository.AnalyticsRepository
	tolerance decimal.Decimal
	log       *logger.Logger
	now       func() time.Time
}

// NewLotUseCase construye el caso de uso. tolerance es el exceso admitido sobre la
// cantidad pedida (0.05 = 5%).
func NewLotUseCase(
	txRunner TxRunner,
	items repository.InvoiceItemRepository,
	analytics repository.AnalyticsRepository,
	tolerance decimal.Decimal,
	log *logger.Logger,
) *LotUseCase {
	return &LotUseCase{
		txRunner:  txRunner,
		items:     items,
		analytics: analytics,
		tolerance: tolerance,
		log:       log,
		now:       time.Now,
	}
}

// ClientsByMaterial clientes (o emisores sin cliente) con notas disponibles del material.
func (uc *LotUseCase) ClientsByMaterial(ctx context.Context, material string, year *int) ([]dto.LotCustomerResponse, error) {
	if strings.TrimSpace(material) == "" {
		return nil, domain.MissingFields("material")
	}
	rows, err := uc.analytics.LotCustomers(ctx, strings.TrimSpace(material), year)
	if err != nil {
		return nil, fmt.Errorf("lotes: clientes do material: %w", err)
	}
	out := make([]dto.LotCustomerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LotCustomerResponse{CustomerID: r.CustomerID, Name: r.IssuerName})
	}
	return out, nil
}

// AvailableInvoices selecciona notas del cliente prioritario y, si no alcanza, de los demás.
// No alcanzar la cantidad es un resultado de negocio: Success=false con mensaje.
func (uc *LotUseCase) AvailableInvoices(ctx context.Context, in dto.LotSearchRequest) (*dto.LotSearchResponse, error) {
	var missing []string
	if strings.TrimSpace(in.Material) == "" {
		missing = append(missing, "material")
	}
	if in.CustomerID <= 0 {
		missing = append(missing, "clienteId")
	}
	if in.Year <= 0 {
		missing = append(missing, "ano")
	}
	if !in.Quantity.IsPositive() {
		missing = append(missing, "quantidade")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	selector := domaininv.NewLotSelector(in.Quantity, uc.tolerance)
	filter := repository.LotFilter{
		Material:   strings.TrimSpace(in.Material),
		Year:       in.Year,
		CustomerID: in.CustomerID,
	}
	prioritized, err := uc.items.LotCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("lotes: notas do cliente %d: %w", in.CustomerID, err)
	}
	selector.Offer(prioritized)

	if !selector.Complete() {
		filter.ExcludeCustomer = true
		others, err := uc.items.LotCandidates(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("lotes: notas de outros clientes: %w", err)
		}
		selector.Offer(others)
	}

	if !selector.Complete() {
		uc.log.Info().
			Str("material", filter.Material).
			Str("alvo", selector.Target().String()).
			Str("total", selector.Total().String()).
			Msg("estoque insuficiente para o lote")
		return &dto.LotSearchResponse{
			Success: false,
			Message: fmt.Sprintf("%s: encontrado %s de %s.",
				domain.ErrInsufficientInventory.Error(), selector.Total().String(), selector.Target().String()),
		}, nil
	}

	total, target, limit := selector.Total(), selector.Target(), selector.Limit()
	selected := selector.Selected()
	if selected == nil {
		selected = []entity.LotCandidate{}
	}
	return &dto.LotSearchResponse{
		Success:  true,
		Invoices: selected,
		Total:    &total,
		Target:   &target,
		Limit:    &limit,
	}, nil
}

// Create vincula las notas disponibles al nuevo lote y a la unidad gestora confirmada.
func (uc *LotUseCase) Create(ctx context.Context, in dto.CreateLotRequest) (*dto.CreateLotResponse, error) {
	var missing []string
	if strings.TrimSpace(in.BusinessUnit) == "" {
		missing = append(missing, "unidadeGestora")
	}
	if len(in.InvoiceIDs) == 0 {
		missing = append(missing, "notasIds")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	lotNumber := fmt.Sprintf("LOTE-%d", uc.now().UnixMilli())
	var updated int64
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		n, err := uow.Invoices().AssignLot(ctx, in.InvoiceIDs, lotNumber, strings.TrimSpace(in.BusinessUnit))
		if err != nil {
			return fmt.Errorf("lotes: vincular notas: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: nenhuma das notas informadas está disponível", domain.ErrConflict)
		}
		updated = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("lote", lotNumber).Int64("notas", updated).Msg("lote criado")
	return &dto.CreateLotResponse{
		Success:         true,
		Message:         fmt.Sprintf("Lote %s criado com %d nota(s).", lotNumber, updated),
		LotNumber:       lotNumber,
		InvoicesUpdated: updated,
	}, nil
}
