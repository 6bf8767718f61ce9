package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/inventory"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

// ValidationUseCase pre-validación de lotes de venta. No escribe nada.
type ValidationUseCase struct {
	items     repository.InvoiceItemRepository
	analytics repository.AnalyticsRepository
	tolerance decimal.Decimal
	now       func() time.Time
}

// NewValidationUseCase construye el caso de uso. tolerance es la diferencia relativa
// aceptada entre el valor declarado y el calculado (0.01 = 1%).
func NewValidationUseCase(items repository.InvoiceItemRepository, analytics repository.AnalyticsRepository, tolerance decimal.Decimal) *ValidationUseCase {
	return &ValidationUseCase{items: items, analytics: analytics, tolerance: tolerance, now: time.Now}
}

// Validate verifica que los ítems puedan venderse juntos con el valor y pedido informados.
// Los rechazos se devuelven como *domain.SaleValidationError con el detalle estructurado.
func (uc *ValidationUseCase) Validate(ctx context.Context, in dto.ValidateSaleRequest) (*dto.ValidateSaleResponse, error) {
	var missing []string
	if len(in.ItemIDs) == 0 {
		missing = append(missing, "itens_vendidos_ids")
	}
	if in.TotalValue == nil {
		missing = append(missing, "valor_total")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	ids := uniqueIDs(in.ItemIDs)
	candidates, err := uc.items.GetSaleCandidates(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("validação: itens: %w", err)
	}
	if len(candidates) != len(ids) {
		return nil, &domain.SaleValidationError{
			Reason: "Alguns itens não foram encontrados no sistema.",
			Details: map[string]any{
				"itens_solicitados": len(ids),
				"itens_encontrados": len(candidates),
			},
		}
	}

	purchaseOrder := strings.TrimSpace(in.PurchaseOrder)
	var (
		problems  []domain.SaleProblem
		valid     []dto.ValidatedItem
		computed  = decimal.Zero
		requested = map[string]decimal.Decimal{}
		orders    = map[string]bool{}
	)
	for _, c := range candidates {
		var issues []string
		if c.InvoiceStatus != entity.StatusAvailable && c.InvoiceStatus != entity.StatusInLot {
			issues = append(issues, fmt.Sprintf("Nota fiscal com status '%s' (deve ser 'disponivel' ou 'em_lote')", c.InvoiceStatus))
		}
		if c.SaleID != nil {
			issues = append(issues, fmt.Sprintf("Item já vendido (venda #%d)", *c.SaleID))
		}
		if c.CurrentPurchase != nil && *c.CurrentPurchase != "" {
			orders[*c.CurrentPurchase] = true
			if *c.CurrentPurchase != purchaseOrder {
				issues = append(issues, fmt.Sprintf("Nota vinculada ao pedido de compra %s", *c.CurrentPurchase))
			}
		}
		computed = computed.Add(inventory.EstimatedValue(c.Material, c.Quantity))
		requested[c.Material] = requested[c.Material].Add(c.Quantity)

		if len(issues) > 0 {
			problem := domain.SaleProblem{
				ItemID:        c.ItemID,
				Material:      c.Material,
				Quantity:      c.Quantity,
				InvoiceNumber: c.InvoiceNumber,
				Problems:      issues,
			}
			if c.CurrentPurchase != nil {
				problem.CurrentPurchase = *c.CurrentPurchase
			}
			problems = append(problems, problem)
			continue
		}
		valid = append(valid, dto.ValidatedItem{
			ID:              c.ItemID,
			Material:        c.Material,
			Quantity:        c.Quantity,
			InvoiceNumber:   c.InvoiceNumber,
			CurrentPurchase: c.CurrentPurchase,
		})
	}

	declared := *in.TotalValue
	if !inventory.WithinTolerance(declared, computed, uc.tolerance) {
		return nil, &domain.SaleValidationError{
			Reason: "Valor total não corresponde à soma dos itens.",
			Details: map[string]any{
				"valor_calculado": computed.StringFixed(2),
				"valor_recebido":  declared.StringFixed(2),
				"diferenca":       declared.Sub(computed).Abs().StringFixed(2),
			},
		}
	}
	if len(problems) > 0 {
		return nil, &domain.SaleValidationError{
			Reason:       "Alguns itens possuem problemas que impedem a venda.",
			ItemProblems: problems,
			ValidItems:   len(valid),
		}
	}

	materials := make([]string, 0, len(requested))
	for m := range requested {
		materials = append(materials, m)
	}
	sort.Strings(materials)
	var shortages []domain.StockShortage
	for _, m := range materials {
		available, err := uc.items.AvailableQuantity(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("validação: estoque de %s: %w", m, err)
		}
		if requested[m].GreaterThan(available) {
			shortages = append(shortages, domain.StockShortage{
				Material:  m,
				Requested: requested[m],
				Available: available,
				Deficit:   requested[m].Sub(available),
			})
		}
	}
	if len(shortages) > 0 {
		return nil, &domain.SaleValidationError{
			Reason:         "Quantidade solicitada excede o estoque disponível.",
			StockShortages: shortages,
		}
	}

	missing = missing[:0]
	if strings.TrimSpace(in.BusinessUnit) == "" {
		missing = append(missing, "unidade_gestora")
	}
	if strings.TrimSpace(in.BuyerName) == "" {
		missing = append(missing, "cliente_nome")
	}
	if purchaseOrder == "" {
		missing = append(missing, "numero_pedido_compra")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	found := make([]string, 0, len(orders))
	for o := range orders {
		found = append(found, o)
	}
	sort.Strings(found)
	return &dto.ValidateSaleResponse{
		Success: true,
		Message: "Lote de venda validado com sucesso.",
		Summary: dto.SaleValidationSummary{
			TotalItems:          len(valid),
			TotalValue:          declared.StringFixed(2),
			DistinctMaterials:   len(requested),
			Buyer:               strings.TrimSpace(in.BuyerName),
			BusinessUnit:        strings.TrimSpace(in.BusinessUnit),
			PurchaseOrder:       purchaseOrder,
			PurchaseOrdersFound: found,
		},
		Items: valid,
	}, nil
}

// ValidateItem valida un ítem suelto: problemas impiden venderlo, avisos no.
func (uc *ValidationUseCase) ValidateItem(ctx context.Context, itemID int64) (*dto.ValidateItemResponse, error) {
	candidates, err := uc.items.GetSaleCandidates(ctx, []int64{itemID})
	if err != nil {
		return nil, fmt.Errorf("validação: item %d: %w", itemID, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: item %d não encontrado", domain.ErrNotFound, itemID)
	}
	c := candidates[0]
	available, err := uc.items.AvailableQuantity(ctx, c.Material)
	if err != nil {
		return nil, fmt.Errorf("validação: estoque de %s: %w", c.Material, err)
	}

	problems := []string{}
	warnings := []string{}
	if c.InvoiceStatus != entity.StatusAvailable && c.InvoiceStatus != entity.StatusInLot {
		problems = append(problems, fmt.Sprintf("Nota fiscal com status '%s'", c.InvoiceStatus))
	}
	if c.SaleID != nil {
		problems = append(problems, fmt.Sprintf("Item já vendido (venda #%d)", *c.SaleID))
	}
	if !c.Quantity.IsPositive() {
		problems = append(problems, "Quantidade inválida")
	}
	if c.Quantity.GreaterThan(available) {
		problems = append(problems, "Quantidade excede o estoque disponível")
	}
	if c.InvoiceStatus == entity.StatusInLot {
		warnings = append(warnings, "Item faz parte de um lote")
	}
	if c.CurrentPurchase != nil && *c.CurrentPurchase != "" {
		warnings = append(warnings, fmt.Sprintf("Nota já possui pedido de compra: %s", *c.CurrentPurchase))
	}

	return &dto.ValidateItemResponse{
		Success: true,
		Item: dto.ItemValidationInfo{
			ID:              c.ItemID,
			Material:        c.Material,
			Quantity:        c.Quantity,
			InvoiceNumber:   c.InvoiceNumber,
			IssuerName:      c.IssuerName,
			InvoiceStatus:   string(c.InvoiceStatus),
			CurrentPurchase: c.CurrentPurchase,
		},
		Validation: dto.ItemValidation{
			Valid:          len(problems) == 0,
			Problems:       problems,
			Warnings:       warnings,
			AvailableStock: available,
		},
	}, nil
}

// Stats estadísticas de ventas de los últimos 30 días y de ítems.
func (uc *ValidationUseCase) Stats(ctx context.Context) (*dto.ValidationStatsResponse, error) {
	s, err := uc.analytics.ValidationStats(ctx, uc.now().AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("validação: estatísticas: %w", err)
	}
	out := &dto.ValidationStatsResponse{Success: true}
	out.Stats.Sales.Total = s.TotalSales
	out.Stats.Sales.Last30Days = s.SalesLast30Days
	out.Stats.Sales.TotalValue = s.TotalValue
	out.Stats.Sales.DistinctCustomers = s.DistinctCustomers
	out.Stats.Items.Total = s.TotalItems
	out.Stats.Items.InvalidStatus = s.ItemsInvalidStatus
	out.Stats.Items.AlreadySold = s.ItemsAlreadySold
	return out, nil
}
