package invoicing

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/inventory"
	"github.com/jhoicas/reciclagem-api/internal/domain/lifecycle"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre notas fiscales.
type QueryUseCase struct {
	invoices  repository.InvoiceRepository
	items     repository.InvoiceItemRepository
	audit     repository.AuditRepository
	analytics repository.AnalyticsRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	invoices repository.InvoiceRepository,
	items repository.InvoiceItemRepository,
	audit repository.AuditRepository,
	analytics repository.AnalyticsRepository,
) *QueryUseCase {
	return &QueryUseCase{
		invoices:  invoices,
		items:     items,
		audit:     audit,
		analytics: analytics,
	}
}

// Get devuelve la nota con sus ítems.
func (uc *QueryUseCase) Get(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.ListByInvoice(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoices: itens da nota %d: %w", id, err)
	}
	out := toInvoiceResponse(inv)
	out.Items = make([]dto.InvoiceItemResponse, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			NCM:         it.NCM,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			Material:    it.Material,
			CFOP:        it.CFOP,
			SaleID:      it.SaleID,
		})
	}
	return out, nil
}

// Audit historial de cambios de la nota, más reciente primero.
func (uc *QueryUseCase) Audit(ctx context.Context, id int64) ([]dto.AuditEntryResponse, error) {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return nil, err
	}
	entries, err := uc.audit.ListByInvoice(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoices: auditoria da nota %d: %w", id, err)
	}
	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEntryResponse{
			ID:          e.ID,
			Field:       e.Field,
			OldValue:    e.OldValue,
			NewValue:    e.NewValue,
			IP:          e.IP,
			OperationID: e.OperationID,
			Forced:      e.Forced,
			ChangedAt:   e.ChangedAt,
		})
	}
	return out, nil
}

// StatusCounts cantidad de notas por status; los status sin notas aparecen con cero.
func (uc *QueryUseCase) StatusCounts(ctx context.Context) (*dto.StatusCountsResponse, error) {
	rows, err := uc.analytics.StatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoices: contagem por status: %w", err)
	}
	counts := make(map[string]int64, len(lifecycle.Known))
	for _, s := range lifecycle.Known {
		counts[string(s)] = 0
	}
	for _, r := range rows {
		counts[string(r.Status)] += r.Count
	}
	return &dto.StatusCountsResponse{Success: true, Counts: counts}, nil
}

// MaterialsByStatus agrupa cantidades por material normalizado y status, con "total".
func (uc *QueryUseCase) MaterialsByStatus(ctx context.Context) (dto.MaterialsByStatus, error) {
	rows, err := uc.analytics.MaterialsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoices: materiais por status: %w", err)
	}
	out := dto.MaterialsByStatus{}
	for _, r := range rows {
		name := inventory.NormalizeMaterialName(r.Material)
		if name == "" {
			continue
		}
		bucket, ok := out[name]
		if !ok {
			bucket = map[string]decimal.Decimal{"total": decimal.Zero}
			out[name] = bucket
		}
		bucket[string(r.Status)] = bucket[string(r.Status)].Add(r.Total)
		bucket["total"] = bucket["total"].Add(r.Total)
	}
	return out, nil
}

// Years años de emisión presentes, más reciente primero.
func (uc *QueryUseCase) Years(ctx context.Context) ([]int, error) {
	years, err := uc.analytics.AvailableYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoices: anos: %w", err)
	}
	if years == nil {
		years = []int{}
	}
	return years, nil
}

// ByCustomer notas cuyo emisor o destinatario contiene name.
func (uc *QueryUseCase) ByCustomer(ctx context.Context, name string, year *int) ([]dto.InvoiceLineResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.MissingFields("nome")
	}
	rows, err := uc.analytics.InvoiceLinesByCustomer(ctx, name, year)
	if err != nil {
		return nil, fmt.Errorf("invoices: notas do cliente: %w", err)
	}
	return toLines(rows), nil
}

// ByNumbers busca por números de nota e informa los que no existen.
func (uc *QueryUseCase) ByNumbers(ctx context.Context, numbers []string) (*dto.InvoicesByNumbersResponse, error) {
	clean := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 {
		return nil, domain.MissingFields("numeros")
	}
	rows, err := uc.analytics.InvoiceLinesByNumbers(ctx, clean)
	if err != nil {
		return nil, fmt.Errorf("invoices: notas por número: %w", err)
	}
	found := map[string]bool{}
	for _, r := range rows {
		found[r.Number] = true
	}
	notFound := []string{}
	for _, n := range clean {
		if !found[n] {
			notFound = append(notFound, n)
		}
	}
	return &dto.InvoicesByNumbersResponse{Success: true, Found: toLines(rows), NotFound: notFound}, nil
}

// ByPurchaseOrder notas vinculadas a un pedido de compra.
func (uc *QueryUseCase) ByPurchaseOrder(ctx context.Context, purchaseOrder string) ([]dto.InvoiceLineResponse, error) {
	if strings.TrimSpace(purchaseOrder) == "" {
		return nil, domain.MissingFields("numero")
	}
	rows, err := uc.analytics.InvoiceLinesByPurchaseOrder(ctx, purchaseOrder)
	if err != nil {
		return nil, fmt.Errorf("invoices: notas do pedido: %w", err)
	}
	return toLines(rows), nil
}

// AvailableForSale notas disponivel u ofertada; status solo puede filtrar entre esas dos.
func (uc *QueryUseCase) AvailableForSale(ctx context.Context, number, status string) ([]dto.InvoiceLineResponse, error) {
	var filter *entity.InvoiceStatus
	if status != "" {
		s := entity.InvoiceStatus(status)
		if s != entity.StatusAvailable && s != entity.StatusOffered {
			return nil, domain.NewValidationError("status", "status deve ser 'disponivel' ou 'ofertada'")
		}
		filter = &s
	}
	rows, err := uc.analytics.InvoiceLinesForSale(ctx, strings.TrimSpace(number), filter)
	if err != nil {
		return nil, fmt.Errorf("invoices: notas para venda: %w", err)
	}
	return toLines(rows), nil
}

// Sold notas vendidas.
func (uc *QueryUseCase) Sold(ctx context.Context) ([]dto.SoldInvoiceResponse, error) {
	rows, err := uc.analytics.SoldInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoices: notas vendidas: %w", err)
	}
	out := make([]dto.SoldInvoiceResponse, 0, len(rows))
	for _, r := range rows {
		name := r.RecipientName
		if strings.TrimSpace(name) == "" {
			name = "Não informado"
		}
		out = append(out, dto.SoldInvoiceResponse{
			Number:        r.Number,
			RecipientName: name,
			IssuedAt:      r.IssuedAt,
			PurchaseOrder: r.PurchaseOrder,
		})
	}
	return out, nil
}

// SoldMaterials cantidad vendida por material.
func (uc *QueryUseCase) SoldMaterials(ctx context.Context) ([]dto.MaterialQuantityResponse, error) {
	rows, err := uc.analytics.SoldMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoices: materiais vendidos: %w", err)
	}
	out := make([]dto.MaterialQuantityResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MaterialQuantityResponse{Material: r.Material, Quantity: r.Quantity})
	}
	return out, nil
}

func (uc *QueryUseCase) mustGet(ctx context.Context, id int64) (*entity.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoices: nota %d: %w", id, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: nota fiscal %d não encontrada", domain.ErrNotFound, id)
	}
	return inv, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:             inv.ID,
		AccessKey:      inv.AccessKey,
		Number:         inv.Number,
		IssuedAt:       inv.IssuedAt,
		IssuerTaxID:    inv.IssuerTaxID,
		IssuerName:     inv.IssuerName,
		IssuerState:    inv.IssuerState,
		RecipientTaxID: inv.RecipientTaxID,
		RecipientName:  inv.RecipientName,
		RecipientState: inv.RecipientState,
		Status:         string(inv.Status),
		BusinessUnit:   inv.BusinessUnit,
		PurchaseOrder:  inv.PurchaseOrder,
		LotNumber:      inv.LotNumber,
		CustomerID:     inv.CustomerID,
		UpdatedAt:      inv.UpdatedAt,
	}
}

func toLines(rows []repository.InvoiceLine) []dto.InvoiceLineResponse {
	out := make([]dto.InvoiceLineResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InvoiceLineResponse{
			ID:            r.InvoiceID,
			Number:        r.Number,
			IssuedAt:      r.IssuedAt,
			IssuerName:    r.IssuerName,
			RecipientName: r.RecipientName,
			Status:        string(r.Status),
			BusinessUnit:  r.BusinessUnit,
			PurchaseOrder: r.PurchaseOrder,
			ItemID:        r.ItemID,
			NCM:           r.NCM,
			Description:   r.Description,
			Material:      r.Material,
			Quantity:      r.Quantity,
			Unit:          r.Unit,
		})
	}
	return out
}
