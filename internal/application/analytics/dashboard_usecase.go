// Package analytics contiene el resumen de ventas del dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen de notas vendidas, ofertadas y en lote.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// SalesSummary construye el SalesSummaryDTO.
//
// Dos llamadas en paralelo:
//  1. StatusCounts           → notas vendidas, ofertadas y en lote
//  2. SalesMetrics(sin rango) → cantidad y valor total de ventas
func (uc *DashboardUseCase) SalesSummary(ctx context.Context) (*dto.SalesSummaryDTO, error) {
	type countsResult struct {
		counts []repository.StatusCount
		err    error
	}
	type metricsResult struct {
		metrics repository.SalesMetrics
		err     error
	}

	countsCh := make(chan countsResult, 1)
	metricsCh := make(chan metricsResult, 1)

	go func() {
		counts, err := uc.analyticsRepo.StatusCounts(ctx)
		countsCh <- countsResult{counts, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.SalesMetrics(ctx, nil, nil)
		metricsCh <- metricsResult{m, err}
	}()

	counts := <-countsCh
	metrics := <-metricsCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: notas por status: %w", counts.err)
	}
	if metrics.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de vendas: %w", metrics.err)
	}

	out := &dto.SalesSummaryDTO{
		SoldValue: metrics.metrics.TotalValue.Round(2),
		Sales:     metrics.metrics.TotalSales,
	}
	for _, c := range counts.counts {
		switch c.Status {
		case entity.StatusSold:
			out.SoldInvoices = c.Count
		case entity.StatusOffered:
			out.OfferedInvoices = c.Count
		case entity.StatusInLot:
			out.InLotInvoices = c.Count
		}
	}
	return out, nil
}
