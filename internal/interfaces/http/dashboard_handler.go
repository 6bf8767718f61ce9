package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/reciclagem-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// SalesSummary devuelve notas vendidas, ofertadas y en lote junto al total vendido.
// No requiere parámetros.
// @Summary      Resumen de ventas
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.SalesSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/sales-summary [get]
func (h *DashboardHandler) SalesSummary(c *fiber.Ctx) error {
	summary, err := h.uc.SalesSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
