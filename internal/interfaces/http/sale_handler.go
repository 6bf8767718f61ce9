package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/sales"
)

// SaleHandler registro, validación, reversión y reportes de ventas.
type SaleHandler struct {
	registerUC   *sales.RegisterUseCase
	validationUC *sales.ValidationUseCase
	reportUC     *sales.ReportUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(registerUC *sales.RegisterUseCase, validationUC *sales.ValidationUseCase, reportUC *sales.ReportUseCase) *SaleHandler {
	return &SaleHandler{registerUC: registerUC, validationUC: validationUC, reportUC: reportUC}
}

// Register registra la venta, marca las notas como vendidas y vincula los ítems.
// @Summary      Registrar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterSaleRequest  true  "Ítems vendidos y datos de la venta"
// @Success      201   {object}  dto.RegisterSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/register [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, err := h.registerUC.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Validate pre-valida un lote de venta sin modificar datos.
// @Summary      Validar lote de venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ValidateSaleRequest  true  "Ítems y valor"
// @Success      200   {object}  dto.ValidateSaleResponse
// @Failure      400   {object}  dto.SaleValidationFailure
// @Router       /api/sales/validate [post]
func (h *SaleHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, err := h.validationUC.Validate(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ValidateItem GET /api/sales/validate/item/:id
// @Summary      Validar un ítem para venta
// @Tags         sales
// @Produce      json
// @Param        id   path      int  true  "ID del ítem"
// @Success      200  {object}  dto.ValidateItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/validate/item/{id} [get]
func (h *SaleHandler) ValidateItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.validationUC.ValidateItem(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ValidationStats GET /api/sales/validate/stats
// @Summary      Estadísticas para la validación de ventas
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.ValidationStatsResponse
// @Router       /api/sales/validate/stats [get]
func (h *SaleHandler) ValidationStats(c *fiber.Ctx) error {
	res, err := h.validationUC.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Reverse deshace la venta y reabre sus notas.
// @Summary      Desfazer venda
// @Tags         sales
// @Produce      json
// @Param        id   path      int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleReversalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Reverse(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.registerUC.Reverse(c.UserContext(), id, ClientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// History GET /api/sales?cliente=&pedido=&data=
// @Summary      Historial de ventas
// @Tags         sales
// @Produce      json
// @Param        cliente  query     string  false  "Comprador (parcial)"
// @Param        pedido   query     string  false  "Pedido de compra"
// @Param        data     query     string  false  "Fecha AAAA-MM-DD"
// @Success      200      {array}   dto.SaleHistoryItem
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) History(c *fiber.Ctx) error {
	var q dto.SaleHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody()
	}
	res, err := h.reportUC.History(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Metrics GET /api/sales/metrics?dataInicio=&dataFim=
// @Summary      Métricas de ventas del período
// @Tags         sales
// @Produce      json
// @Param        dataInicio  query     string  false  "AAAA-MM-DD"
// @Param        dataFim     query     string  false  "AAAA-MM-DD"
// @Success      200         {object}  dto.SalesMetricsResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/sales/metrics [get]
func (h *SaleHandler) Metrics(c *fiber.Ctx) error {
	var q dto.SalesPeriodQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody()
	}
	res, err := h.reportUC.Metrics(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Charts GET /api/sales/charts?tipo=
// @Summary      Series para gráficos de ventas
// @Tags         sales
// @Produce      json
// @Param        tipo        query     string  true   "vendas_por_periodo, top_clientes o vendas_por_material"
// @Param        dataInicio  query     string  false  "AAAA-MM-DD"
// @Param        dataFim     query     string  false  "AAAA-MM-DD"
// @Success      200         {array}   dto.ChartPointResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/sales/charts [get]
func (h *SaleHandler) Charts(c *fiber.Ctx) error {
	var q dto.SalesPeriodQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody()
	}
	res, err := h.reportUC.Charts(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ManagingUnits GET /api/sales/managing-units
// @Summary      Unidades gestoras con ventas
// @Tags         sales
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/sales/managing-units [get]
func (h *SaleHandler) ManagingUnits(c *fiber.Ctx) error {
	res, err := h.reportUC.ManagingUnits(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Materials GET /api/sales/materials
// @Summary      Materiales presentes en las notas
// @Tags         sales
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/sales/materials [get]
func (h *SaleHandler) Materials(c *fiber.Ctx) error {
	res, err := h.reportUC.Materials(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Details GET /api/sales/:id
// @Summary      Detalle de la venta con ítems agrupados por material
// @Tags         sales
// @Produce      json
// @Param        id   path      int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) Details(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.reportUC.Details(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// PDF GET /api/sales/:id/pdf
// @Summary      Extracto PDF de la venta
// @Tags         sales
// @Produce      application/pdf
// @Param        id   path      int  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) PDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	data, err := h.reportUC.PDF(c.UserContext(), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="venda-%d.pdf"`, id))
	return c.Send(data)
}
