package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/inventory"
	"github.com/jhoicas/reciclagem-api/internal/domain"
)

// LotHandler formación de lotes.
type LotHandler struct {
	uc *inventory.LotUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *inventory.LotUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// ClientsByMaterial GET /api/lots/clients-by-material?material=&ano=
// @Summary      Clientes con notas disponibles del material
// @Tags         lots
// @Produce      json
// @Param        material  query     string  true   "Material"
// @Param        ano       query     int     false  "Año de emisión"
// @Success      200       {array}   dto.LotCustomerResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/lots/clients-by-material [get]
func (h *LotHandler) ClientsByMaterial(c *fiber.Ctx) error {
	year, err := optionalYear(c, "ano")
	if err != nil {
		return err
	}
	res, err := h.uc.ClientsByMaterial(c.UserContext(), c.Query("material"), year)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// AvailableInvoices selecciona notas para el lote. Stock insuficiente responde 200
// con success=false.
// @Summary      Notas para formar lote
// @Tags         lots
// @Produce      json
// @Param        material    query     string  true  "Material"
// @Param        clienteId   query     int     true  "Cliente prioritario"
// @Param        ano         query     int     true  "Año de emisión"
// @Param        quantidade  query     number  true  "Cantidad objetivo"
// @Success      200         {object}  dto.LotSearchResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/lots/available-invoices [get]
func (h *LotHandler) AvailableInvoices(c *fiber.Ctx) error {
	in := dto.LotSearchRequest{Material: c.Query("material")}
	if raw := strings.TrimSpace(c.Query("clienteId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.NewValidationError("clienteId", "identificador inválido")
		}
		in.CustomerID = id
	}
	if raw := strings.TrimSpace(c.Query("ano")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return domain.NewValidationError("ano", "ano inválido")
		}
		in.Year = year
	}
	if raw := strings.TrimSpace(c.Query("quantidade")); raw != "" {
		qty, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.NewValidationError("quantidade", "quantidade inválida")
		}
		in.Quantity = qty
	}
	res, err := h.uc.AvailableInvoices(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Create POST /api/lots/create
// @Summary      Crear lote
// @Tags         lots
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateLotRequest  true  "Unidad gestora y notas"
// @Success      201   {object}  dto.CreateLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lots/create [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
