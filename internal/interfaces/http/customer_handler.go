package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciclagem-api/internal/application/customer"
	"github.com/jhoicas/reciclagem-api/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *customer.UseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customer.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Upsert POST /api/clients
// @Summary      Crear o actualizar cliente por CNPJ
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.CustomerResponse  "Actualizado"
// @Success      201   {object}  dto.CustomerResponse  "Creado"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *CustomerHandler) Upsert(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, created, err := h.uc.Upsert(c.UserContext(), in)
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(res)
}

// List GET /api/clients
// @Summary      Clientes con materiales entregados
// @Tags         clients
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/clients [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	res, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// GetByID GET /api/clients/:id
// @Summary      Cliente por id
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// GetByCNPJ GET /api/clients/cnpj/:cnpj
// @Summary      Cliente por CNPJ
// @Tags         clients
// @Produce      json
// @Param        cnpj  path      string  true  "CNPJ con o sin máscara"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/cnpj/{cnpj} [get]
func (h *CustomerHandler) GetByCNPJ(c *fiber.Ctx) error {
	cnpj, err := decodeParam(c, "cnpj")
	if err != nil {
		return err
	}
	res, err := h.uc.GetByCNPJ(c.UserContext(), cnpj)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Update PUT /api/clients/:id
// @Summary      Reemplazar datos del cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "ID del cliente"
// @Param        body  body      dto.CustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
