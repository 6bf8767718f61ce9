package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciclagem-api/internal/application/classification"
	"github.com/jhoicas/reciclagem-api/internal/application/dto"
)

// NCMHandler mantenimiento de la tabla NCM -> material.
type NCMHandler struct {
	uc *classification.UseCase
}

// NewNCMHandler construye el handler.
func NewNCMHandler(uc *classification.UseCase) *NCMHandler {
	return &NCMHandler{uc: uc}
}

// List GET /api/ncm
// @Summary      Clasificaciones NCM
// @Tags         ncm
// @Produce      json
// @Success      200  {array}  entity.NCMClassification
// @Router       /api/ncm [get]
func (h *NCMHandler) List(c *fiber.Ctx) error {
	res, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Get GET /api/ncm/:ncm
// @Summary      Clasificación de un NCM
// @Tags         ncm
// @Produce      json
// @Param        ncm  path      string  true  "NCM de 8 dígitos"
// @Success      200  {object}  entity.NCMClassification
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ncm/{ncm} [get]
func (h *NCMHandler) Get(c *fiber.Ctx) error {
	res, err := h.uc.Get(c.UserContext(), c.Params("ncm"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Create POST /api/ncm
// @Summary      Clasificar NCM
// @Tags         ncm
// @Accept       json
// @Produce      json
// @Param        body  body      dto.NCMRequest  true  "NCM y material"
// @Success      201   {object}  entity.NCMClassification
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ncm [post]
func (h *NCMHandler) Create(c *fiber.Ctx) error {
	var in dto.NCMRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Update PUT /api/ncm/:ncm
// @Summary      Cambiar material de un NCM
// @Tags         ncm
// @Accept       json
// @Produce      json
// @Param        ncm   path      string          true  "NCM de 8 dígitos"
// @Param        body  body      dto.NCMRequest  true  "Material"
// @Success      200   {object}  entity.NCMClassification
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ncm/{ncm} [put]
func (h *NCMHandler) Update(c *fiber.Ctx) error {
	var in dto.NCMRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, err := h.uc.Update(c.UserContext(), c.Params("ncm"), in)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Delete DELETE /api/ncm/:ncm
// @Summary      Eliminar clasificación
// @Tags         ncm
// @Produce      json
// @Param        ncm  path      string  true  "NCM de 8 dígitos"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ncm/{ncm} [delete]
func (h *NCMHandler) Delete(c *fiber.Ctx) error {
	ncm := c.Params("ncm")
	if err := h.uc.Delete(c.UserContext(), ncm); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Classificação do NCM " + ncm + " removida."})
}
