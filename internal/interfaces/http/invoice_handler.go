package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/invoicing"
)

// InvoiceHandler maneja importación, cambios de status y consultas de notas fiscales.
type InvoiceHandler struct {
	importUC *invoicing.ImportUseCase
	statusUC *invoicing.StatusUseCase
	queryUC  *invoicing.QueryUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(importUC *invoicing.ImportUseCase, statusUC *invoicing.StatusUseCase, queryUC *invoicing.QueryUseCase) *InvoiceHandler {
	return &InvoiceHandler{importUC: importUC, statusUC: statusUC, queryUC: queryUC}
}

// Import importa una nota con sus ítems.
// @Summary      Importar nota fiscal
// @Description  Registra la nota en status disponivel y clasifica cada ítem por NCM
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ImportInvoiceRequest  true  "Cabecera e ítems"
// @Success      201   {object}  dto.ImportInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/import [post]
func (h *InvoiceHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, err := h.importUC.Import(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ImportXML importa una NF-e a partir del XML autorizado.
// @Summary      Importar NF-e desde XML
// @Tags         invoices
// @Accept       xml
// @Produce      json
// @Param        unidadeGestora  query     string  true  "Unidad gestora de la nota"
// @Success      201             {object}  dto.ImportInvoiceResponse
// @Failure      400             {object}  dto.ErrorResponse
// @Failure      409             {object}  dto.ErrorResponse
// @Failure      422             {object}  dto.ErrorResponse
// @Router       /api/invoices/import-xml [post]
func (h *InvoiceHandler) ImportXML(c *fiber.Ctx) error {
	res, err := h.importUC.ImportXML(c.UserContext(), c.Body(), c.Query("unidadeGestora"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// BatchStatus cambia status y/o unidad gestora de varias notas en una transacción.
// Las fallas de negocio por nota no abortan el lote.
// @Summary      Actualización de status en lote
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BatchStatusRequest  true  "Notas y cambios"
// @Success      200   {object}  dto.BatchStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/invoices/batch-status [post]
func (h *InvoiceHandler) BatchStatus(c *fiber.Ctx) error {
	var in dto.BatchStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, err := h.statusUC.Batch(c.UserContext(), in, ClientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ReprocessStatus reprocesa el status de una nota; si sale de vendida deshace la venta.
// @Summary      Reprocesar status de una nota
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ReprocessStatusRequest  true  "Nota y nuevo status"
// @Success      200   {object}  dto.ReprocessStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/reprocess-status [post]
func (h *InvoiceHandler) ReprocessStatus(c *fiber.Ctx) error {
	var in dto.ReprocessStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, err := h.statusUC.Reprocess(c.UserContext(), in, ClientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// UpdateStatus PUT /api/invoices/:id/status
// @Summary      Cambiar status de una nota
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "ID de la nota"
// @Param        body  body      dto.UpdateStatusRequest  true  "Nuevo status"
// @Success      200   {object}  dto.StatusChangeResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [put]
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	res, err := h.statusUC.Update(c.UserContext(), id, in, ClientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// GetByID GET /api/invoices/:id
// @Summary      Nota fiscal con ítems
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "ID de la nota"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.queryUC.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Audit GET /api/invoices/:id/audit
// @Summary      Historial de auditoría de la nota
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "ID de la nota"
// @Success      200  {array}   dto.AuditEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/audit [get]
func (h *InvoiceHandler) Audit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.queryUC.Audit(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// StatusCounts GET /api/invoices/status-counts
// @Summary      Cantidad de notas por status
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  dto.StatusCountsResponse
// @Router       /api/invoices/status-counts [get]
func (h *InvoiceHandler) StatusCounts(c *fiber.Ctx) error {
	res, err := h.queryUC.StatusCounts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// MaterialsByStatus GET /api/invoices/materials-by-status
// @Summary      Cantidades por material y status
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  dto.MaterialsByStatus
// @Router       /api/invoices/materials-by-status [get]
func (h *InvoiceHandler) MaterialsByStatus(c *fiber.Ctx) error {
	res, err := h.queryUC.MaterialsByStatus(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Years GET /api/invoices/years
// @Summary      Años de emisión disponibles
// @Tags         invoices
// @Produce      json
// @Success      200  {array}  int
// @Router       /api/invoices/years [get]
func (h *InvoiceHandler) Years(c *fiber.Ctx) error {
	res, err := h.queryUC.Years(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ByCustomer GET /api/invoices/client/:nome?year=
// @Summary      Notas de un emisor o destinatario
// @Tags         invoices
// @Produce      json
// @Param        nome  path      string  true   "Nombre (búsqueda parcial)"
// @Param        year  query     int     false  "Año de emisión"
// @Success      200   {array}   dto.InvoiceLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/client/{nome} [get]
func (h *InvoiceHandler) ByCustomer(c *fiber.Ctx) error {
	year, err := optionalYear(c, "year")
	if err != nil {
		return err
	}
	name, err := decodeParam(c, "nome")
	if err != nil {
		return err
	}
	res, err := h.queryUC.ByCustomer(c.UserContext(), name, year)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ByNumbers GET /api/invoices/by-numbers?numeros=a,b
// @Summary      Notas por número
// @Tags         invoices
// @Produce      json
// @Param        numeros  query     string  true  "Números separados por coma"
// @Success      200      {object}  dto.InvoicesByNumbersResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/invoices/by-numbers [get]
func (h *InvoiceHandler) ByNumbers(c *fiber.Ctx) error {
	res, err := h.queryUC.ByNumbers(c.UserContext(), strings.Split(c.Query("numeros"), ","))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ByPurchaseOrder GET /api/invoices/by-purchase-order?numero=
// @Summary      Notas de un pedido de compra
// @Tags         invoices
// @Produce      json
// @Param        numero  query     string  true  "Número del pedido"
// @Success      200     {array}   dto.InvoiceLineResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/invoices/by-purchase-order [get]
func (h *InvoiceHandler) ByPurchaseOrder(c *fiber.Ctx) error {
	res, err := h.queryUC.ByPurchaseOrder(c.UserContext(), c.Query("numero"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// AvailableForSale GET /api/invoices/available-for-sale?numero_nota=&status=
// @Summary      Notas disponibles u ofertadas para venta
// @Tags         invoices
// @Produce      json
// @Param        numero_nota  query     string  false  "Número de nota"
// @Param        status       query     string  false  "disponivel u ofertada"
// @Success      200          {array}   dto.InvoiceLineResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/invoices/available-for-sale [get]
func (h *InvoiceHandler) AvailableForSale(c *fiber.Ctx) error {
	res, err := h.queryUC.AvailableForSale(c.UserContext(), c.Query("numero_nota"), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Sold GET /api/invoices/sold
// @Summary      Notas vendidas
// @Tags         invoices
// @Produce      json
// @Success      200  {array}  dto.SoldInvoiceResponse
// @Router       /api/invoices/sold [get]
func (h *InvoiceHandler) Sold(c *fiber.Ctx) error {
	res, err := h.queryUC.Sold(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// SoldMaterials GET /api/invoices/sold-materials
// @Summary      Cantidad vendida por material
// @Tags         invoices
// @Produce      json
// @Success      200  {array}  dto.MaterialQuantityResponse
// @Router       /api/invoices/sold-materials [get]
func (h *InvoiceHandler) SoldMaterials(c *fiber.Ctx) error {
	res, err := h.queryUC.SoldMaterials(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}
