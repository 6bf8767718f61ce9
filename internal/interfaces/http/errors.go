package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

// NewErrorHandler traduce los errores devueltos por los handlers a dto.ErrorResponse.
// Fuera de producción los 500 incluyen la cadena de error en Details.
func NewErrorHandler(production bool, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var saleErr *domain.SaleValidationError
		if errors.As(err, &saleErr) {
			body := dto.SaleValidationFailure{
				Success:        false,
				Message:        saleErr.Reason,
				Details:        saleErr.Details,
				ItemProblems:   saleErr.ItemProblems,
				StockShortages: saleErr.StockShortages,
			}
			if len(saleErr.ItemProblems) > 0 {
				valid := saleErr.ValidItems
				body.ValidItems = &valid
			}
			return c.Status(fiber.StatusBadRequest).JSON(body)
		}

		var linked *domain.LinkageConflictError
		if errors.As(err, &linked) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "SALE_LINKED",
				Message: linked.Error(),
				Details: fiber.Map{
					"nota_id":           linked.InvoiceID,
					"venda_id":          linked.SaleID,
					"cliente_nome":      linked.Buyer,
					"data_venda":        linked.SaleDate,
					"numero_nf_servico": linked.ServiceNF,
				},
			})
		}

		var validation *domain.ValidationError
		if errors.As(err, &validation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: validation.Error(),
				Details: fiber.Map{"campo": validation.Field},
			})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP", Message: fe.Message})
		}

		status, code := classify(err)
		if status != fiber.StatusInternalServerError {
			return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
		}

		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("erro interno")
		resp := dto.ErrorResponse{Code: "INTERNAL", Message: "Erro interno do servidor"}
		if !production {
			resp.Details = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
}

// classify status HTTP y código para los errores de negocio sin cuerpo estructurado.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusBadRequest, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrNothingToUpdate):
		return fiber.StatusBadRequest, "NOTHING_TO_UPDATE"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInsufficientInventory):
		return fiber.StatusConflict, "INSUFFICIENT_INVENTORY"
	case errors.Is(err, domain.ErrUnclassifiedNCM):
		return fiber.StatusUnprocessableEntity, "UNCLASSIFIED_NCM"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// invalidBody error para cuerpos JSON que no se pueden decodificar.
func invalidBody() error {
	return domain.NewValidationError("body", "corpo da requisição inválido")
}

// invalidID error para parámetros de ruta no numéricos.
func invalidID(param string) error {
	return domain.NewValidationError(param, "identificador inválido")
}
