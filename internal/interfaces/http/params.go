package http

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciclagem-api/internal/domain"
)

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidID(name)
	}
	return id, nil
}

// optionalYear lee un año opcional de la query; vacío devuelve nil.
func optionalYear(c *fiber.Ctx, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil || y <= 0 {
		return nil, domain.NewValidationError(name, "ano inválido")
	}
	return &y, nil
}

// decodeParam parámetro de ruta con escapes URL resueltos ("Cooperativa%20A").
func decodeParam(c *fiber.Ctx, name string) (string, error) {
	v, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return "", domain.NewValidationError(name, "parâmetro inválido")
	}
	return v, nil
}
