package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

const (
	// HeaderRequestID cabecera de correlación; se respeta la recibida del proxy.
	HeaderRequestID = "X-Request-ID"
	localRequestID  = "request_id"
)

// RequestID asigna un identificador a cada petición y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(localRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// RequestLogger registra método, ruta, status y latencia de cada petición.
// Resuelve el error de la cadena aquí para poder registrar el status final.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("ip", ClientIP(c)).
			Msg("request")
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(localRequestID).(string); ok {
		return id
	}
	return ""
}

// ClientIP IP del cliente para auditoría: primer valor de X-Forwarded-For, luego la
// IP de la conexión. El prefijo IPv4-mapped "::ffff:" se elimina.
func ClientIP(c *fiber.Ctx) string {
	ip := ""
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		ip = strings.TrimSpace(first)
	}
	if ip == "" {
		ip = c.IP()
	}
	ip = strings.TrimPrefix(ip, "::ffff:")
	if ip == "" {
		return "0.0.0.0"
	}
	return ip
}
