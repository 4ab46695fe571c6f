package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/infrastructure/metrics"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

// RequestLogger registra cada petición con zerolog. Los 5xx salen en nivel error con el
// error original que dejó writeError.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		evt := log.Info()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error()
		}
		evt = evt.
			Str("method", c.Method()).
			Str("route", c.Route().Path).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds())
		if uid := GetUserID(c); uid != "" {
			evt = evt.Str("user_id", uid)
		}
		if err, ok := c.Locals(localError).(error); ok {
			evt = evt.Err(err)
		} else if chainErr != nil {
			evt = evt.Err(chainErr)
		}
		evt.Msg("http request")
		return chainErr
	}
}

// Metrics cuenta peticiones por método, plantilla de ruta y estado.
func Metrics(m *metrics.Prometheus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := m.HTTPStarted()
		err := c.Next()
		m.HTTPFinished(c.Method(), c.Route().Path, c.Response().StatusCode(), start)
		return err
	}
}

// RateLimit limita por usuario autenticado con ulule/limiter. Si el almacén falla la petición
// pasa; el límite protege la cuota del proveedor, no la disponibilidad del servicio.
func RateLimit(lim *limiter.Limiter, scope string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if lim == nil {
			return c.Next()
		}
		key := scope + ":" + GetUserID(c)
		if GetUserID(c) == "" {
			key = scope + ":ip:" + c.IP()
		}
		res, err := lim.Get(c.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("scope", scope).Msg("rate limiter no disponible")
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset, 10))
		if res.Reached {
			retryAfter := res.Reset - time.Now().Unix()
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(retryAfter, 10))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "demasiadas solicitudes al asistente, intente en un momento",
			})
		}
		return c.Next()
	}
}
