package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/domain"
)

// localError guarda el error original para que el logger de peticiones lo registre.
const localError = "request_error"

var errInvalidIndex = fmt.Errorf("%w: índice de línea inválido", domain.ErrInvalidInput)

// writeError traduce errores de dominio a respuestas HTTP. Los mensajes de validación se
// devuelven tal cual; los errores no clasificados y los de servicios externos no exponen
// detalles internos.
func writeError(c *fiber.Ctx, err error) error {
	c.Locals(localError, err)
	status, code, msg := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "USER_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrSuperseded):
		return fiber.StatusConflict, "SUPERSEDED", err.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests, "RATE_LIMITED", err.Error()
	case errors.Is(err, domain.ErrExternalService):
		return fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "servicio externo no disponible, intente de nuevo"
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor"
	}
}
