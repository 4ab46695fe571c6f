package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrSuperseded indica que una búsqueda fue reemplazada por otra más reciente del mismo usuario.
	ErrSuperseded = errors.New("búsqueda reemplazada por una más reciente")
	// ErrExternalService agrupa fallas de colaboradores externos (catálogo, LLM).
	ErrExternalService = errors.New("servicio externo no disponible")
	// ErrRateLimited se devuelve cuando el usuario excede la cuota de un recurso costoso.
	ErrRateLimited = errors.New("límite de solicitudes excedido")
)
