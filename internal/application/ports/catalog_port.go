package ports

import (
	"context"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// CatalogSearcher búsqueda de clientes y productos en la intranet. Cero resultados es una
// lista vacía, no un error.
type CatalogSearcher interface {
	SearchClients(ctx context.Context, query string) ([]entity.Client, error)
	SearchProducts(ctx context.Context, query string) ([]entity.Product, error)
}

// JSONCache caché clave/valor de respuestas serializadas en JSON.
type JSONCache interface {
	// GetJSON reporta si la clave existía.
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
}
