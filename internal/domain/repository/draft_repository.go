package repository

import (
	"context"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// DraftRepository almacén de borradores de cotización (no transaccional, con TTL).
type DraftRepository interface {
	Save(ctx context.Context, d *entity.Draft) error
	// Get devuelve domain.ErrNotFound si el borrador no existe o expiró.
	Get(ctx context.Context, id string) (*entity.Draft, error)
	// Update lee, aplica fn y escribe de forma atómica respecto a otros escritores del mismo
	// borrador. Si fn devuelve error no se escribe nada.
	Update(ctx context.Context, id string, fn func(d *entity.Draft) error) (*entity.Draft, error)
	Delete(ctx context.Context, id string) error
}
