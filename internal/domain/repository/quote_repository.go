package repository

import (
	"context"

	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// QuoteFilter filtros del listado de cotizaciones. Campos vacíos no filtran.
type QuoteFilter struct {
	SellerID  string
	Status    string
	ClientNIT string
	ProjectID string
	Limit     int
	Offset    int
}

// QuoteHeaderUpdate cambios permitidos sobre la cabecera. Nil = sin cambio.
type QuoteHeaderUpdate struct {
	Status      *string
	Description *string
	ProjectID   *string // "" desvincula el proyecto
}

// QuoteRepository define el puerto de persistencia para Quote y sus líneas.
type QuoteRepository interface {
	// NextNumber toma el siguiente consecutivo de la secuencia de cotizaciones.
	NextNumber(ctx context.Context) (int64, error)
	// Create inserta cabecera y líneas (usar dentro de una transacción).
	Create(ctx context.Context, quote *entity.Quote) error
	// GetByID devuelve la cotización con sus líneas ordenadas; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	List(ctx context.Context, f QuoteFilter) ([]*entity.Quote, int, error)
	UpdateHeader(ctx context.Context, id string, upd QuoteHeaderUpdate) error
	// GetLine devuelve una línea de la cotización; (nil, nil) si no existe.
	GetLine(ctx context.Context, quoteID, lineID string) (*entity.QuoteLine, error)
	// UpdateLineValues actualiza costo, venta y total de la línea (último en escribir gana).
	UpdateLineValues(ctx context.Context, line *entity.QuoteLine) error
	// RefreshTotals recalcula y guarda valor, IVA y total de la cabecera desde sus líneas.
	RefreshTotals(ctx context.Context, quoteID string) error
}
