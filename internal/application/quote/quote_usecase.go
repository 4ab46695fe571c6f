package quote

import (
	"context"
	"fmt"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

// QuoteUseCase vista de detalle y administración de cotizaciones ya enviadas.
type QuoteUseCase struct {
	quotes   repository.QuoteRepository
	projects repository.ProjectRepository
	log      *logger.Logger
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(quotes repository.QuoteRepository, projects repository.ProjectRepository, log *logger.Logger) *QuoteUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &QuoteUseCase{quotes: quotes, projects: projects, log: log}
}

// GetQuote cabecera, líneas con utilidad por línea y totales recalculados desde lo persistido.
func (uc *QuoteUseCase) GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToQuoteResponse(q, true), nil
}

// ListQuotes listado paginado con filtros.
func (uc *QuoteUseCase) ListQuotes(ctx context.Context, in dto.ListQuotesQuery) (*dto.QuoteListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.quotes.List(ctx, repository.QuoteFilter{
		SellerID:  in.SellerID,
		Status:    in.Status,
		ClientNIT: in.ClientNIT,
		ProjectID: in.ProjectID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.QuoteListResponse{
		Items: make([]dto.QuoteResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, q := range list {
		out.Items = append(out.Items, *ToQuoteResponse(q, false))
	}
	return out, nil
}

// UpdateQuote cambia estado, descripción o proyecto asociado.
func (uc *QuoteUseCase) UpdateQuote(ctx context.Context, id string, in dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	if in.Status == nil && in.Description == nil && in.ProjectID == nil {
		return nil, ErrNothingToUpdate
	}
	if in.Status != nil && !entity.ValidQuoteStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}
	if in.ProjectID != nil && *in.ProjectID != "" {
		p, err := uc.projects.GetByID(ctx, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: proyecto %s", domain.ErrNotFound, *in.ProjectID)
		}
	}
	if err := uc.quotes.UpdateHeader(ctx, id, repository.QuoteHeaderUpdate{
		Status:      in.Status,
		Description: in.Description,
		ProjectID:   in.ProjectID,
	}); err != nil {
		return nil, err
	}
	return uc.GetQuote(ctx, id)
}

// UpdateLineValues edita costo y/o venta de una línea enviada. Cada campo se guarda por
// separado (último en escribir gana) y se refrescan el total de la línea y la cabecera.
func (uc *QuoteUseCase) UpdateLineValues(ctx context.Context, quoteID, lineID string, in dto.UpdateLineValuesRequest) (*dto.QuoteResponse, error) {
	if in.UnitCost == nil && in.UnitSale == nil {
		return nil, ErrNothingToUpdate
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.UnitSale != nil && in.UnitSale.IsNegative() {
		return nil, fmt.Errorf("%w: el precio de venta no puede ser negativo", domain.ErrInvalidInput)
	}
	line, err := uc.quotes.GetLine(ctx, quoteID, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if in.UnitCost != nil {
		line.UnitCost = *in.UnitCost
	}
	if in.UnitSale != nil {
		line.UnitSale = *in.UnitSale
	}
	line.RefreshTotal()
	if err := uc.quotes.UpdateLineValues(ctx, line); err != nil {
		return nil, err
	}
	if err := uc.quotes.RefreshTotals(ctx, quoteID); err != nil {
		return nil, err
	}
	uc.log.Info().Str("quote_id", quoteID).Str("line_id", lineID).Msg("línea de cotización actualizada")
	return uc.GetQuote(ctx, quoteID)
}

func (uc *QuoteUseCase) find(ctx context.Context, id string) (*entity.Quote, error) {
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return q, nil
}
