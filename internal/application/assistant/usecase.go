// Package assistant convierte un pedido en texto libre en líneas de un borrador de cotización.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/application/ports"
	"github.com/jhoicas/cotizador-api/internal/application/quote"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

// DefaultTimeout límite de la llamada al modelo cuando no se configura otro.
const DefaultTimeout = 30 * time.Second

// ProductLookup búsqueda de productos sin control de vigencia.
type ProductLookup interface {
	LookupProducts(ctx context.Context, query string) ([]entity.Product, error)
}

// Drafts operaciones del borrador que usa el asistente.
type Drafts interface {
	GetDraft(ctx context.Context, ownerID, id string) (*dto.DraftResponse, error)
	AppendItems(ctx context.Context, ownerID, id string, items []quote.DraftItem) (*dto.DraftResponse, error)
}

// UseCase orquesta modelo de lenguaje, catálogo y borrador.
type UseCase struct {
	parser   ports.QuoteRequestParser
	products ProductLookup
	drafts   Drafts
	metrics  ports.Metrics
	log      *logger.Logger
	provider string
	timeout  time.Duration
}

// NewUseCase construye el caso de uso. provider solo se usa como etiqueta de métricas y logs.
func NewUseCase(
	parser ports.QuoteRequestParser,
	products ProductLookup,
	drafts Drafts,
	metrics ports.Metrics,
	log *logger.Logger,
	provider string,
	timeout time.Duration,
) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &UseCase{
		parser:   parser,
		products: products,
		drafts:   drafts,
		metrics:  metrics,
		log:      log.Named("assistant"),
		provider: provider,
		timeout:  timeout,
	}
}

// AddFromText interpreta el texto y agrega al borrador una línea por cada producto del
// catálogo que coincida con cada ítem interpretado. Los ítems sin coincidencias o cuya
// búsqueda falla se reportan en Skipped. Si el modelo no extrae nada el borrador no cambia.
func (uc *UseCase) AddFromText(ctx context.Context, ownerID, draftID, text string) (*dto.AssistantResponse, error) {
	// Verifica propiedad antes de gastar una llamada al modelo.
	current, err := uc.drafts.GetDraft(ctx, ownerID, draftID)
	if err != nil {
		return nil, err
	}

	llmCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	parsed, err := uc.parser.ParseQuoteRequest(llmCtx, strings.TrimSpace(text))
	cancel()
	if err != nil {
		uc.metrics.IncAssistant(uc.provider, ports.ResultError)
		uc.log.Error().Err(err).Str("provider", uc.provider).Msg("fallo al interpretar el pedido")
		return nil, fmt.Errorf("%w: asistente IA: %v", domain.ErrExternalService, err)
	}
	parsed = sanitize(parsed)

	items, skipped := uc.resolve(ctx, parsed)
	out := &dto.AssistantResponse{Parsed: parsed, Skipped: skipped}
	if len(items) == 0 {
		uc.metrics.IncAssistant(uc.provider, ports.ResultEmpty)
		out.Draft = *current
		return out, nil
	}

	updated, err := uc.drafts.AppendItems(ctx, ownerID, draftID, items)
	if err != nil {
		uc.metrics.IncAssistant(uc.provider, ports.ResultError)
		return nil, err
	}
	uc.metrics.IncAssistant(uc.provider, ports.ResultOK)
	uc.log.Info().
		Str("draft_id", draftID).
		Int("parsed", len(parsed)).
		Int("added", len(items)).
		Int("skipped", len(skipped)).
		Msg("pedido interpretado")

	out.Draft = *updated
	out.Added = len(items)
	return out, nil
}

// resolve busca cada ítem en paralelo y conserva el orden del pedido.
func (uc *UseCase) resolve(ctx context.Context, parsed []dto.ParsedQuoteItem) ([]quote.DraftItem, []string) {
	type lookupResult struct {
		products []entity.Product
		err      error
	}
	results := make([]lookupResult, len(parsed))

	var wg sync.WaitGroup
	for i, it := range parsed {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			p, err := uc.products.LookupProducts(ctx, name)
			results[i] = lookupResult{products: p, err: err}
		}(i, it.Product)
	}
	wg.Wait()

	var items []quote.DraftItem
	var skipped []string
	for i, it := range parsed {
		r := results[i]
		if r.err != nil {
			uc.log.Warn().Err(r.err).Str("product", it.Product).Msg("búsqueda de producto fallida; se omite")
			skipped = append(skipped, it.Product)
			continue
		}
		if len(r.products) == 0 {
			skipped = append(skipped, it.Product)
			continue
		}
		for _, p := range r.products {
			items = append(items, quote.DraftItem{
				Product:  p,
				Margin:   it.MarginPercent,
				Quantity: it.Quantity,
			})
		}
	}
	return items, skipped
}

// sanitize descarta ítems sin nombre y trata cantidades o utilidades negativas como no indicadas.
func sanitize(in []dto.ParsedQuoteItem) []dto.ParsedQuoteItem {
	out := make([]dto.ParsedQuoteItem, 0, len(in))
	for _, it := range in {
		it.Product = strings.TrimSpace(it.Product)
		if it.Product == "" {
			continue
		}
		if it.Quantity < 0 {
			it.Quantity = 0
		}
		if it.MarginPercent.Valid && it.MarginPercent.Decimal.IsNegative() {
			it.MarginPercent.Valid = false
		}
		out = append(out, it)
	}
	return out
}
