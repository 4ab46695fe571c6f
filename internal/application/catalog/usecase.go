package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/cotizador-api/internal/application/ports"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

// Longitud mínima de la consulta por tipo de búsqueda.
const (
	MinClientQueryLen  = 2
	MinProductQueryLen = 3
)

// Tipos de búsqueda; forman parte de la clave de caché y de la clave de vigencia.
const (
	KindClients  = "clients"
	KindProducts = "products"
)

// ErrQueryTooShort la consulta no alcanza la longitud mínima.
var ErrQueryTooShort = fmt.Errorf("%w: la búsqueda es demasiado corta", domain.ErrInvalidInput)

// UseCase búsquedas del catálogo con caché y descarte de respuestas obsoletas.
type UseCase struct {
	searcher ports.CatalogSearcher
	cache    ports.JSONCache
	latest   *Latest
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(searcher ports.CatalogSearcher, cache ports.JSONCache, metrics ports.Metrics, log *logger.Logger) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		searcher: searcher,
		cache:    cache,
		latest:   NewLatest(),
		metrics:  metrics,
		log:      log,
	}
}

// SearchClients busca clientes para la sesión dada. Si mientras tanto la misma sesión lanzó
// otra búsqueda de clientes, devuelve domain.ErrSuperseded.
func (uc *UseCase) SearchClients(ctx context.Context, sessionKey, query string) ([]entity.Client, error) {
	return search(ctx, uc, sessionKey, KindClients, query, MinClientQueryLen, uc.searcher.SearchClients)
}

// SearchProducts igual que SearchClients para productos.
func (uc *UseCase) SearchProducts(ctx context.Context, sessionKey, query string) ([]entity.Product, error) {
	return search(ctx, uc, sessionKey, KindProducts, query, MinProductQueryLen, uc.searcher.SearchProducts)
}

// LookupProducts búsqueda de productos sin control de vigencia (la usa el asistente, que
// resuelve varios ítems del mismo pedido en paralelo).
func (uc *UseCase) LookupProducts(ctx context.Context, query string) ([]entity.Product, error) {
	q := normalizeQuery(query)
	if utf8.RuneCountInString(q) < MinProductQueryLen {
		return []entity.Product{}, nil
	}
	var out []entity.Product
	if uc.cacheGet(ctx, cacheKey(KindProducts, q), &out) {
		return out, nil
	}
	out, err := uc.searcher.SearchProducts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: catálogo: %v", domain.ErrExternalService, err)
	}
	if out == nil {
		out = []entity.Product{}
	}
	uc.cacheSet(ctx, cacheKey(KindProducts, q), out)
	return out, nil
}

func search[T any](
	ctx context.Context,
	uc *UseCase,
	sessionKey, kind, query string,
	minLen int,
	fetch func(context.Context, string) ([]T, error),
) ([]T, error) {
	q := normalizeQuery(query)
	if utf8.RuneCountInString(q) < minLen {
		return nil, fmt.Errorf("%w (mínimo %d caracteres)", ErrQueryTooShort, minLen)
	}

	started := time.Now()
	key := sessionKey + ":" + kind
	ctx, gen, done := uc.latest.Begin(ctx, key)
	defer done()

	var out []T
	if uc.cacheGet(ctx, cacheKey(kind, q), &out) {
		uc.metrics.ObserveSearch(kind, ports.ResultCacheHit, time.Since(started))
		return out, nil
	}

	out, err := fetch(ctx, q)
	if !uc.latest.IsCurrent(key, gen) {
		uc.metrics.ObserveSearch(kind, ports.ResultSuperseded, time.Since(started))
		return nil, domain.ErrSuperseded
	}
	if err != nil {
		uc.metrics.ObserveSearch(kind, ports.ResultError, time.Since(started))
		uc.log.Warn().Err(err).Str("kind", kind).Str("query", q).Msg("búsqueda en catálogo fallida")
		return nil, fmt.Errorf("%w: catálogo: %v", domain.ErrExternalService, err)
	}
	if out == nil {
		out = []T{}
	}
	result := ports.ResultOK
	if len(out) == 0 {
		result = ports.ResultEmpty
	}
	uc.metrics.ObserveSearch(kind, result, time.Since(started))
	uc.cacheSet(ctx, cacheKey(kind, q), out)
	return out, nil
}

func (uc *UseCase) cacheGet(ctx context.Context, key string, dst any) bool {
	if uc.cache == nil {
		return false
	}
	ok, err := uc.cache.GetJSON(ctx, key, dst)
	if err != nil {
		uc.log.Debug().Err(err).Str("key", key).Msg("lectura de caché fallida")
		return false
	}
	return ok
}

func (uc *UseCase) cacheSet(ctx context.Context, key string, v any) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.SetJSON(ctx, key, v); err != nil {
		uc.log.Debug().Err(err).Str("key", key).Msg("escritura de caché fallida")
	}
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

func cacheKey(kind, q string) string {
	return "catalog:" + kind + ":" + strings.ToLower(q)
}
