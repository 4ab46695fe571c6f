package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/application/catalog"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeSearcher struct {
	mu           sync.Mutex
	productCalls []string
	clientCalls  []string
	products     map[string][]entity.Product
	clients      map[string][]entity.Client
	err          error
	block        map[string]chan struct{} // consulta -> se libera al cerrar
	started      chan string
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		products: map[string][]entity.Product{},
		clients:  map[string][]entity.Client{},
		block:    map[string]chan struct{}{},
		started:  make(chan string, 10),
	}
}

func (f *fakeSearcher) SearchClients(ctx context.Context, q string) ([]entity.Client, error) {
	f.mu.Lock()
	f.clientCalls = append(f.clientCalls, q)
	res, err := f.clients[q], f.err
	f.mu.Unlock()
	return res, err
}

func (f *fakeSearcher) SearchProducts(ctx context.Context, q string) ([]entity.Product, error) {
	f.mu.Lock()
	f.productCalls = append(f.productCalls, q)
	res, err, wait := f.products[q], f.err, f.block[q]
	f.mu.Unlock()

	f.started <- q
	if wait != nil {
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return res, err
}

func (f *fakeSearcher) productCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.productCalls)
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memCache) SetJSON(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func taladro(ref string) entity.Product {
	return entity.Product{Reference: ref, Description: "Taladro " + ref, Cost: decimal.NewFromInt(100000), Stock: 3}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y resultados
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_ConsultaCortaRechazada(t *testing.T) {
	uc := catalog.NewUseCase(newFakeSearcher(), nil, nil, nil)

	_, err := uc.SearchProducts(context.Background(), "u1", "ta")
	assert.ErrorIs(t, err, catalog.ErrQueryTooShort)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SearchClients(context.Background(), "u1", "a")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SearchClients(context.Background(), "u1", "ab")
	assert.NoError(t, err, "clientes aceptan desde 2 caracteres")
}

func TestSearch_SinResultadosEsListaVacia(t *testing.T) {
	uc := catalog.NewUseCase(newFakeSearcher(), nil, nil, nil)

	got, err := uc.SearchProducts(context.Background(), "u1", "inexistente")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearch_ErrorDelCatalogo(t *testing.T) {
	f := newFakeSearcher()
	f.err = errors.New("connection refused")
	uc := catalog.NewUseCase(f, nil, nil, nil)

	_, err := uc.SearchProducts(context.Background(), "u1", "taladro")
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestSearch_UsaCache(t *testing.T) {
	f := newFakeSearcher()
	f.products["taladro"] = []entity.Product{taladro("T1")}
	uc := catalog.NewUseCase(f, &memCache{data: map[string][]byte{}}, nil, nil)

	first, err := uc.SearchProducts(context.Background(), "u1", "taladro")
	require.NoError(t, err)
	second, err := uc.SearchProducts(context.Background(), "u2", "  Taladro ")
	require.NoError(t, err)

	assert.Equal(t, 1, f.productCallCount(), "la segunda búsqueda sale de caché")
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Reference, second[0].Reference)
	assert.True(t, first[0].Cost.Equal(second[0].Cost))
}

// ──────────────────────────────────────────────────────────────────────────────
// Respuestas obsoletas
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_RespuestaObsoletaSeDescarta(t *testing.T) {
	f := newFakeSearcher()
	f.products["tala"] = []entity.Product{taladro("VIEJO")}
	f.products["taladro"] = []entity.Product{taladro("NUEVO")}
	f.block["tala"] = make(chan struct{}) // nunca se libera: solo termina por cancelación
	uc := catalog.NewUseCase(f, nil, nil, nil)

	type result struct {
		items []entity.Product
		err   error
	}
	oldRes := make(chan result, 1)
	go func() {
		items, err := uc.SearchProducts(context.Background(), "u1", "tala")
		oldRes <- result{items, err}
	}()
	require.Equal(t, "tala", <-f.started)

	items, err := uc.SearchProducts(context.Background(), "u1", "taladro")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "NUEVO", items[0].Reference)

	select {
	case r := <-oldRes:
		assert.ErrorIs(t, r.err, domain.ErrSuperseded)
		assert.Nil(t, r.items)
	case <-time.After(2 * time.Second):
		t.Fatal("la búsqueda anterior no fue cancelada")
	}
}

func TestSearch_SesionesDistintasNoSeInterfieren(t *testing.T) {
	f := newFakeSearcher()
	release := make(chan struct{})
	f.products["tala"] = []entity.Product{taladro("A")}
	f.block["tala"] = release
	uc := catalog.NewUseCase(f, nil, nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := uc.SearchProducts(context.Background(), "u1", "tala")
		done <- err
	}()
	<-f.started

	_, err := uc.SearchProducts(context.Background(), "u2", "taladro")
	require.NoError(t, err)
	<-f.started

	close(release)
	assert.NoError(t, <-done, "otra sesión no invalida la búsqueda de u1")
}

func TestLatest_LiberaEntradas(t *testing.T) {
	l := catalog.NewLatest()
	_, gen1, done1 := l.Begin(context.Background(), "k")
	ctx2, gen2, done2 := l.Begin(context.Background(), "k")

	assert.False(t, l.IsCurrent("k", gen1))
	assert.True(t, l.IsCurrent("k", gen2))

	done1()
	assert.True(t, l.IsCurrent("k", gen2), "terminar la anterior no borra la vigente")
	assert.NoError(t, ctx2.Err())

	done2()
	assert.Equal(t, 0, l.InFlight())
	assert.Error(t, ctx2.Err())
}
