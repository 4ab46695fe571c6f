package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/pricing"
	rstore "github.com/jhoicas/cotizador-api/internal/infrastructure/redis"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sampleDraft(t *testing.T) *entity.Draft {
	t.Helper()
	line, err := pricing.NewLineItem(pricing.CatalogItem{
		Reference:   "TP-01",
		Description: "Tubo PVC 1/2",
		UnitCost:    decimal.NewFromInt(10000),
		Stock:       4,
	}, pricing.Margin(decimal.NewFromInt(20)), 2)
	require.NoError(t, err)
	return &entity.Draft{
		ID:              "d-1",
		OwnerID:         "u-1",
		PaymentTermDays: 30,
		Lines:           []pricing.LineItem{line},
	}
}

// ── Save / Get ──────────────────────────────────────────────────────────────

func TestDraftStore_GuardaYLeeConTTL(t *testing.T) {
	mr, client := newRedis(t)
	store := rstore.NewDraftStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleDraft(t)))
	assert.Equal(t, time.Hour, mr.TTL("draft:d-1"))

	got, err := store.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.OwnerID)
	require.Len(t, got.Lines, 1)
	assert.True(t, got.Lines[0].UnitSalePrice.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, pricing.DeliveryImmediate, got.Lines[0].DeliveryLabel)
}

func TestDraftStore_ExpiradoEsNotFound(t *testing.T) {
	mr, client := newRedis(t)
	store := rstore.NewDraftStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleDraft(t)))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "d-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Update ──────────────────────────────────────────────────────────────────

func TestDraftStore_UpdateAplicaYRenuevaTTL(t *testing.T) {
	mr, client := newRedis(t)
	store := rstore.NewDraftStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleDraft(t)))
	mr.FastForward(30 * time.Minute)

	got, err := store.Update(ctx, "d-1", func(d *entity.Draft) error {
		d.PaymentTermDays = 60
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 60, got.PaymentTermDays)
	assert.Equal(t, time.Hour, mr.TTL("draft:d-1"))

	stored, err := store.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, 60, stored.PaymentTermDays)
}

func TestDraftStore_UpdateConErrorNoEscribe(t *testing.T) {
	_, client := newRedis(t)
	store := rstore.NewDraftStore(client, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleDraft(t)))

	boom := errors.New("línea inválida")
	_, err := store.Update(ctx, "d-1", func(d *entity.Draft) error {
		d.PaymentTermDays = 90
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := store.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, 30, stored.PaymentTermDays)
}

func TestDraftStore_UpdateReintentaSiOtroEscribio(t *testing.T) {
	_, client := newRedis(t)
	store := rstore.NewDraftStore(client, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleDraft(t)))

	other := rstore.NewDraftStore(client, time.Hour)
	calls := 0
	got, err := store.Update(ctx, "d-1", func(d *entity.Draft) error {
		calls++
		if calls == 1 {
			concurrent := sampleDraft(t)
			concurrent.SellerName = "Carlos Vendedor"
			require.NoError(t, other.Save(ctx, concurrent))
		}
		d.PaymentTermDays = 45
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "Carlos Vendedor", got.SellerName)
	assert.Equal(t, 45, got.PaymentTermDays)
}

func TestDraftStore_UpdateInexistente(t *testing.T) {
	_, client := newRedis(t)
	store := rstore.NewDraftStore(client, time.Hour)

	_, err := store.Update(context.Background(), "nope", func(*entity.Draft) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Delete ──────────────────────────────────────────────────────────────────

func TestDraftStore_DeleteIdempotente(t *testing.T) {
	_, client := newRedis(t)
	store := rstore.NewDraftStore(client, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleDraft(t)))

	require.NoError(t, store.Delete(ctx, "d-1"))
	require.NoError(t, store.Delete(ctx, "d-1"))
	_, err := store.Get(ctx, "d-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
