package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftStore)(nil)

const (
	draftKeyPrefix     = "draft:"
	draftUpdateRetries = 5
)

// DraftStore borradores de cotización en Redis. Cada escritura renueva el TTL; un borrador
// abandonado expira solo.
type DraftStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewDraftStore construye el almacén.
func NewDraftStore(client *goredis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

func draftKey(id string) string { return draftKeyPrefix + id }

// Save crea o reemplaza el borrador.
func (s *DraftStore) Save(ctx context.Context, d *entity.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft: marshal: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(d.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("draft: save: %w", err)
	}
	return nil
}

// Get devuelve domain.ErrNotFound si no existe o expiró.
func (s *DraftStore) Get(ctx context.Context, id string) (*entity.Draft, error) {
	return readDraft(ctx, s.client, id)
}

// Update lee, aplica fn y escribe bajo WATCH. Si otra escritura modificó la clave entre la
// lectura y el EXEC se reintenta con el valor nuevo; agotados los intentos devuelve ErrConflict.
// Un error de fn aborta sin escribir.
func (s *DraftStore) Update(ctx context.Context, id string, fn func(d *entity.Draft) error) (*entity.Draft, error) {
	key := draftKey(id)
	var result *entity.Draft

	txf := func(tx *goredis.Tx) error {
		d, err := readDraft(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("draft: marshal: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = d
		return nil
	}

	for i := 0; i < draftUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, goredis.TxFailedErr) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: el borrador cambió durante la edición, intente de nuevo", domain.ErrConflict)
}

// Delete elimina el borrador; no falla si ya no existe.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("draft: delete: %w", err)
	}
	return nil
}

func readDraft(ctx context.Context, c goredis.Cmdable, id string) (*entity.Draft, error) {
	data, err := c.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("draft: get: %w", err)
	}
	var d entity.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("draft: unmarshal: %w", err)
	}
	return &d, nil
}
