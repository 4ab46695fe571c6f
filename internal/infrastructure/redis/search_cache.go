package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/cotizador-api/internal/application/ports"
)

var _ ports.JSONCache = (*SearchCache)(nil)

// SearchCache guarda respuestas del catálogo en JSON con TTL.
type SearchCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewSearchCache construye la caché. ttl <= 0 desactiva la escritura.
func NewSearchCache(client *goredis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{client: client, ttl: ttl}
}

// GetJSON deserializa el valor en dst e informa si la clave existía.
func (c *SearchCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.client == nil || key == "" {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa v y lo guarda con el TTL configurado.
func (c *SearchCache) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil || c.client == nil || key == "" || c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
