package redis

import (
	goredis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewLimiterStore almacén del rate limiter sobre el mismo cliente Redis.
func NewLimiterStore(client *goredis.Client) (limiter.Store, error) {
	return limiterredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "cotizador:limiter",
	})
}
