package cache

import (
	"context"

	"github.com/eko/gocache/lib/v4/store"
	redis_store "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// S is nil when no cache backend is configured; callers treat that as a
// permanent miss.
var S store.StoreInterface

func NewCache() error {
	addr := viper.GetString("cache.redis_addr")
	if len(addr) == 0 {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: viper.GetString("cache.redis_password"),
		DB:       viper.GetInt("cache.redis_db"),
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	S = redis_store.NewRedis(rdb)
	return nil
}
