package rdx

import (
	"medibook/config"
	"medibook/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Connect builds the redis client. Redis is never load-bearing here:
// callers treat failures as log-and-continue.
func Connect() {
	Conn = redis.NewClient(&redis.Options{
		Addr: config.RedisAddr,
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(globals.Ctx, hash, field).Result()
}
