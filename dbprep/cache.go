package dbprep

import (
	"github.com/caarlos0/env/v11"
	"github.com/gomodule/redigo/redis"
)

// ClearCache flushes everything from the Redis cache, sessions
// included.
func ClearCache() error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return err
	}
	conn, err := redis.DialURL(cfg.RedisURL)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Do("FLUSHALL")
	return err
}
