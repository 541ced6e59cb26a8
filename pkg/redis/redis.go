package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
)

// NewRedisFromCentral connects with the central redis section.
func NewRedisFromCentral(cfg config.RedisConfig) (*goredis.Client, error) {
	return NewRedis(FromCentralConfig(cfg))
}

// NewRedis connects and pings; the client is closed again when the ping fails.
func NewRedis(cfg Config) (*goredis.Client, error) {
	if cfg.Options.Addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	opts := cfg.Options
	rdb := goredis.NewClient(&opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout+time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}
