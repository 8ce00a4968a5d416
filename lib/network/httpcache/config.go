package httpcache

import (
	"fmt"
	"time"
)

const (
	AdapterNone   = "none"
	AdapterMemory = "memory"
	AdapterRedis  = "redis"

	DefaultPoolSize = 10000
)

type Config struct {
	Adapter  string
	PoolSize int
	TTL      time.Duration

	// RedisAddrs maps redis shard names to addresses, for `AdapterRedis`.
	RedisAddrs map[string]string
}

func NewAdapter(cfg Config) (Adapter, error) {
	switch cfg.Adapter {
	case AdapterMemory:
		size := cfg.PoolSize
		if size < 1 {
			size = DefaultPoolSize
		}
		return NewMemCacheAdapter(size), nil
	case AdapterRedis:
		if len(cfg.RedisAddrs) < 1 {
			return nil, fmt.Errorf("redis cache adapter needs at least one address")
		}
		return NewRedisCacheAdapter(&RedisRingOptions{Addrs: cfg.RedisAddrs}), nil
	default:
		return nil, fmt.Errorf("cache adapter not found: '%s'", cfg.Adapter)
	}
}

// NewHandler is the nop client for `AdapterNone`, otherwise a caching
// client over the configured adapter.
func NewHandler(cfg Config, opts ...ClientOption) (Handler, error) {
	if cfg.Adapter == AdapterNone || len(cfg.Adapter) < 1 {
		return NewNopClient(), nil
	}

	adapter, err := NewAdapter(cfg)
	if err != nil {
		return nil, err
	}

	return NewClient(append([]ClientOption{WithAdapter(adapter), WithExpire(cfg.TTL)}, opts...)...)
}
