package httpcache

import (
	"time"

	redisCache "github.com/go-redis/cache"
	"github.com/go-redis/redis"
	"github.com/vmihailenco/msgpack"
)

type RedisCacheAdapter struct {
	store *redisCache.Codec
}

type RedisRingOptions redis.RingOptions

func NewRedisCacheAdapter(opt *RedisRingOptions) *RedisCacheAdapter {
	ropt := redis.RingOptions(*opt)
	return &RedisCacheAdapter{
		&redisCache.Codec{
			Redis:     redis.NewRing(&ropt),
			Marshal:   marshalResponse,
			Unmarshal: unmarshalResponse,
		},
	}
}

func marshalResponse(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

func unmarshalResponse(b []byte, v interface{}) error {
	return msgpack.Unmarshal(b, v)
}

func (a *RedisCacheAdapter) Get(key string) (*Response, bool) {
	var resp Response
	if err := a.store.Get(key, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (a *RedisCacheAdapter) Set(key string, resp *Response, expiration time.Time) {
	var e time.Duration
	if !expiration.IsZero() {
		e = time.Until(expiration)
	}
	a.store.Set(&redisCache.Item{
		Key:        key,
		Object:     resp,
		Expiration: e,
	})
}

func (a *RedisCacheAdapter) Remove(key string) {
	a.store.Delete(key)
}
