package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/auric-xyz/marketd/base/ctx"
)

// Forever marks a key without expiration.
const Forever = time.Duration(-1)

var (
	// ErrNotFound aliases redigo's nil reply so raw replies compare equal.
	ErrNotFound = redis.ErrNil

	// ErrNoTTL is returned by TTL when the key exists without an expire.
	ErrNoTTL = errors.New("key has no associated ttl")
)

// Service is the redis command surface the cache layer builds on.
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	// TTL returns the remaining time to live of a key in seconds.
	TTL(context ctx.Ctx, key string) (int, error)
}
