package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "unite:cache:"

// Store is the response cache shared by the read-side services. Keys are
// derived from the upstream URL plus request options; invalidation is
// pattern-based and deliberately broad, trading precision for simplicity.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	InvalidatePattern(ctx context.Context, pattern string) error
}

type redisStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// New returns a redis-backed Store. A nil client is allowed: every
// operation degrades to a miss and the dashboard just re-fetches.
func New(rdb *redis.Client, logger *zap.Logger) Store {
	return &redisStore{rdb: rdb, logger: logger}
}

// Key builds a cache key from the upstream path and any request options
// that affect the response (filters, viewer role). Long option strings are
// hashed so keys stay bounded.
func Key(path string, opts ...string) string {
	key := keyPrefix + path
	if len(opts) > 0 {
		joined := strings.Join(opts, "|")
		sum := sha256.Sum256([]byte(joined))
		key += ":" + hex.EncodeToString(sum[:8])
	}
	return key
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	if s.rdb == nil {
		return nil, false
	}
	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		s.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePattern deletes every key matching the glob pattern, scoped to
// the cache prefix. Mutations pass broad patterns like "*event-requests*"
// so every list variant drops at once.
func (s *redisStore) InvalidatePattern(ctx context.Context, pattern string) error {
	if s.rdb == nil {
		return nil
	}
	match := keyPrefix + strings.TrimPrefix(pattern, keyPrefix)
	iter := s.rdb.Scan(ctx, 0, match, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}
