package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/fatflowers/bankgate/pkg/config"
	"github.com/fatflowers/bankgate/pkg/logctx"
)

var (
	// ErrStore wraps every failed write or read against Redis.
	ErrStore = errors.New("store unavailable")
	// ErrNotFound is returned by Get when no payload is recorded.
	ErrNotFound = errors.New("record not found")
)

// RedisStore keeps one hash per token key with one field per partner code:
//
//	HSET <prefix><tokenKey> <partnerCode> <payload>
//
// A second write for the same pair overwrites the first (last write wins).
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	log    *zap.SugaredLogger
}

func NewRedisStore(client *redis.Client, cfg *config.Config, log *zap.SugaredLogger) *RedisStore {
	return newRedisStore(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL, log)
}

func newRedisStore(client redis.Cmdable, prefix string, ttl time.Duration, log *zap.SugaredLogger) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, log: log}
}

func (s *RedisStore) key(tokenKey string) string {
	return s.prefix + tokenKey
}

// Put writes payload without reading first. With a TTL configured the write
// and the expiry are sent in one MULTI block.
func (s *RedisStore) Put(ctx context.Context, partnerCode, tokenKey string, payload []byte) error {
	key := s.key(tokenKey)
	var err error
	if s.ttl > 0 {
		_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, partnerCode, payload)
			pipe.Expire(ctx, key, s.ttl)
			return nil
		})
	} else {
		err = s.client.HSet(ctx, key, partnerCode, payload).Err()
	}
	if err != nil {
		return fmt.Errorf("%w: hset %s/%s: %w", ErrStore, tokenKey, partnerCode, err)
	}
	logctx.FromCtx(ctx, s.log).Debugw("redis_hset", "token_key", tokenKey, "bank_code", partnerCode, "bytes", len(payload))
	return nil
}

// Get returns the payload stored for (tokenKey, partnerCode).
func (s *RedisStore) Get(ctx context.Context, partnerCode, tokenKey string) ([]byte, error) {
	b, err := s.client.HGet(ctx, s.key(tokenKey), partnerCode).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: hget %s/%s: %w", ErrStore, tokenKey, partnerCode, err)
	}
	return b, nil
}
