package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

// scanBatch — размер порции SCAN; ограничивает время одной итерации,
// чтобы инвалидация по шаблону не блокировала keyspace.
const scanBatch = 100

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Cache hits by key prefix.",
	}, []string{"prefix"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Cache misses by key prefix.",
	}, []string{"prefix"})
)

// Redis — реализация Cache поверх go-redis.
type Redis struct {
	rdb *redis.Client
}

// NewRedis создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
func NewRedis(redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Redis{rdb: rdb}, nil
}

// newRedisWithClient — конструктор для тестов с готовым клиентом.
func newRedisWithClient(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (c *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			cacheMisses.WithLabelValues(keyPrefix(key)).Inc()
			return "", ErrMiss
		}

		return "", err
	}

	cacheHits.WithLabelValues(keyPrefix(key)).Inc()

	return val, nil
}

func (c *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Redis) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// DeleteByPattern удаляет ключи по glob-шаблону: инкрементальный SCAN
// порциями по scanBatch и батчевый DEL на каждую порцию. Скан не атомарен
// относительно конкурентных записей — это допустимо: кэш производен, TTL
// ограничивает время жизни пропущенного ключа.
func (c *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64

	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// IncrementWithExpiry — INCR + EXPIRE NX одной транзакцией: TTL
// выставляется только при создании счётчика, окно не продлевается
// последующими инкрементами (fixed window).
func (c *Redis) IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

func (c *Redis) Close() error { return c.rdb.Close() }

// keyPrefix — метка метрик: первый сегмент ключа до ':' или '?'.
func keyPrefix(key string) string {
	if i := strings.IndexAny(key, ":?"); i > 0 {
		return key[:i]
	}

	return key
}

// Проверка выполнения контракта.
var _ Cache = (*Redis)(nil)
