package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	config *Config
	logger Logger
}

func NewRedisCache(config *Config, logger Logger) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	cache := &RedisCache{
		client: rdb,
		config: config,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cache.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return cache, nil
}

func (r *RedisCache) ttl(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return r.config.DefaultTTL
	}
	return ttl
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, &Error{Operation: "get", Key: key, Err: err}
	}
	return result, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, r.ttl(ttl)).Err(); err != nil {
		return &Error{Operation: "set", Key: key, Err: err}
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return &Error{Operation: "delete", Key: key, Err: err}
	}
	return nil
}

func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, &Error{Operation: "exists", Key: key, Err: err}
	}
	return result > 0, nil
}

// DeletePattern walks the keyspace with SCAN so large databases are not blocked.
func (r *RedisCache) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return &Error{Operation: "delete_pattern", Key: pattern, Err: err}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return &Error{Operation: "delete_pattern", Key: pattern, Err: err}
	}
	return nil
}

func (r *RedisCache) Increment(ctx context.Context, key string, delta int64, ttl time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()
	incrCmd := pipe.IncrBy(ctx, key, delta)
	if t := r.ttl(ttl); t > 0 {
		pipe.Expire(ctx, key, t)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, &Error{Operation: "increment", Key: key, Err: err}
	}
	return incrCmd.Val(), nil
}

func (r *RedisCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &Error{Operation: "serialize", Key: key, Err: err}
	}
	return r.Set(ctx, key, data, ttl)
}

func (r *RedisCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &Error{Operation: "deserialize", Key: key, Err: err}
	}
	return nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
