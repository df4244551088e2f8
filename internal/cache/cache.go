// Package cache содержит Redis-кэш состава групп.
//
// Кэш ускоряет проверку членства в группе при авторизации: список
// email-участников хранится по ключу имени группы с TTL, инвалидация
// выполняется при любой мутации состава.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss возвращается, когда ключа нет в кэше.
var ErrCacheMiss = errors.New("cache miss")

// GroupCache — кэш списка участников группы.
type GroupCache interface {
	// Members возвращает email-участников группы или ErrCacheMiss.
	Members(ctx context.Context, group string) ([]string, error)
	// SetMembers сохраняет список участников группы.
	SetMembers(ctx context.Context, group string, emails []string) error
	// Invalidate сбрасывает закэшированный состав группы.
	Invalidate(ctx context.Context, group string) error
	// Close освобождает ресурсы кэша.
	Close() error
}

// RedisGroupCache — реализация GroupCache поверх go-redis.
type RedisGroupCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ GroupCache = (*RedisGroupCache)(nil)

// NewRedisGroupCache подключается к Redis по URL и проверяет соединение.
func NewRedisGroupCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisGroupCache, error) {
	const op = "cache/NewRedisGroupCache"

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", op, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &RedisGroupCache{client: client, ttl: ttl}, nil
}

func groupKey(group string) string {
	return "group:members:" + group
}

// Members возвращает email-участников группы из кэша.
func (c *RedisGroupCache) Members(ctx context.Context, group string) ([]string, error) {
	const op = "cache/Members"

	raw, err := c.client.Get(ctx, groupKey(group)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", op, ErrCacheMiss)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var emails []string
	if err := json.Unmarshal(raw, &emails); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return emails, nil
}

// SetMembers сохраняет состав группы с TTL кэша.
func (c *RedisGroupCache) SetMembers(ctx context.Context, group string, emails []string) error {
	const op = "cache/SetMembers"

	raw, err := json.Marshal(emails)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	if err := c.client.Set(ctx, groupKey(group), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Invalidate удаляет состав группы из кэша.
func (c *RedisGroupCache) Invalidate(ctx context.Context, group string) error {
	const op = "cache/Invalidate"

	if err := c.client.Del(ctx, groupKey(group)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает подключение к Redis.
func (c *RedisGroupCache) Close() error {
	return c.client.Close()
}
