package collection

import (
	"context"
	"errors"

	"gotire/internal/pkg/cache"
)

// RedisBackend guarda cada coleção como uma string JSON em uma chave Redis, sem expiração.
type RedisBackend struct {
	client cache.Client
	prefix string
}

// NewRedisBackend cria o backend. O prefixo isola instâncias que compartilham o Redis.
func NewRedisBackend(client cache.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) Read(ctx context.Context, key string) ([]byte, error) {
	val, err := b.client.Get(ctx, b.prefix+key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

func (b *RedisBackend) Write(ctx context.Context, key string, data []byte) error {
	return b.client.Set(ctx, b.prefix+key, string(data), 0)
}
