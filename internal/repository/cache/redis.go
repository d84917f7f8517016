package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/engine/dashboard"
)

const trackingKey = "loja:cache_keys"

// RedisCache implements read-through caching for the product list and
// the dashboard summary. Every write to products or sales invalidates
// the whole set: the catalog is small and correctness beats cleverness.
type RedisCache struct {
	client      *redis.Client
	produtosTTL time.Duration
	resumoTTL   time.Duration
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(client *redis.Client, produtosTTL, resumoTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      client,
		produtosTTL: produtosTTL,
		resumoTTL:   resumoTTL,
	}
}

func (c *RedisCache) produtosKey(categoria string) string {
	if categoria == "" {
		return "loja:produtos:todos"
	}
	return fmt.Sprintf("loja:produtos:categoria:%s", categoria)
}

// GetProdutos retrieves a cached product list; categoria "" means the
// full catalog.
func (c *RedisCache) GetProdutos(ctx context.Context, categoria string) ([]*domain.Produto, error) {
	val, err := c.client.Get(ctx, c.produtosKey(categoria)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNaoEncontrado
		}
		return nil, err
	}

	var produtos []*domain.Produto
	if err := json.Unmarshal([]byte(val), &produtos); err != nil {
		return nil, err
	}
	return produtos, nil
}

// SetProdutos stores a product list and tracks its key for invalidation
func (c *RedisCache) SetProdutos(ctx context.Context, categoria string, produtos []*domain.Produto) error {
	data, err := json.Marshal(produtos)
	if err != nil {
		return err
	}

	key := c.produtosKey(categoria)
	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, c.produtosTTL)
	pipe.SAdd(ctx, trackingKey, key)
	pipe.Expire(ctx, trackingKey, c.produtosTTL)
	_, err = pipe.Exec(ctx)
	return err
}

const resumoKey = "loja:relatorios:resumo"

// GetResumo retrieves the cached dashboard summary
func (c *RedisCache) GetResumo(ctx context.Context) (*dashboard.Resumo, error) {
	val, err := c.client.Get(ctx, resumoKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNaoEncontrado
		}
		return nil, err
	}

	var resumo dashboard.Resumo
	if err := json.Unmarshal([]byte(val), &resumo); err != nil {
		return nil, err
	}
	return &resumo, nil
}

// SetResumo stores the dashboard summary
func (c *RedisCache) SetResumo(ctx context.Context, resumo *dashboard.Resumo) error {
	data, err := json.Marshal(resumo)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, resumoKey, data, c.resumoTTL)
	pipe.SAdd(ctx, trackingKey, resumoKey)
	pipe.Expire(ctx, trackingKey, c.resumoTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Invalidar drops every tracked entry. Called after any product or sale
// write; stale lists would show wrong stock and a lying dashboard.
func (c *RedisCache) Invalidar(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, trackingKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	if len(keys) > 0 {
		keys = append(keys, trackingKey)
		return c.client.Unlink(ctx, keys...).Err()
	}
	return nil
}
