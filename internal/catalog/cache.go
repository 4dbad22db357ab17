package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// cachedCatalog wraps a Catalog with a Redis read-through cache. Catalog
// data changes slowly, so every endpoint shares one TTL. Cache failures are
// never surfaced; a broken Redis degrades to direct catalog calls.
type cachedCatalog struct {
	next  Catalog
	redis *redis.Client
	ttl   time.Duration
}

// NewCache wraps the given catalog with a Redis read-through cache.
func NewCache(next Catalog, rdb *redis.Client, ttl time.Duration) Catalog {
	return &cachedCatalog{next: next, redis: rdb, ttl: ttl}
}

func (c *cachedCatalog) Movie(ctx context.Context, id int) (*MovieDetail, error) {
	key := fmt.Sprintf("catalog:movie:%d", id)
	cached := &MovieDetail{}
	if c.lookup(ctx, key, cached) {
		return cached, nil
	}

	detail, err := c.next.Movie(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, detail)
	return detail, nil
}

func (c *cachedCatalog) MovieList(ctx context.Context, kind ListKind, page int) ([]Movie, error) {
	key := fmt.Sprintf("catalog:list:%s:%d", kind, page)
	var cached []Movie
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	movies, err := c.next.MovieList(ctx, kind, page)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, movies)
	return movies, nil
}

func (c *cachedCatalog) Reviews(ctx context.Context, id int) ([]Review, error) {
	key := fmt.Sprintf("catalog:reviews:%d", id)
	var cached []Review
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	reviews, err := c.next.Reviews(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, reviews)
	return reviews, nil
}

func (c *cachedCatalog) Similar(ctx context.Context, id int) ([]Movie, error) {
	key := fmt.Sprintf("catalog:similar:%d", id)
	var cached []Movie
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	movies, err := c.next.Similar(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, movies)
	return movies, nil
}

func (c *cachedCatalog) WatchProviders(ctx context.Context, id int) ([]Provider, error) {
	key := fmt.Sprintf("catalog:watch-providers:%d", id)
	var cached []Provider
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	providers, err := c.next.WatchProviders(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, providers)
	return providers, nil
}

func (c *cachedCatalog) AllProviders(ctx context.Context) ([]Provider, error) {
	key := "catalog:providers:all"
	var cached []Provider
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	providers, err := c.next.AllProviders(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, providers)
	return providers, nil
}

// lookup reports whether key was found and decoded into out.
func (c *cachedCatalog) lookup(ctx context.Context, key string, out any) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Catalog cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("Catalog cache entry corrupt, dropping", "key", key, "error", err)
		c.redis.Del(ctx, key)
		return false
	}
	return true
}

// store writes a cache entry best-effort. Only successful catalog responses
// reach here, so errors and 404s are never cached.
func (c *cachedCatalog) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Catalog cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("Catalog cache write failed", "key", key, "error", err)
	}
}
