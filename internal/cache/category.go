package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

const categoriesKey = "catalog:categories"

// CategoryCache is a domain.CatalogStore that serves the category list from
// Redis. Categories are seeded and never written through the service, so the
// cached copy is only dropped on expiry or by Invalidate at startup. Redis
// failures fall back to the wrapped store.
type CategoryCache struct {
	domain.CatalogStore
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

// NewCategoryCache wraps store with a Redis-backed category cache
func NewCategoryCache(store domain.CatalogStore, client *redis.Client, ttl time.Duration, log *zap.Logger) *CategoryCache {
	return &CategoryCache{
		CatalogStore: store,
		redis:        client,
		ttl:          ttl,
		log:          log,
	}
}

// ListCategories returns the cached category list, loading it on a miss
func (c *CategoryCache) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := c.load(ctx)
	switch {
	case err == nil:
		return categories, nil
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("category cache read failed", zap.Error(err))
	}

	categories, err = c.CatalogStore.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.store(ctx, categories); err != nil {
		c.log.Warn("category cache write failed", zap.Error(err))
	}
	return categories, nil
}

// GetCategory resolves a category from the cached list
func (c *CategoryCache) GetCategory(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		if category.ID == id {
			return &category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// CountCategories counts the cached category list
func (c *CategoryCache) CountCategories(ctx context.Context) (int, error) {
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	return len(categories), nil
}

// Invalidate drops the cached category list
func (c *CategoryCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Del(ctx, categoriesKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate categories: %w", err)
	}
	return nil
}

func (c *CategoryCache) load(ctx context.Context) ([]domain.Category, error) {
	data, err := c.redis.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}
	return categories, nil
}

func (c *CategoryCache) store(ctx context.Context, categories []domain.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	return c.redis.Set(ctx, categoriesKey, data, c.ttl).Err()
}
