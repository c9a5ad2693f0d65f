package catalog

import (
	"context"
	"fmt"

	"tadreeb/models"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// CacheKey identifies one fetched catalog page. All three parts are
// required and the rendered key is order-sensitive.
type CacheKey struct {
	List     string // "courses" or "lessons"
	Lang     string
	Page     int
	PageSize int
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%d:%d", k.List, k.Lang, k.Page, k.PageSize)
}

// ListCache memoizes paginated catalog fetches for the session. Entries
// are written once per completed fetch and never mutated or proactively
// invalidated: catalog data is near-static, and a language change simply
// produces different keys. Bounded LRU keeps the session footprint flat.
// Never used for availability or booking state, which must stay fresh.
type ListCache struct {
	cache  *lru.Cache[string, models.CatalogPage]
	logger *zap.Logger
}

func NewListCache(size int, logger *zap.Logger) (*ListCache, error) {
	cache, err := lru.New[string, models.CatalogPage](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create list cache: %w", err)
	}
	return &ListCache{cache: cache, logger: logger}, nil
}

// GetOrFetch returns the cached page for key, or runs fetch exactly once
// and stores its result. A hit returns the previously fetched data as-is.
func (c *ListCache) GetOrFetch(ctx context.Context, key CacheKey, fetch func(ctx context.Context) (models.CatalogPage, error)) (models.CatalogPage, error) {
	k := key.String()
	if page, ok := c.cache.Get(k); ok {
		c.logger.Debug("list cache hit", zap.String("key", k))
		return page, nil
	}

	page, err := fetch(ctx)
	if err != nil {
		// Failed fetches are not cached; the next call retries.
		return models.CatalogPage{}, err
	}

	c.cache.Add(k, page)
	c.logger.Debug("list cache filled", zap.String("key", k), zap.Int("items", len(page.Items)))
	return page, nil
}
