package listing

import (
	"context"
	"encoding/json"
	"errors"

	"blushmart-web/internal/catalog"
	"blushmart-web/internal/localstore"
	"blushmart-web/internal/logger"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// recentCap is the most quick-views the shelf remembers.
const recentCap = 5

// RecentlyViewed is the capped, de-duplicated quick-view shelf, persisted
// to the localstore under the recentlyViewed key. Recording an already
// present product moves it back to the front.
type RecentlyViewed struct {
	local localstore.Store
	cache *lru.Cache[string, catalog.Product]
}

// NewRecentlyViewed restores the persisted shelf; a corrupt record is
// discarded rather than trusted.
func NewRecentlyViewed(ctx context.Context, local localstore.Store) *RecentlyViewed {
	cache, err := lru.New[string, catalog.Product](recentCap)
	if err != nil {
		panic(err)
	}
	r := &RecentlyViewed{local: local, cache: cache}

	raw, err := local.Get(ctx, localstore.KeyRecentlyViewed)
	if err != nil {
		if !errors.Is(err, localstore.ErrKeyNotFound) {
			logger.FromCtx(ctx).Warn("failed to restore recently viewed", zap.Error(err))
		}
		return r
	}

	var saved []catalog.Product
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		logger.FromCtx(ctx).Warn("corrupt recently viewed record, discarding", zap.Error(err))
		return r
	}

	// Persisted most-recent-first; replay oldest-first so recency lines up.
	for i := len(saved) - 1; i >= 0; i-- {
		cache.Add(saved[i].ID, saved[i])
	}
	return r
}

// Record notes a quick view and persists the updated shelf.
func (r *RecentlyViewed) Record(ctx context.Context, product catalog.Product) {
	if product.ID == "" {
		return
	}
	r.cache.Add(product.ID, product)

	raw, err := json.Marshal(r.Items())
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to encode recently viewed", zap.Error(err))
		return
	}
	if err := r.local.Set(ctx, localstore.KeyRecentlyViewed, string(raw)); err != nil {
		logger.FromCtx(ctx).Warn("failed to persist recently viewed", zap.Error(err))
	}
}

// Items returns the shelf most-recent-first.
func (r *RecentlyViewed) Items() []catalog.Product {
	keys := r.cache.Keys()
	out := make([]catalog.Product, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if p, ok := r.cache.Peek(keys[i]); ok {
			out = append(out, p)
		}
	}
	return out
}
