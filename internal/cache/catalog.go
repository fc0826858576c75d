// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"
)

// CatalogCache caches serialized localized catalog listings.
// Entries are keyed by entity type and language code, so a write to any
// entity of a type invalidates that type's listings in every language.
type CatalogCache struct {
	cache Cacher
	ttl   time.Duration
}

// NewCatalogCache creates a catalog cache over the given backend.
func NewCatalogCache(cache Cacher, ttl time.Duration) *CatalogCache {
	return &CatalogCache{cache: cache, ttl: ttl}
}

// listKey builds the cache key for a localized listing.
func listKey(entityType, langCode string) string {
	return "list:" + entityType + ":" + langCode
}

// GetList returns the cached serialized listing for an entity type and
// language, or nil and false on a miss.
func (c *CatalogCache) GetList(ctx context.Context, entityType, langCode string) ([]byte, bool) {
	data, err := c.cache.Get(ctx, listKey(entityType, langCode))
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetList stores a serialized listing. Errors are ignored; a failed cache
// write only costs a future recomputation.
func (c *CatalogCache) SetList(ctx context.Context, entityType, langCode string, payload []byte) {
	_ = c.cache.Set(ctx, listKey(entityType, langCode), payload, c.ttl)
}

// InvalidateType drops cached listings for an entity type in all languages.
func (c *CatalogCache) InvalidateType(ctx context.Context, entityType string) error {
	return c.cache.DeleteByPrefix(ctx, "list:"+entityType+":")
}

// InvalidateAll drops every cached listing.
func (c *CatalogCache) InvalidateAll(ctx context.Context) error {
	return c.cache.Clear(ctx)
}
