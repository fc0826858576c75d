package cache

import (
	"testing"
	"time"
)

func TestCatalogCacheRoundTrip(t *testing.T) {
	backend := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer backend.Close()
	cc := NewCatalogCache(backend, time.Minute)
	ctx := t.Context()

	if _, ok := cc.GetList(ctx, "product", "es"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	payload := []byte(`[{"id":1,"name":"Hamburguesa"}]`)
	cc.SetList(ctx, "product", "es", payload)

	got, ok := cc.GetList(ctx, "product", "es")
	if !ok {
		t.Fatal("expected hit after SetList")
	}
	if string(got) != string(payload) {
		t.Errorf("GetList = %s, want %s", got, payload)
	}

	// Other language is a separate entry.
	if _, ok := cc.GetList(ctx, "product", "en"); ok {
		t.Error("unexpected hit for a different language")
	}
}

func TestCatalogCacheInvalidateType(t *testing.T) {
	backend := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer backend.Close()
	cc := NewCatalogCache(backend, time.Minute)
	ctx := t.Context()

	cc.SetList(ctx, "product", "en", []byte("[]"))
	cc.SetList(ctx, "product", "es", []byte("[]"))
	cc.SetList(ctx, "category", "en", []byte("[]"))

	if err := cc.InvalidateType(ctx, "product"); err != nil {
		t.Fatalf("InvalidateType: %v", err)
	}

	if _, ok := cc.GetList(ctx, "product", "en"); ok {
		t.Error("product/en should be invalidated")
	}
	if _, ok := cc.GetList(ctx, "product", "es"); ok {
		t.Error("product/es should be invalidated")
	}
	if _, ok := cc.GetList(ctx, "category", "en"); !ok {
		t.Error("category/en should survive")
	}
}

func TestTypedCacheGetOrSet(t *testing.T) {
	backend := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer backend.Close()

	type menuItem struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	tc := NewTypedCache[menuItem](backend, time.Minute)
	ctx := t.Context()

	calls := 0
	load := func() (*menuItem, error) {
		calls++
		return &menuItem{ID: 7, Name: "Fries"}, nil
	}

	for i := 0; i < 3; i++ {
		item, err := tc.GetOrSet(ctx, "item:7", load)
		if err != nil {
			t.Fatalf("GetOrSet #%d: %v", i+1, err)
		}
		if item.ID != 7 || item.Name != "Fries" {
			t.Errorf("item = %+v", item)
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
}
