package fs

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kk-code-lab/rpane/internal/location"
)

const DefaultListingCacheSize = 128

type cachedListing struct {
	modified time.Time
	items    []Item
}

// CachingProvider memoizes listings in an LRU keyed by location. An entry
// is reused only while the directory's modification time is unchanged.
type CachingProvider struct {
	Provider
	cache *lru.Cache[location.Location, cachedListing]
}

// NewCachingProvider wraps inner with a listing cache of size entries.
func NewCachingProvider(inner Provider, size int) (*CachingProvider, error) {
	if size <= 0 {
		size = DefaultListingCacheSize
	}
	cache, err := lru.New[location.Location, cachedListing](size)
	if err != nil {
		return nil, err
	}
	return &CachingProvider{Provider: inner, cache: cache}, nil
}

func (c *CachingProvider) List(ctx context.Context, loc location.Location) ([]Item, error) {
	info, statErr := c.Provider.Stat(ctx, loc)
	if statErr == nil {
		if entry, ok := c.cache.Get(loc); ok && entry.modified.Equal(info.Modified) {
			return cloneItems(entry.items), nil
		}
	}

	items, err := c.Provider.List(ctx, loc)
	if err != nil {
		c.cache.Remove(loc)
		return nil, err
	}
	if statErr == nil {
		c.cache.Add(loc, cachedListing{modified: info.Modified, items: cloneItems(items)})
	}
	return items, nil
}

// Invalidate drops any cached listing for loc.
func (c *CachingProvider) Invalidate(loc location.Location) {
	c.cache.Remove(loc)
}

// Len reports the number of cached listings.
func (c *CachingProvider) Len() int {
	return c.cache.Len()
}

func (c *CachingProvider) Mutate(ctx context.Context, op Op) error {
	err := c.Provider.Mutate(ctx, op)
	for _, loc := range []location.Location{op.Source, op.Target} {
		if loc.IsZero() {
			continue
		}
		c.cache.Remove(loc)
		if parent, ok := loc.Parent(); ok {
			c.cache.Remove(parent)
		}
	}
	return err
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
