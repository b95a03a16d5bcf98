package fs

import (
	"context"
	"sync/atomic"

	"github.com/kk-code-lab/rpane/internal/location"
)

// HiddenFilter drops hidden items from listings unless showing is enabled.
// It sits above the cache so toggling never invalidates cached listings.
type HiddenFilter struct {
	Provider
	show atomic.Bool
}

func NewHiddenFilter(inner Provider, show bool) *HiddenFilter {
	f := &HiddenFilter{Provider: inner}
	f.show.Store(show)
	return f
}

func (f *HiddenFilter) ShowHidden() bool {
	return f.show.Load()
}

// SetShowHidden changes the filter; callers reload visible listings.
func (f *HiddenFilter) SetShowHidden(show bool) {
	f.show.Store(show)
}

func (f *HiddenFilter) List(ctx context.Context, loc location.Location) ([]Item, error) {
	items, err := f.Provider.List(ctx, loc)
	if err != nil || f.show.Load() {
		return items, err
	}
	visible := items[:0:0]
	for _, it := range items {
		if !it.Hidden {
			visible = append(visible, it)
		}
	}
	return visible, nil
}
