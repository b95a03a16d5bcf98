// Package search finds filesystem items by name beneath a scope.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
)

const (
	DefaultMaxResults = 50
	DefaultTimeout    = 30 * time.Second
)

var (
	ErrUnavailable = errors.New("search unavailable")
	ErrTimeout     = errors.New("search timeout")
)

// Query is a search request. An empty Scope searches every drive.
type Query struct {
	Text  string
	Scope location.Location
}

// Hit is one result: the item and the directory that contains it.
type Hit struct {
	Item     fs.Item
	Location location.Location
}

// Provider runs searches. Cancelling ctx abandons the search.
type Provider interface {
	Search(ctx context.Context, q Query) ([]Hit, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, q Query) ([]Hit, error)

func (f ProviderFunc) Search(ctx context.Context, q Query) ([]Hit, error) {
	return f(ctx, q)
}
