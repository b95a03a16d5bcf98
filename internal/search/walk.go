package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
	"github.com/kk-code-lab/rpane/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// Options tunes a WalkProvider.
type Options struct {
	MaxResults    int
	Timeout       time.Duration
	IncludeHidden bool
	Concurrency   int // drives walked in parallel when no scope is given
}

// WalkProvider searches by walking directories breadth-first through an
// fs.Provider and matching names case-insensitively.
type WalkProvider struct {
	fs   fs.Provider
	opts Options
	log  *zap.Logger
}

// NewWalkProvider returns a provider reading through provider.
func NewWalkProvider(provider fs.Provider, opts Options) *WalkProvider {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &WalkProvider{fs: provider, opts: opts, log: logging.Named("search")}
}

// Search returns up to MaxResults hits ranked by edit distance between the
// query and the item name. When the timeout expires the hits found so far
// are returned together with ErrTimeout.
func (w *WalkProvider) Search(parent context.Context, q Query) ([]Hit, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, nil
	}
	if w.fs == nil {
		return nil, ErrUnavailable
	}
	needle := strings.ToLower(norm.NFC.String(text))

	ctx, cancel := context.WithTimeout(parent, w.opts.Timeout)
	defer cancel()

	roots := []location.Location{q.Scope}
	if q.Scope.IsZero() {
		drives, err := w.fs.Drives(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		roots = roots[:0]
		for _, d := range drives {
			roots = append(roots, d.Location)
		}
		if len(roots) == 0 {
			return nil, ErrUnavailable
		}
	}

	collectors := make([]*topCollector, len(roots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.opts.Concurrency)
	for i, root := range roots {
		collectors[i] = newTopCollector(w.opts.MaxResults)
		collector := collectors[i]
		g.Go(func() error {
			err := w.walk(gctx, root, needle, collector)
			if err != nil && len(roots) > 1 && gctx.Err() == nil {
				w.log.Debug("skipping drive", logging.Location("root", root), logging.Err(err))
				return nil
			}
			return err
		})
	}
	err := g.Wait()

	merged := newTopCollector(w.opts.MaxResults)
	for _, c := range collectors {
		merged.Merge(c)
	}
	hits := merged.Results()

	switch {
	case err == nil:
		return hits, nil
	case parent.Err() != nil:
		return nil, parent.Err()
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		w.log.Info("search timed out", logging.String("query", text), logging.Int("hits", len(hits)))
		return hits, ErrTimeout
	default:
		return nil, err
	}
}

func (w *WalkProvider) walk(ctx context.Context, root location.Location, needle string, c *topCollector) error {
	queue := []location.Location{root}
	for first := true; len(queue) > 0; first = false {
		if err := ctx.Err(); err != nil {
			return err
		}
		dir := queue[0]
		queue = queue[1:]

		items, err := w.fs.List(ctx, dir)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if first {
				return fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			continue
		}

		for _, it := range items {
			if it.Hidden && !w.opts.IncludeHidden {
				continue
			}
			if it.IsDir() && !it.Symlink {
				queue = append(queue, it.FullPath)
			}
			name := strings.ToLower(it.Name)
			if !strings.Contains(name, needle) {
				continue
			}
			c.Store(rankedHit{
				hit:      Hit{Item: it, Location: dir},
				distance: levenshtein.ComputeDistance(needle, name),
				prefix:   strings.HasPrefix(name, needle),
				depth:    len(it.FullPath.Segments()),
			})
		}
	}
	return nil
}
