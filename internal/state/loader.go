package state

import (
	"context"
	"sync"

	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
	"github.com/kk-code-lab/rpane/internal/search"
)

// ListingLoader performs directory reads asynchronously. Starting a request
// for a tab cancels the tab's previous request.
type ListingLoader interface {
	Start(req ListingRequest)
	Cancel(ref TabRef)
}

// ListingRequest describes a directory read to perform.
type ListingRequest struct {
	Ref      TabRef
	Seq      uint64
	Location location.Location
	Callback func(DirectoryLoadResultAction)
}

// SearchRunner executes searches asynchronously with the same per-tab
// supersession rule as ListingLoader.
type SearchRunner interface {
	Start(req SearchRequest)
	Cancel(ref TabRef)
}

// SearchRequest describes a search to run.
type SearchRequest struct {
	Ref      TabRef
	Seq      uint64
	Query    search.Query
	Callback func(SearchResultAction)
}

// NewAsyncListingLoader constructs the default goroutine-based loader.
func NewAsyncListingLoader(provider fs.Provider) ListingLoader {
	return &asyncListingLoader{provider: provider, jobs: newJobTable()}
}

type asyncListingLoader struct {
	provider fs.Provider
	jobs     *jobTable
}

func (l *asyncListingLoader) Start(req ListingRequest) {
	if req.Seq == 0 || req.Location.IsZero() || req.Callback == nil {
		return
	}

	ctx := l.jobs.begin(req.Ref, req.Seq)
	go func() {
		defer l.jobs.finish(req.Ref, req.Seq)

		items, err := l.provider.List(ctx, req.Location)

		select {
		case <-ctx.Done():
			return
		default:
		}

		req.Callback(DirectoryLoadResultAction{
			Ref:      req.Ref,
			Seq:      req.Seq,
			Location: req.Location,
			Items:    items,
			Err:      err,
		})
	}()
}

func (l *asyncListingLoader) Cancel(ref TabRef) {
	l.jobs.cancel(ref)
}

// NewAsyncSearchRunner constructs the default goroutine-based search runner.
func NewAsyncSearchRunner(provider search.Provider) SearchRunner {
	return &asyncSearchRunner{provider: provider, jobs: newJobTable()}
}

type asyncSearchRunner struct {
	provider search.Provider
	jobs     *jobTable
}

func (s *asyncSearchRunner) Start(req SearchRequest) {
	if req.Seq == 0 || req.Callback == nil {
		return
	}

	ctx := s.jobs.begin(req.Ref, req.Seq)
	go func() {
		defer s.jobs.finish(req.Ref, req.Seq)

		hits, err := s.provider.Search(ctx, req.Query)

		select {
		case <-ctx.Done():
			return
		default:
		}

		req.Callback(SearchResultAction{
			Ref:  req.Ref,
			Seq:  req.Seq,
			Hits: hits,
			Err:  err,
		})
	}()
}

func (s *asyncSearchRunner) Cancel(ref TabRef) {
	s.jobs.cancel(ref)
}

type job struct {
	seq    uint64
	cancel context.CancelFunc
}

// jobTable tracks at most one in-flight request per tab.
type jobTable struct {
	mu   sync.Mutex
	jobs map[TabRef]job
}

func newJobTable() *jobTable {
	return &jobTable{jobs: make(map[TabRef]job)}
}

func (t *jobTable) begin(ref TabRef, seq uint64) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.mu.Lock()
	if prev, ok := t.jobs[ref]; ok {
		prev.cancel()
	}
	t.jobs[ref] = job{seq: seq, cancel: cancel}
	t.mu.Unlock()
	return ctx
}

func (t *jobTable) finish(ref TabRef, seq uint64) {
	t.mu.Lock()
	if cur, ok := t.jobs[ref]; ok && cur.seq == seq {
		cur.cancel()
		delete(t.jobs, ref)
	}
	t.mu.Unlock()
}

func (t *jobTable) cancel(ref TabRef) {
	t.mu.Lock()
	if cur, ok := t.jobs[ref]; ok {
		cur.cancel()
		delete(t.jobs, ref)
	}
	t.mu.Unlock()
}

func (t *jobTable) inFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}
