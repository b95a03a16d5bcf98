package state

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
	"github.com/kk-code-lab/rpane/internal/logging"
	"github.com/kk-code-lab/rpane/internal/search"
)

// errNoChange signals that an update left the tab as it was.
var errNoChange = errors.New("no change")

// ReducerConfig wires the reducer's collaborators. FS is required; the
// rest have defaults.
type ReducerConfig struct {
	FS       fs.Provider
	Search   search.Provider
	Listings ListingLoader
	Searches SearchRunner
	IDs      IDSource
	Dispatch func(Action)
	Logger   *zap.Logger
}

// Reducer applies actions to a Session. It never mutates its input: every
// call returns a new Session value. Provider calls are started through the
// loaders and come back later as result actions via Dispatch.
type Reducer struct {
	fs       fs.Provider
	listings ListingLoader
	searches SearchRunner
	ids      IDSource
	dispatch func(Action)
	log      *zap.Logger
}

// NewReducer creates a reducer.
func NewReducer(cfg ReducerConfig) *Reducer {
	r := &Reducer{
		fs:       cfg.FS,
		listings: cfg.Listings,
		searches: cfg.Searches,
		ids:      cfg.IDs,
		dispatch: cfg.Dispatch,
		log:      cfg.Logger,
	}
	if r.listings == nil {
		r.listings = NewAsyncListingLoader(cfg.FS)
	}
	if r.searches == nil {
		provider := cfg.Search
		if provider == nil {
			provider = search.ProviderFunc(func(context.Context, search.Query) ([]search.Hit, error) {
				return nil, search.ErrUnavailable
			})
		}
		r.searches = NewAsyncSearchRunner(provider)
	}
	if r.ids == nil {
		r.ids = UUIDs()
	}
	if r.log == nil {
		r.log = logging.Named("state")
	}
	return r
}

func (r *Reducer) emit(a Action) {
	if r.dispatch != nil {
		r.dispatch(a)
	}
}

// Bootstrap starts the initial listing load of every tab in s.
func (r *Reducer) Bootstrap(s Session) {
	for _, p := range s.Panes {
		for _, t := range p.Tabs {
			if t.Listing.Status == LoadLoading {
				r.startListing(TabRef{PaneID: p.ID, TabID: t.ID}, t)
			}
		}
	}
}

// Reduce applies action to s. Boundary navigation (no history, up at a
// root) is absorbed and returns s with a nil error. Provider failures are
// recorded on the tab and also returned as *NoticeError.
func (r *Reducer) Reduce(s Session, action Action) (Session, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateAction:
		loc := location.Normalize(string(a.Location))
		if loc.IsZero() {
			return s, nil
		}
		return r.updateActive(s, func(t Tab) (Tab, error) {
			if a.Focus != "" {
				return t.NavigateToAndFocus(loc, a.Focus), nil
			}
			return t.NavigateTo(loc), nil
		})

	case GoBackAction:
		return r.stepHistory(s, Back)

	case GoForwardAction:
		return r.stepHistory(s, Forward)

	case GoUpAction:
		return r.updateActive(s, func(t Tab) (Tab, error) {
			next, ok := t.NavigateUp()
			if !ok {
				return t, errNoChange
			}
			return next, nil
		})

	case GoHomeAction:
		home, err := r.fs.Home()
		if err != nil {
			r.log.Warn("home lookup failed", logging.Err(err))
			return s, notice(fmt.Errorf("home: %w", err))
		}
		return r.updateActive(s, func(t Tab) (Tab, error) {
			return t.NavigateTo(home), nil
		})

	case BreadcrumbAction:
		return r.updateActive(s, func(t Tab) (Tab, error) {
			crumbs := t.Location().Breadcrumbs()
			if a.Index < 0 || a.Index >= len(crumbs) {
				return t, errNoChange
			}
			return t.NavigateTo(crumbs[a.Index].Location), nil
		})

	case RefreshAction:
		return r.updateActive(s, func(t Tab) (Tab, error) {
			if o := t.Search; o != nil {
				return t.BeginSearch(o.Query, o.Scope), nil
			}
			return t.BeginLoad(), nil
		})

	// ===== SELECTION =====

	case MoveSelectionAction:
		return r.updateActive(s, func(t Tab) (Tab, error) {
			return t.MoveSelection(a.Delta), nil
		})

	case SelectIndexAction:
		return r.updateActive(s, func(t Tab) (Tab, error) {
			return t.SelectIndex(a.Index), nil
		})

	case OpenSelectedAction:
		return r.updateActive(s, func(t Tab) (Tab, error) {
			item, dir, ok := t.SelectedItem()
			if !ok {
				return t, errNoChange
			}
			if t.Search != nil {
				return t.NavigateToAndFocus(dir, item.Name), nil
			}
			if item.IsDir() {
				return t.NavigateTo(item.FullPath), nil
			}
			r.emit(OpenFileAction{Location: item.FullPath})
			return t, errNoChange
		})

	// ===== SEARCH =====

	case SearchAction:
		query := strings.TrimSpace(a.Query)
		if query == "" {
			return r.Reduce(s, ClearSearchAction{})
		}
		return r.updateActive(s, func(t Tab) (Tab, error) {
			scope := location.Normalize(string(a.Scope))
			switch {
			case a.Everywhere:
				scope = ""
			case scope.IsZero():
				scope = t.Location()
			}
			return t.BeginSearch(query, scope), nil
		})

	case ClearSearchAction:
		return r.updateActive(s, func(t Tab) (Tab, error) {
			next, ok := t.ClearSearch()
			if !ok {
				return t, errNoChange
			}
			return next, nil
		})

	// ===== TABS AND PANES =====

	case NewTabAction:
		pane, current, err := r.active(s)
		if err != nil {
			return s, err
		}
		loc := location.Normalize(string(a.Location))
		if loc.IsZero() {
			loc = current.Location()
		}
		tab := NewTab(r.ids(), loc)
		next, err := s.UpdatePane(pane.ID, func(p Pane) (Pane, error) {
			return p.AddTab(tab), nil
		})
		if err != nil {
			return s, err
		}
		r.startListing(TabRef{PaneID: pane.ID, TabID: tab.ID}, tab)
		return next, nil

	case CloseTabAction:
		pane, current, err := r.active(s)
		if err != nil {
			return s, err
		}
		id := a.TabID
		if id == "" {
			id = current.ID
		}
		closed := false
		next, err := s.UpdatePane(pane.ID, func(p Pane) (Pane, error) {
			updated, ok, err := p.CloseTab(id)
			closed = ok
			return updated, err
		})
		if err != nil || !closed {
			return s, err
		}
		ref := TabRef{PaneID: pane.ID, TabID: id}
		r.listings.Cancel(ref)
		r.searches.Cancel(ref)
		return next, nil

	case SelectPaneAction:
		return s.SetActivePane(a.PaneID)

	case SelectTabAction:
		return s.SelectTab(a.PaneID, a.TabID)

	case CycleTabAction:
		pane, err := s.ActivePane()
		if err != nil {
			r.logFault(err)
			return s, err
		}
		return s.UpdatePane(pane.ID, func(p Pane) (Pane, error) {
			return p.CycleTab(a.Delta), nil
		})

	case CyclePaneAction:
		return s.CyclePane(a.Delta), nil

	// ===== FILE OPERATIONS =====

	case FileOperationAction:
		r.log.Info("file operation",
			logging.String("op", a.Op.Kind.String()),
			logging.Location("source", a.Op.Source),
			logging.Location("target", a.Op.Target))
		r.startOperation(a.Op)
		return s, nil

	case FileOperationResultAction:
		if a.Err != nil {
			r.log.Warn("file operation failed", logging.String("op", a.Op.Kind.String()), logging.Err(a.Err))
			return s, notice(a.Err)
		}
		next := s
		for _, loc := range affectedLocations(a.Op) {
			next = r.refreshLocation(next, loc)
		}
		return next, nil

	// ===== ASYNC RESULTS =====

	case DirectoryLoadResultAction:
		applied := false
		next, err := r.updateTab(s, a.Ref, func(t Tab) (Tab, error) {
			updated, ok := t.ApplyListing(a.Seq, a.Items, a.Err)
			if !ok {
				return t, errNoChange
			}
			applied = true
			return updated, nil
		})
		if err != nil {
			r.log.Debug("dropping listing for closed tab", logging.String("tab", a.Ref.TabID))
			return s, nil
		}
		if !applied {
			r.log.Debug("discarding stale listing",
				logging.Location("location", a.Location),
				logging.Uint64("seq", a.Seq))
			return s, nil
		}
		if a.Err != nil {
			r.log.Warn("listing failed", logging.Location("location", a.Location), logging.Err(a.Err))
			return next, notice(a.Err)
		}
		return next, nil

	case SearchResultAction:
		applied := false
		next, err := r.updateTab(s, a.Ref, func(t Tab) (Tab, error) {
			updated, ok := t.ApplySearchResult(a.Seq, a.Hits, a.Err)
			if !ok {
				return t, errNoChange
			}
			applied = true
			return updated, nil
		})
		if err != nil {
			r.log.Debug("dropping search result for closed tab", logging.String("tab", a.Ref.TabID))
			return s, nil
		}
		if !applied {
			r.log.Debug("discarding stale search result", logging.Uint64("seq", a.Seq))
			return s, nil
		}
		if a.Err != nil {
			r.log.Warn("search failed", logging.Err(a.Err))
			return next, notice(a.Err)
		}
		return next, nil

	case RefreshLocationAction:
		return r.refreshLocation(s, location.Normalize(string(a.Location))), nil

	default:
		return s, nil
	}
}

func (r *Reducer) stepHistory(s Session, dir Direction) (Session, error) {
	return r.updateActive(s, func(t Tab) (Tab, error) {
		next, err := t.NavigateHistory(dir)
		if errors.Is(err, ErrNoHistory) {
			return t, errNoChange
		}
		return next, err
	})
}

func (r *Reducer) refreshLocation(s Session, loc location.Location) Session {
	if loc.IsZero() {
		return s
	}
	for _, ref := range s.TabsAt(loc) {
		next, err := r.updateTab(s, ref, func(t Tab) (Tab, error) {
			return t.BeginLoad(), nil
		})
		if err == nil {
			s = next
		}
	}
	return s
}

func (r *Reducer) active(s Session) (Pane, Tab, error) {
	pane, tab, err := s.ActiveTab()
	if err != nil {
		r.logFault(err)
	}
	return pane, tab, err
}

func (r *Reducer) logFault(err error) {
	r.log.Error("session invariant violated", logging.Err(err))
}

// updateActive applies fn to the active tab and starts whatever loads the
// change requires.
func (r *Reducer) updateActive(s Session, fn func(Tab) (Tab, error)) (Session, error) {
	var before, after Tab
	next, err := s.DispatchToActiveTab(func(t Tab) (Tab, error) {
		before = t
		updated, err := fn(t)
		after = updated
		return updated, err
	})
	switch {
	case errors.Is(err, errNoChange):
		return s, nil
	case errors.Is(err, ErrNoActivePane), errors.Is(err, ErrNoActiveTab):
		r.logFault(err)
		return s, err
	case err != nil:
		return s, err
	}
	r.sideEffects(TabRef{PaneID: s.ActivePaneID, TabID: after.ID}, before, after)
	return next, nil
}

// updateTab is updateActive for a tab addressed by id.
func (r *Reducer) updateTab(s Session, ref TabRef, fn func(Tab) (Tab, error)) (Session, error) {
	var before, after Tab
	next, err := s.UpdateTab(ref.PaneID, ref.TabID, func(t Tab) (Tab, error) {
		before = t
		updated, err := fn(t)
		after = updated
		return updated, err
	})
	switch {
	case errors.Is(err, errNoChange):
		return s, nil
	case err != nil:
		return s, err
	}
	r.sideEffects(ref, before, after)
	return next, nil
}

func (r *Reducer) sideEffects(ref TabRef, before, after Tab) {
	if after.Listing.Seq != before.Listing.Seq && after.Listing.Status == LoadLoading {
		r.startListing(ref, after)
	}
	switch {
	case after.Search == nil && before.Search != nil:
		r.searches.Cancel(ref)
	case after.Search != nil && (before.Search == nil || before.Search.Seq != after.Search.Seq):
		r.startSearch(ref, *after.Search)
	}
}

func (r *Reducer) startListing(ref TabRef, t Tab) {
	r.listings.Start(ListingRequest{
		Ref:      ref,
		Seq:      t.Listing.Seq,
		Location: t.Listing.Location,
		Callback: func(result DirectoryLoadResultAction) {
			r.emit(result)
		},
	})
}

func (r *Reducer) startSearch(ref TabRef, o SearchOverlay) {
	r.log.Debug("search started",
		logging.String("query", o.Query),
		logging.Location("scope", o.Scope),
		logging.Uint64("seq", o.Seq))
	r.searches.Start(SearchRequest{
		Ref:   ref,
		Seq:   o.Seq,
		Query: search.Query{Text: o.Query, Scope: o.Scope},
		Callback: func(result SearchResultAction) {
			r.emit(result)
		},
	})
}

func (r *Reducer) startOperation(op fs.Op) {
	go func() {
		err := r.fs.Mutate(context.Background(), op)
		r.emit(FileOperationResultAction{Op: op, Err: err})
	}()
}

// affectedLocations lists the directories whose listings change after op.
func affectedLocations(op fs.Op) []location.Location {
	var out []location.Location
	add := func(loc location.Location) {
		if loc.IsZero() {
			return
		}
		for _, existing := range out {
			if existing == loc {
				return
			}
		}
		out = append(out, loc)
	}
	for _, loc := range []location.Location{op.Source, op.Target} {
		if parent, ok := loc.Parent(); ok {
			add(parent)
		}
	}
	if op.Kind == fs.OpCopy || op.Kind == fs.OpMove {
		add(op.Target)
	}
	return out
}
