package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/kk-code-lab/rpane/internal/location"
)

const defaultPaneCount = 2

// IDSource mints tab ids.
type IDSource func() string

// UUIDs is the default IDSource.
func UUIDs() IDSource {
	return uuid.NewString
}

// SequentialIDs yields prefix-1, prefix-2, ... and is safe for concurrent use.
func SequentialIDs(prefix string) IDSource {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// Session is the full multi-pane browsing state.
type Session struct {
	Panes        []Pane
	ActivePaneID string
}

type sessionConfig struct {
	panes  int
	starts map[int]location.Location
	ids    IDSource
}

// SessionOption customizes CreateDefaultSession.
type SessionOption func(*sessionConfig)

// WithPaneCount sets how many panes are created.
func WithPaneCount(n int) SessionOption {
	return func(c *sessionConfig) {
		if n > 0 {
			c.panes = n
		}
	}
}

// WithPaneStart overrides the start location of pane i (zero-based).
func WithPaneStart(i int, loc location.Location) SessionOption {
	return func(c *sessionConfig) {
		if !loc.IsZero() {
			c.starts[i] = loc
		}
	}
}

// WithIDSource sets the tab id generator.
func WithIDSource(ids IDSource) SessionOption {
	return func(c *sessionConfig) {
		if ids != nil {
			c.ids = ids
		}
	}
}

// CreateDefaultSession is the single bootstrap path for sessions: by
// default two panes named pane-1 and pane-2, each with one tab at start.
// The first pane is active.
func CreateDefaultSession(start location.Location, opts ...SessionOption) Session {
	cfg := sessionConfig{
		panes:  defaultPaneCount,
		starts: make(map[int]location.Location),
		ids:    UUIDs(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	panes := make([]Pane, cfg.panes)
	for i := range panes {
		loc := start
		if override, ok := cfg.starts[i]; ok {
			loc = override
		}
		panes[i] = NewPane(fmt.Sprintf("pane-%d", i+1), NewTab(cfg.ids(), loc))
	}
	return Session{Panes: panes, ActivePaneID: panes[0].ID}
}

func (s Session) paneIndex(id string) int {
	for i, p := range s.Panes {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Pane looks up a pane by id.
func (s Session) Pane(id string) (Pane, error) {
	idx := s.paneIndex(id)
	if idx < 0 {
		return Pane{}, notFound("pane", id)
	}
	return s.Panes[idx], nil
}

// ActivePane resolves ActivePaneID.
func (s Session) ActivePane() (Pane, error) {
	idx := s.paneIndex(s.ActivePaneID)
	if idx < 0 {
		return Pane{}, ErrNoActivePane
	}
	return s.Panes[idx], nil
}

// ActiveTab resolves the active pane and then its active tab.
func (s Session) ActiveTab() (Pane, Tab, error) {
	pane, err := s.ActivePane()
	if err != nil {
		return Pane{}, Tab{}, err
	}
	tab, err := pane.ActiveTab()
	if err != nil {
		return pane, Tab{}, err
	}
	return pane, tab, nil
}

// SetActivePane focuses pane id.
func (s Session) SetActivePane(id string) (Session, error) {
	if s.paneIndex(id) < 0 {
		return s, notFound("pane", id)
	}
	s.ActivePaneID = id
	return s, nil
}

// CyclePane moves focus by delta panes, wrapping around.
func (s Session) CyclePane(delta int) Session {
	n := len(s.Panes)
	if n == 0 {
		return s
	}
	idx := s.paneIndex(s.ActivePaneID)
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+delta)%n + n) % n
	s.ActivePaneID = s.Panes[idx].ID
	return s
}

// OtherPane returns the pane after the active one, if any.
func (s Session) OtherPane() (Pane, bool) {
	if len(s.Panes) < 2 {
		return Pane{}, false
	}
	other := s.CyclePane(1)
	p, err := other.ActivePane()
	return p, err == nil
}

// SelectTab activates tabID inside paneID and focuses that pane.
func (s Session) SelectTab(paneID, tabID string) (Session, error) {
	return s.focusAndUpdatePane(paneID, func(p Pane) (Pane, error) {
		return p.SelectTab(tabID)
	})
}

func (s Session) focusAndUpdatePane(paneID string, fn func(Pane) (Pane, error)) (Session, error) {
	next, err := s.UpdatePane(paneID, fn)
	if err != nil {
		return s, err
	}
	next.ActivePaneID = paneID
	return next, nil
}

// UpdatePane replaces pane paneID with fn's result.
func (s Session) UpdatePane(paneID string, fn func(Pane) (Pane, error)) (Session, error) {
	idx := s.paneIndex(paneID)
	if idx < 0 {
		return s, notFound("pane", paneID)
	}
	updated, err := fn(s.Panes[idx])
	if err != nil {
		return s, err
	}
	panes := make([]Pane, len(s.Panes))
	copy(panes, s.Panes)
	panes[idx] = updated
	s.Panes = panes
	return s, nil
}

// UpdateTab routes fn to a tab by id. Async results use this so they land
// on the tab that issued them even if focus has moved.
func (s Session) UpdateTab(paneID, tabID string, fn func(Tab) (Tab, error)) (Session, error) {
	return s.UpdatePane(paneID, func(p Pane) (Pane, error) {
		tab, err := p.Tab(tabID)
		if err != nil {
			return p, err
		}
		updated, err := fn(tab)
		if err != nil {
			return p, err
		}
		return p.ReplaceTab(updated)
	})
}

// DispatchToActiveTab resolves the active pane and tab and applies fn.
func (s Session) DispatchToActiveTab(fn func(Tab) (Tab, error)) (Session, error) {
	pane, tab, err := s.ActiveTab()
	if err != nil {
		return s, err
	}
	return s.UpdateTab(pane.ID, tab.ID, fn)
}

// TabRef addresses one tab.
type TabRef struct {
	PaneID string
	TabID  string
}

// TabsAt lists every browsing tab whose current location is loc.
func (s Session) TabsAt(loc location.Location) []TabRef {
	var refs []TabRef
	for _, p := range s.Panes {
		for _, t := range p.Tabs {
			if t.Location() == loc {
				refs = append(refs, TabRef{PaneID: p.ID, TabID: t.ID})
			}
		}
	}
	return refs
}

// VisibleLocations returns the location of each pane's active tab.
func (s Session) VisibleLocations() []location.Location {
	seen := make(map[location.Location]struct{}, len(s.Panes))
	var out []location.Location
	for _, p := range s.Panes {
		t, err := p.ActiveTab()
		if err != nil {
			continue
		}
		loc := t.Location()
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		out = append(out, loc)
	}
	return out
}
