package state

import (
	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
	"github.com/kk-code-lab/rpane/internal/search"
)

// TabMode is the browsing state of a tab.
type TabMode int

const (
	ModeBrowsing TabMode = iota
	ModeSearchPending
	ModeSearching
)

func (m TabMode) String() string {
	switch m {
	case ModeSearchPending:
		return "search-pending"
	case ModeSearching:
		return "searching"
	default:
		return "browsing"
	}
}

// Direction selects a history step.
type Direction int

const (
	Back Direction = iota
	Forward
)

// Tab is an independent navigation context. All methods use value
// receivers and return an updated copy; the overlay pointer is never
// written through, only replaced.
type Tab struct {
	ID      string
	History History
	Search  *SearchOverlay
	Listing Listing

	seq uint64
}

// NewTab creates a tab at start with a listing load pending.
func NewTab(id string, start location.Location) Tab {
	t := Tab{ID: id, History: NewHistory(start)}
	return t.BeginLoad()
}

// Location returns the location the tab is displaying.
func (t Tab) Location() location.Location {
	return t.History.Current()
}

// Seq returns the most recently issued request number.
func (t Tab) Seq() uint64 {
	return t.seq
}

func (t Tab) Mode() TabMode {
	switch {
	case t.Search == nil:
		return ModeBrowsing
	case t.Search.Status == SearchPending:
		return ModeSearchPending
	default:
		return ModeSearching
	}
}

func (t Tab) nextSeq() (Tab, uint64) {
	t.seq++
	return t, t.seq
}

// Title is the label shown in the tab bar.
func (t Tab) Title() string {
	if t.Search != nil {
		return "Search: " + t.Search.Query
	}
	return t.Location().Base()
}

// BeginLoad issues a new listing request for the current location.
func (t Tab) BeginLoad() Tab {
	t, seq := t.nextSeq()
	l := t.Listing
	loc := t.Location()
	if l.Location != loc {
		l.Selected = 0
		l.focus = ""
	}
	l.Location = loc
	l.Seq = seq
	l.Status = LoadLoading
	l.Err = nil
	t.Listing = l
	return t
}

// ApplyListing stores a listing result if seq is still the latest listing
// request. A failed load keeps the previous items.
func (t Tab) ApplyListing(seq uint64, items []fs.Item, err error) (Tab, bool) {
	if seq == 0 || seq != t.Listing.Seq {
		return t, false
	}
	l := t.Listing
	if err != nil {
		l.Status = LoadFailed
		l.Err = err
		t.Listing = l
		return t, true
	}
	l.Items = items
	l.Status = LoadReady
	l.Err = nil
	if idx := indexOfName(items, l.focus); idx >= 0 {
		l.Selected = idx
	} else {
		l.Selected = clampSelection(l.Selected, len(items))
	}
	l.focus = ""
	t.Listing = l
	return t, true
}

// NavigateTo clears any search overlay, pushes loc and starts a load.
func (t Tab) NavigateTo(loc location.Location) Tab {
	t.Search = nil
	t.History = t.History.Push(loc)
	return t.BeginLoad()
}

// NavigateToAndFocus navigates and selects name once the listing arrives.
func (t Tab) NavigateToAndFocus(loc location.Location, name string) Tab {
	t = t.NavigateTo(loc)
	t.Listing.focus = name
	return t
}

// NavigateUp goes to the parent location. It is a no-op while a search
// overlay is present or when the current location is a root.
func (t Tab) NavigateUp() (Tab, bool) {
	if t.Search != nil {
		return t, false
	}
	cur := t.Location()
	parent, ok := cur.Parent()
	if !ok {
		return t, false
	}
	return t.NavigateToAndFocus(parent, cur.Base()), true
}

// NavigateHistory steps back or forward. A successful step clears the
// search overlay and starts a load; at either end ErrNoHistory is returned
// and the tab is unchanged.
func (t Tab) NavigateHistory(dir Direction) (Tab, error) {
	var (
		h   History
		err error
	)
	if dir == Back {
		h, _, err = t.History.Back()
	} else {
		h, _, err = t.History.Forward()
	}
	if err != nil {
		return t, err
	}

	prev := t.Location()
	t.History = h
	t.Search = nil
	t = t.BeginLoad()
	if parent, ok := prev.Parent(); ok && parent == t.Location() {
		t.Listing.focus = prev.Base()
	}
	return t, nil
}

// BeginSearch attaches a pending overlay. History is untouched.
func (t Tab) BeginSearch(query string, scope location.Location) Tab {
	t, seq := t.nextSeq()
	t.Search = &SearchOverlay{Query: query, Scope: scope, Seq: seq, Status: SearchPending}
	return t
}

// ApplySearchResult stores results only when seq matches the overlay's
// request; responses to superseded queries are dropped.
func (t Tab) ApplySearchResult(seq uint64, hits []search.Hit, err error) (Tab, bool) {
	if t.Search == nil || t.Search.Seq != seq {
		return t, false
	}
	o := *t.Search
	o.Results = hits
	o.Err = err
	o.Selected = 0
	o.Status = SearchReady
	if err != nil {
		o.Status = SearchFailed
	}
	t.Search = &o
	return t, true
}

// ClearSearch drops the overlay and returns to the directory listing.
func (t Tab) ClearSearch() (Tab, bool) {
	if t.Search == nil {
		return t, false
	}
	t.Search = nil
	return t, true
}

// MoveSelection moves the highlight in whichever list is displayed.
func (t Tab) MoveSelection(delta int) Tab {
	if t.Search != nil {
		o := *t.Search
		o.Selected = clampSelection(o.Selected+delta, len(o.Results))
		t.Search = &o
		return t
	}
	t.Listing.Selected = clampSelection(t.Listing.Selected+delta, len(t.Listing.Items))
	return t
}

// SelectIndex highlights entry idx of the displayed list.
func (t Tab) SelectIndex(idx int) Tab {
	if t.Search != nil {
		o := *t.Search
		o.Selected = clampSelection(idx, len(o.Results))
		t.Search = &o
		return t
	}
	t.Listing.Selected = clampSelection(idx, len(t.Listing.Items))
	return t
}

// SelectedItem returns the highlighted item of the displayed list and, for
// search results, the directory containing it.
func (t Tab) SelectedItem() (fs.Item, location.Location, bool) {
	if t.Search != nil {
		hit, ok := t.Search.SelectedHit()
		return hit.Item, hit.Location, ok
	}
	item, ok := t.Listing.SelectedItem()
	return item, t.Location(), ok
}
