package state

import (
	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
	"github.com/kk-code-lab/rpane/internal/search"
)

// TabLabel is one entry of a pane's tab bar.
type TabLabel struct {
	ID     string
	Title  string
	Active bool
}

// DisplayState is the read model handed to the renderer for one pane.
type DisplayState struct {
	PaneID     string
	TabID      string
	PaneActive bool
	Tabs       []TabLabel

	Location     location.Location
	Breadcrumbs  []location.Crumb
	CanGoBack    bool
	CanGoForward bool
	CanGoUp      bool

	Mode         TabMode
	Searching    bool
	Query        string
	SearchStatus SearchStatus
	SearchErr    error
	Results      []search.Hit

	Items    []fs.Item
	Loading  bool
	LoadErr  error
	Selected int
}

// GetDisplayState describes the active tab of the active pane.
func GetDisplayState(s Session) (DisplayState, error) {
	pane, err := s.ActivePane()
	if err != nil {
		return DisplayState{}, err
	}
	return paneDisplay(pane, true)
}

// PaneDisplays describes every pane in order.
func PaneDisplays(s Session) ([]DisplayState, error) {
	out := make([]DisplayState, 0, len(s.Panes))
	for _, p := range s.Panes {
		ds, err := paneDisplay(p, p.ID == s.ActivePaneID)
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, nil
}

func paneDisplay(p Pane, active bool) (DisplayState, error) {
	tab, err := p.ActiveTab()
	if err != nil {
		return DisplayState{}, err
	}

	labels := make([]TabLabel, len(p.Tabs))
	for i, t := range p.Tabs {
		labels[i] = TabLabel{ID: t.ID, Title: t.Title(), Active: t.ID == tab.ID}
	}

	loc := tab.Location()
	ds := DisplayState{
		PaneID:       p.ID,
		TabID:        tab.ID,
		PaneActive:   active,
		Tabs:         labels,
		Location:     loc,
		Breadcrumbs:  loc.Breadcrumbs(),
		CanGoBack:    tab.History.CanGoBack(),
		CanGoForward: tab.History.CanGoForward(),
		CanGoUp:      tab.Search == nil && loc.HasParent(),
		Mode:         tab.Mode(),
	}

	if o := tab.Search; o != nil {
		ds.Searching = true
		ds.Query = o.Query
		ds.SearchStatus = o.Status
		ds.SearchErr = o.Err
		ds.Results = o.Results
		ds.Loading = o.Status == SearchPending
		ds.Selected = o.Selected
		return ds, nil
	}

	ds.Items = tab.Listing.Items
	ds.Loading = tab.Listing.Status == LoadLoading
	ds.LoadErr = tab.Listing.Err
	ds.Selected = tab.Listing.Selected
	return ds, nil
}
