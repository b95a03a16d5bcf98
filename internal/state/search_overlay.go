package state

import (
	"github.com/kk-code-lab/rpane/internal/location"
	"github.com/kk-code-lab/rpane/internal/search"
)

// SearchStatus is the lifecycle of a search overlay.
type SearchStatus int

const (
	SearchPending SearchStatus = iota
	SearchReady
	SearchFailed
)

func (s SearchStatus) String() string {
	switch s {
	case SearchPending:
		return "pending"
	case SearchReady:
		return "ready"
	default:
		return "failed"
	}
}

// SearchOverlay replaces a tab's directory listing with search results.
// Seq is the tab request number captured when the query was issued.
type SearchOverlay struct {
	Query    string
	Scope    location.Location
	Seq      uint64
	Status   SearchStatus
	Results  []search.Hit
	Err      error
	Selected int
}

// SelectedHit returns the highlighted result.
func (o *SearchOverlay) SelectedHit() (search.Hit, bool) {
	if o == nil || o.Selected < 0 || o.Selected >= len(o.Results) {
		return search.Hit{}, false
	}
	return o.Results[o.Selected], true
}
