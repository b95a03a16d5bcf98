package state

import "github.com/kk-code-lab/rpane/internal/location"

// History is a browser-style back/forward stack. Values are immutable:
// every operation returns a new History and leaves the receiver intact.
type History struct {
	entries []location.Location
	cursor  int
}

// NewHistory starts a history at start.
func NewHistory(start location.Location) History {
	return History{entries: []location.Location{start}}
}

// Push drops any forward entries and appends loc. Pushing the current
// location again is allowed and creates a duplicate entry.
func (h History) Push(loc location.Location) History {
	keep := h.cursor + 1
	if keep > len(h.entries) {
		keep = len(h.entries)
	}
	entries := make([]location.Location, keep, keep+1)
	copy(entries, h.entries[:keep])
	entries = append(entries, loc)
	return History{entries: entries, cursor: len(entries) - 1}
}

// Back moves the cursor one step back.
func (h History) Back() (History, location.Location, error) {
	if !h.CanGoBack() {
		return h, h.Current(), ErrNoHistory
	}
	h.cursor--
	return h, h.entries[h.cursor], nil
}

// Forward moves the cursor one step forward.
func (h History) Forward() (History, location.Location, error) {
	if !h.CanGoForward() {
		return h, h.Current(), ErrNoHistory
	}
	h.cursor++
	return h, h.entries[h.cursor], nil
}

func (h History) CanGoBack() bool {
	return h.cursor > 0
}

func (h History) CanGoForward() bool {
	return h.cursor < len(h.entries)-1
}

// Current returns the displayed location.
func (h History) Current() location.Location {
	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[h.cursor]
}

// Entries returns a copy of the visited locations.
func (h History) Entries() []location.Location {
	out := make([]location.Location, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h History) Cursor() int {
	return h.cursor
}

func (h History) Len() int {
	return len(h.entries)
}
