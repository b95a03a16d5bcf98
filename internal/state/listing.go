package state

import (
	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
)

// LoadStatus tracks the directory load for a tab.
type LoadStatus int

const (
	LoadIdle LoadStatus = iota
	LoadLoading
	LoadReady
	LoadFailed
)

// Listing is the directory content shown by a tab when it is not searching.
// Items hold the last successful load; a failed load only sets Err.
type Listing struct {
	Location location.Location
	Seq      uint64
	Status   LoadStatus
	Items    []fs.Item
	Err      error
	Selected int

	// focus names the entry to select once the pending load completes.
	focus string
}

// SelectedItem returns the highlighted entry.
func (l Listing) SelectedItem() (fs.Item, bool) {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return fs.Item{}, false
	}
	return l.Items[l.Selected], true
}

func clampSelection(idx, n int) int {
	if n == 0 || idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

func indexOfName(items []fs.Item, name string) int {
	if name == "" {
		return -1
	}
	for i, it := range items {
		if it.Name == name {
			return i
		}
	}
	return -1
}
