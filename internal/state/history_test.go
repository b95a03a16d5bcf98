package state

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kk-code-lab/rpane/internal/location"
)

func locs(raw ...string) []location.Location {
	out := make([]location.Location, len(raw))
	for i, r := range raw {
		out[i] = location.Normalize(r)
	}
	return out
}

func TestHistoryPushTracksLatest(t *testing.T) {
	h := NewHistory("C:")
	for _, loc := range locs("C:/a", "C:/a/b", "C:/a/b", "D:") {
		h = h.Push(loc)
		if h.Current() != loc {
			t.Fatalf("Current() = %q after push, want %q", h.Current(), loc)
		}
		if h.Cursor() != h.Len()-1 {
			t.Fatalf("cursor %d, want %d", h.Cursor(), h.Len()-1)
		}
	}
	if h.Len() != 5 {
		t.Fatalf("duplicate push should be kept, len = %d", h.Len())
	}
}

func TestHistoryBackThenForwardRestores(t *testing.T) {
	h := NewHistory("C:")
	for _, loc := range locs("C:/a", "C:/b", "C:/c") {
		h = h.Push(loc)
	}
	for steps := 1; steps <= 3; steps++ {
		start := h
		for i := 0; i < steps-1; i++ {
			var err error
			start, _, err = start.Back()
			if err != nil {
				t.Fatalf("Back: %v", err)
			}
		}
		back, _, err := start.Back()
		if err != nil {
			t.Fatalf("Back: %v", err)
		}
		fwd, loc, err := back.Forward()
		if err != nil {
			t.Fatalf("Forward: %v", err)
		}
		if loc != start.Current() || fwd.Cursor() != start.Cursor() {
			t.Fatalf("round trip from cursor %d gave %q@%d", start.Cursor(), loc, fwd.Cursor())
		}
	}
}

func TestHistoryPushAfterBackTruncates(t *testing.T) {
	h := NewHistory("A").Push("B").Push("C")
	h, cur, err := h.Back()
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if cur != "B" || h.Cursor() != 1 {
		t.Fatalf("after Back got %q@%d", cur, h.Cursor())
	}
	h = h.Push("D")
	if got, want := h.Entries(), locs("A", "B", "D"); !reflect.DeepEqual(got, want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	if h.Cursor() != 2 || h.CanGoForward() {
		t.Fatalf("cursor %d canGoForward %v", h.Cursor(), h.CanGoForward())
	}
}

func TestHistoryBoundaries(t *testing.T) {
	h := NewHistory("A")
	if h.CanGoBack() || h.CanGoForward() {
		t.Fatal("single entry history should not move")
	}
	if _, _, err := h.Back(); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("Back err = %v", err)
	}
	if _, _, err := h.Forward(); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("Forward err = %v", err)
	}
}

func TestHistoryValuesAreIndependent(t *testing.T) {
	base := NewHistory("A").Push("B").Push("C")
	back, _, _ := base.Back()
	_ = back.Push("X")
	if got := base.Entries(); !reflect.DeepEqual(got, locs("A", "B", "C")) {
		t.Fatalf("original history changed: %v", got)
	}
	if base.Cursor() != 2 {
		t.Fatalf("original cursor changed: %d", base.Cursor())
	}
}
