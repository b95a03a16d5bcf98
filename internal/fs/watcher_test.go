package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kk-code-lab/rpane/internal/location"
)

func TestWatcherReportsChangedDirectoryOnce(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan location.Location, 8)

	w, err := NewWatcher(func(loc location.Location) { changes <- loc }, nil)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	want := location.Normalize(dir)
	if err := w.Watch([]location.Location{want}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	for i := 0; i < 3; i++ {
		name := filepath.Join(dir, "f"+string(rune('a'+i)))
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-changes:
		if got != want {
			t.Fatalf("changed = %q, want %q", got, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	select {
	case extra := <-changes:
		t.Fatalf("expected coalesced notification, got extra %q", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherWatchReplacesSet(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	w, err := NewWatcher(func(location.Location) {}, nil)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	la, lb := location.Normalize(a), location.Normalize(b)
	if err := w.Watch([]location.Location{la, lb}); err != nil {
		t.Fatal(err)
	}
	if got := w.Watched(); len(got) != 2 {
		t.Fatalf("watched = %v", got)
	}
	if err := w.Watch([]location.Location{lb}); err != nil {
		t.Fatal(err)
	}
	if got := w.Watched(); len(got) != 1 || got[0] != lb {
		t.Fatalf("watched = %v", got)
	}
}
