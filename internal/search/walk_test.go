package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
)

func newTree() *fs.MemoryProvider {
	p := fs.NewMemoryProvider("/home/u")
	p.AddFile("/home/u/report.txt", 10)
	p.AddFile("/home/u/docs/report-final.txt", 20)
	p.AddFile("/home/u/docs/old/reports.md", 30)
	p.AddFile("/home/u/.cache/report.txt", 1)
	p.AddFile("/home/u/music/song.mp3", 5)
	p.AddDir("/home/u/Reports")
	return p
}

func names(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = string(h.Item.FullPath)
	}
	return out
}

func TestWalkSearchRanksByDistanceThenDepth(t *testing.T) {
	w := NewWalkProvider(newTree(), Options{})
	hits, err := w.Search(context.Background(), Query{Text: "Report", Scope: "/home/u"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	want := []string{
		"/home/u/Reports",
		"/home/u/report.txt",
		"/home/u/docs/old/reports.md",
		"/home/u/docs/report-final.txt",
	}
	got := names(hits)
	if len(got) != len(want) {
		t.Fatalf("hits = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("hits = %v, want %v", got, want)
		}
	}
	if hits[1].Location != "/home/u" {
		t.Fatalf("hit location = %q", hits[1].Location)
	}
}

func TestWalkSearchIncludesHiddenWhenConfigured(t *testing.T) {
	w := NewWalkProvider(newTree(), Options{IncludeHidden: true})
	hits, err := w.Search(context.Background(), Query{Text: "report.txt", Scope: "/home/u"})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected hidden match to be included, got %v", names(hits))
	}
}

func TestWalkSearchBlankQuery(t *testing.T) {
	w := NewWalkProvider(newTree(), Options{})
	hits, err := w.Search(context.Background(), Query{Text: "   ", Scope: "/home/u"})
	if err != nil || hits != nil {
		t.Fatalf("blank query = %v, %v", hits, err)
	}
}

func TestWalkSearchLimit(t *testing.T) {
	p := fs.NewMemoryProvider("/data")
	for i := 0; i < 80; i++ {
		p.AddFile(location.Location(fmt.Sprintf("/data/item-%02d.log", i)), 1)
	}
	w := NewWalkProvider(p, Options{})
	hits, err := w.Search(context.Background(), Query{Text: "item", Scope: "/data"})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != DefaultMaxResults {
		t.Fatalf("expected %d hits, got %d", DefaultMaxResults, len(hits))
	}
	if hits[0].Item.Name != "item-00.log" {
		t.Fatalf("first hit = %q", hits[0].Item.Name)
	}
}

func TestWalkSearchMissingScopeIsUnavailable(t *testing.T) {
	w := NewWalkProvider(newTree(), Options{})
	_, err := w.Search(context.Background(), Query{Text: "x", Scope: "/nope"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestWalkSearchTimeout(t *testing.T) {
	p := newTree()
	p.ListHook = func(ctx context.Context, loc location.Location) error {
		if loc == "/home/u" {
			return nil
		}
		<-ctx.Done()
		return ctx.Err()
	}
	w := NewWalkProvider(p, Options{Timeout: 50 * time.Millisecond})
	hits, err := w.Search(context.Background(), Query{Text: "report", Scope: "/home/u"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected partial hits from the first level, got %v", names(hits))
	}
}

func TestWalkSearchCancelledBySupersession(t *testing.T) {
	p := newTree()
	started := make(chan struct{})
	p.ListHook = func(ctx context.Context, _ location.Location) error {
		select {
		case <-started:
		default:
			close(started)
		}
		<-ctx.Done()
		return ctx.Err()
	}
	w := NewWalkProvider(p, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := w.Search(ctx, Query{Text: "report", Scope: "/home/u"})
		done <- err
	}()

	<-started
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("search did not stop after cancel")
	}
}

func TestWalkSearchAllDrives(t *testing.T) {
	p := fs.NewMemoryProvider("C:/Users")
	p.AddFile("C:/Users/notes.txt", 1)
	p.AddFile("D:/Backup/notes-old.txt", 1)
	p.AddDir("E:")

	w := NewWalkProvider(p, Options{})
	hits, err := w.Search(context.Background(), Query{Text: "notes"})
	if err != nil {
		t.Fatal(err)
	}
	got := names(hits)
	if len(got) != 2 || got[0] != "C:/Users/notes.txt" || got[1] != "D:/Backup/notes-old.txt" {
		t.Fatalf("hits = %v", got)
	}
}
