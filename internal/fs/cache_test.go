package fs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kk-code-lab/rpane/internal/location"
)

func TestCachingProviderReusesUntilDirectoryChanges(t *testing.T) {
	mem := NewMemoryProvider("/home/u")
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mem.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	mem.AddFile("/home/u/a.txt", 1)

	var lists atomic.Int32
	mem.ListHook = func(context.Context, location.Location) error {
		lists.Add(1)
		return nil
	}

	cache, err := NewCachingProvider(mem, 4)
	if err != nil {
		t.Fatalf("NewCachingProvider: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		items, err := cache.List(ctx, "/home/u")
		if err != nil || len(items) != 1 {
			t.Fatalf("List: %v %v", items, err)
		}
	}
	if got := lists.Load(); got != 1 {
		t.Fatalf("expected one underlying list, got %d", got)
	}

	mem.AddFile("/home/u/b.txt", 2)
	items, err := cache.List(ctx, "/home/u")
	if err != nil || len(items) != 2 {
		t.Fatalf("expected refreshed listing, got %v %v", items, err)
	}
	if got := lists.Load(); got != 2 {
		t.Fatalf("expected a second underlying list, got %d", got)
	}
}

func TestCachingProviderMutateInvalidatesParents(t *testing.T) {
	mem := NewDemoProvider()
	cache, err := NewCachingProvider(mem, 0)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if _, err := cache.List(ctx, "C:/Windows"); err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected 1 cached listing, got %d", cache.Len())
	}
	if err := cache.Mutate(ctx, Op{Kind: OpCreateDirectory, Target: "C:/Windows/Temp"}); err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected cache to be invalidated, len=%d", cache.Len())
	}
}

func TestCachingProviderReturnsCopies(t *testing.T) {
	cache, err := NewCachingProvider(NewDemoProvider(), 2)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	first, _ := cache.List(ctx, "C:")
	first[0].Name = "mutated"
	second, _ := cache.List(ctx, "C:")
	if second[0].Name == "mutated" {
		t.Fatal("cached listing leaked a shared slice")
	}
}
