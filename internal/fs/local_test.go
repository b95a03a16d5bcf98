package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kk-code-lab/rpane/internal/location"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLocalListSortsDirectoriesFirstWithNumericOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "file10.txt"), "x")
	writeFile(t, filepath.Join(dir, "file2.txt"), "xy")
	writeFile(t, filepath.Join(dir, ".hidden"), "")
	if err := os.Mkdir(filepath.Join(dir, "zeta"), 0o755); err != nil {
		t.Fatal(err)
	}

	p := NewLocalProvider()
	items, err := p.List(context.Background(), location.Normalize(dir))
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	index := make(map[string]int, len(items))
	for i, it := range items {
		index[it.Name] = i
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	if index["zeta"] != 0 {
		t.Fatalf("directory should sort first, got index %d", index["zeta"])
	}
	if index["file2.txt"] > index["file10.txt"] {
		t.Fatal("file2.txt should sort before file10.txt")
	}

	if items[0].Kind != KindDirectory || items[0].HasSize {
		t.Fatalf("expected directory without size, got %+v", items[0])
	}
	if !items[index[".hidden"]].Hidden {
		t.Fatal("dot-file should be hidden")
	}
	file2 := items[index["file2.txt"]]
	if file2.Size != 2 || file2.Extension != "txt" {
		t.Fatalf("unexpected file item %+v", file2)
	}
	if file2.FullPath != location.Normalize(dir).Join("file2.txt") {
		t.Fatalf("full path = %q", file2.FullPath)
	}
}

func TestLocalListMissingDirectoryIsNotFound(t *testing.T) {
	p := NewLocalProvider()
	_, err := p.List(context.Background(), location.Normalize(filepath.Join(t.TempDir(), "missing")))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var pe *PathError
	if !errors.As(err, &pe) || pe.Op != "list" {
		t.Fatalf("expected *PathError for list, got %T", err)
	}
}

func TestLocalMutateCopyMoveDelete(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a", "one.txt"), "1")
	writeFile(t, filepath.Join(root, "src", "two.txt"), "22")
	if err := os.Mkdir(filepath.Join(root, "dst"), 0o755); err != nil {
		t.Fatal(err)
	}

	p := NewLocalProvider()
	ctx := context.Background()
	base := location.Normalize(root)

	if err := p.Mutate(ctx, Op{Kind: OpCopy, Source: base.Join("src"), Target: base.Join("dst/src")}); err != nil {
		t.Fatalf("copy: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "dst", "src", "a", "one.txt"))
	if err != nil || string(data) != "1" {
		t.Fatalf("copied file = %q, %v", data, err)
	}

	if err := p.Mutate(ctx, Op{Kind: OpMove, Source: base.Join("src/two.txt"), Target: base.Join("dst/moved.txt")}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "src", "two.txt")); !os.IsNotExist(err) {
		t.Fatalf("source should be gone after move, err=%v", err)
	}

	if err := p.Mutate(ctx, Op{Kind: OpDelete, Source: base.Join("src")}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "src")); !os.IsNotExist(err) {
		t.Fatalf("directory should be removed, err=%v", err)
	}

	if err := p.Mutate(ctx, Op{Kind: OpCreateDirectory, Target: base.Join("new/nested")}); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if info, err := os.Stat(filepath.Join(root, "new", "nested")); err != nil || !info.IsDir() {
		t.Fatalf("mkdir result: %v", err)
	}
}

func TestLocalMutateReportsOperationFailed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "b.txt"), "b")

	p := NewLocalProvider()
	base := location.Normalize(root)

	err := p.Mutate(context.Background(), Op{Kind: OpCopy, Source: base.Join("a.txt"), Target: base.Join("b.txt")})
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *OperationError, got %v", err)
	}
	if opErr.Op != OpCopy || opErr.Reason == "" {
		t.Fatalf("unexpected operation error %+v", opErr)
	}

	err = p.Mutate(context.Background(), Op{Kind: OpCopy, Source: base, Target: base.Join("inner")})
	if !errors.As(err, &opErr) || opErr.Reason != "destination is inside source" {
		t.Fatalf("expected inside-source failure, got %v", err)
	}

	err = p.Mutate(context.Background(), Op{Kind: OpDelete, Source: "/"})
	if !errors.As(err, &opErr) {
		t.Fatalf("deleting a root must fail, got %v", err)
	}
}

func TestLocalStatAndHome(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "f.md"), "hello")

	p := NewLocalProvider()
	p.homeDir = func() (string, error) { return dir, nil }

	item, err := p.Stat(context.Background(), location.Normalize(dir).Join("f.md"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if item.Name != "f.md" || item.Size != 5 || item.Extension != "md" {
		t.Fatalf("unexpected item %+v", item)
	}

	home, err := p.Home()
	if err != nil || home != location.Normalize(dir) {
		t.Fatalf("Home = %q, %v", home, err)
	}

	if err := os.Mkdir(filepath.Join(dir, "Downloads"), 0o755); err != nil {
		t.Fatal(err)
	}
	places := p.SpecialFolders()
	if len(places) != 2 || places[1].Name != "Downloads" {
		t.Fatalf("special folders = %+v", places)
	}
}
