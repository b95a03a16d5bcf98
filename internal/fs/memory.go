package fs

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kk-code-lab/rpane/internal/location"
)

type memNode struct {
	dir      bool
	size     int64
	modified time.Time
}

// MemoryProvider is an in-memory filesystem used by demo mode and tests.
type MemoryProvider struct {
	mu    sync.RWMutex
	nodes map[location.Location]memNode
	home  location.Location
	now   func() time.Time

	// ListHook, when set, runs before every List and may block or fail.
	ListHook func(ctx context.Context, loc location.Location) error
}

// NewMemoryProvider returns an empty tree whose home is home. Roots are
// created on demand by AddDir and AddFile.
func NewMemoryProvider(home location.Location) *MemoryProvider {
	p := &MemoryProvider{
		nodes: make(map[location.Location]memNode),
		home:  home,
		now:   time.Now,
	}
	if !home.IsZero() {
		p.AddDir(home)
	}
	return p
}

// NewDemoProvider seeds a small Windows-like tree.
func NewDemoProvider() *MemoryProvider {
	p := NewMemoryProvider("C:/Users/Public")
	stamp := time.Date(2023, 10, 27, 9, 0, 0, 0, time.UTC)
	p.SetClock(func() time.Time { return stamp })
	p.AddFile("C:/Users/Public/Documents/sample.txt", 1024)
	p.AddDir("C:/Users/Public/Downloads")
	p.AddDir("C:/Windows")
	p.AddDir("C:/Program Files")
	p.SetClock(time.Now)
	return p
}

// SetClock replaces the source of modification times for later changes.
func (p *MemoryProvider) SetClock(now func() time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
}

// AddDir creates loc and any missing ancestors.
func (p *MemoryProvider) AddDir(loc location.Location) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.addDirLocked(loc)
}

func (p *MemoryProvider) addDirLocked(loc location.Location) {
	for cur := loc; ; {
		if _, ok := p.nodes[cur]; !ok {
			p.nodes[cur] = memNode{dir: true, modified: p.now()}
		}
		parent, ok := cur.Parent()
		if !ok {
			return
		}
		cur = parent
	}
}

// AddFile creates a file of the given size and its parent directories.
func (p *MemoryProvider) AddFile(loc location.Location, size int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if parent, ok := loc.Parent(); ok {
		p.addDirLocked(parent)
	}
	p.nodes[loc] = memNode{size: size, modified: p.now()}
	p.touchParentLocked(loc)
}

func (p *MemoryProvider) touchParentLocked(loc location.Location) {
	if parent, ok := loc.Parent(); ok {
		if n, exists := p.nodes[parent]; exists {
			n.modified = p.now()
			p.nodes[parent] = n
		}
	}
}

func (p *MemoryProvider) item(loc location.Location, n memNode) Item {
	name := loc.Base()
	it := Item{
		Name:     name,
		Kind:     KindFile,
		Modified: n.modified,
		FullPath: loc,
		Hidden:   isDotHidden(name),
	}
	switch {
	case n.dir && loc.IsRoot():
		it.Kind = KindDrive
	case n.dir:
		it.Kind = KindDirectory
	default:
		it.Size = n.size
		it.HasSize = true
		it.Extension = extensionOf(name)
	}
	return it
}

func (p *MemoryProvider) List(ctx context.Context, loc location.Location) ([]Item, error) {
	if p.ListHook != nil {
		if err := p.ListHook(ctx, loc); err != nil {
			return nil, pathError("list", loc, err)
		}
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	n, ok := p.nodes[loc]
	if !ok {
		return nil, pathError("list", loc, ErrNotFound)
	}
	if !n.dir {
		return nil, pathError("list", loc, ErrUnavailable)
	}

	var items []Item
	for child, cn := range p.nodes {
		if parent, ok := child.Parent(); ok && parent == loc {
			items = append(items, p.item(child, cn))
		}
	}
	SortItems(items)
	return items, nil
}

func (p *MemoryProvider) Stat(_ context.Context, loc location.Location) (Item, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	n, ok := p.nodes[loc]
	if !ok {
		return Item{}, pathError("stat", loc, ErrNotFound)
	}
	return p.item(loc, n), nil
}

func (p *MemoryProvider) Drives(_ context.Context) ([]Drive, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var drives []Drive
	for loc, n := range p.nodes {
		if n.dir && loc.IsRoot() {
			name := string(loc)
			if len(name) == 2 && name[1] == ':' {
				name = "Local Disk (" + name + ")"
			}
			drives = append(drives, Drive{Name: name, Location: loc})
		}
	}
	sort.Slice(drives, func(i, j int) bool { return drives[i].Location < drives[j].Location })
	return drives, nil
}

func (p *MemoryProvider) Home() (location.Location, error) {
	if p.home.IsZero() {
		return "", pathError("home", "", ErrUnavailable)
	}
	return p.home, nil
}

func (p *MemoryProvider) SpecialFolders() []Place {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.home.IsZero() {
		return nil
	}
	places := []Place{{Name: "Home", Location: p.home}}
	for _, name := range specialFolderNames {
		loc := p.home.Join(name)
		if n, ok := p.nodes[loc]; ok && n.dir {
			places = append(places, Place{Name: name, Location: loc})
		}
	}
	return places
}

func (p *MemoryProvider) Mutate(_ context.Context, op Op) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	fail := func(path location.Location, reason string) error {
		return &OperationError{Op: op.Kind, Path: path, Reason: reason}
	}

	switch op.Kind {
	case OpCreateDirectory:
		if n, ok := p.nodes[op.Target]; ok && !n.dir {
			return fail(op.Target, "a file with that name exists")
		}
		p.addDirLocked(op.Target)
		p.touchParentLocked(op.Target)
		return nil
	case OpDelete:
		if op.Source.IsRoot() {
			return fail(op.Source, "refusing to delete a root")
		}
		if _, ok := p.nodes[op.Source]; !ok {
			return fail(op.Source, "no such file or directory")
		}
		for _, loc := range p.subtreeLocked(op.Source) {
			delete(p.nodes, loc)
		}
		p.touchParentLocked(op.Source)
		return nil
	case OpCopy, OpMove:
		if _, ok := p.nodes[op.Source]; !ok {
			return fail(op.Source, "no such file or directory")
		}
		if op.Source.Contains(op.Target) {
			return fail(op.Source, "destination is inside source")
		}
		if _, ok := p.nodes[op.Target]; ok {
			return fail(op.Target, "destination already exists")
		}
		parent, ok := op.Target.Parent()
		if n, exists := p.nodes[parent]; !ok || !exists || !n.dir {
			return fail(op.Target, "destination folder does not exist")
		}
		moved := p.subtreeLocked(op.Source)
		for _, loc := range moved {
			suffix := strings.TrimPrefix(string(loc), string(op.Source))
			p.nodes[location.Location(string(op.Target)+suffix)] = p.nodes[loc]
		}
		if op.Kind == OpMove {
			for _, loc := range moved {
				delete(p.nodes, loc)
			}
			p.touchParentLocked(op.Source)
		}
		p.touchParentLocked(op.Target)
		return nil
	default:
		return fail(op.Subject(), "unsupported operation")
	}
}

func (p *MemoryProvider) subtreeLocked(root location.Location) []location.Location {
	var out []location.Location
	for loc := range p.nodes {
		if root.Contains(loc) {
			out = append(out, loc)
		}
	}
	return out
}
