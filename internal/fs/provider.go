package fs

import (
	"context"

	"github.com/kk-code-lab/rpane/internal/location"
)

// Provider is the filesystem backend consumed by the navigation core.
type Provider interface {
	List(ctx context.Context, loc location.Location) ([]Item, error)
	Stat(ctx context.Context, loc location.Location) (Item, error)
	Drives(ctx context.Context) ([]Drive, error)
	Home() (location.Location, error)
	SpecialFolders() []Place
	Mutate(ctx context.Context, op Op) error
}

// OpKind enumerates mutations.
type OpKind int

const (
	OpCopy OpKind = iota
	OpMove
	OpDelete
	OpCreateDirectory
)

func (k OpKind) String() string {
	switch k {
	case OpCopy:
		return "copy"
	case OpMove:
		return "move"
	case OpDelete:
		return "delete"
	case OpCreateDirectory:
		return "mkdir"
	default:
		return "unknown"
	}
}

// Op describes a mutation. Copy and Move read Source and write Target,
// the full destination path. Delete uses Source. CreateDirectory uses Target.
type Op struct {
	Kind   OpKind
	Source location.Location
	Target location.Location
}

// Subject is the location an error about op should name.
func (op Op) Subject() location.Location {
	if op.Kind == OpCreateDirectory {
		return op.Target
	}
	return op.Source
}

var specialFolderNames = []string{"Desktop", "Documents", "Downloads", "Pictures", "Music", "Videos"}
