package fs

import (
	"strings"
	"time"

	"github.com/kk-code-lab/rpane/internal/location"
)

// Kind classifies a listing entry.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindDrive
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindDrive:
		return "drive"
	default:
		return "file"
	}
}

// Item represents a single file, directory or drive.
type Item struct {
	Name      string
	Kind      Kind
	Size      int64
	HasSize   bool
	Modified  time.Time
	FullPath  location.Location
	Extension string
	Hidden    bool
	Symlink   bool
}

// IsDir reports whether the item can be navigated into.
func (i Item) IsDir() bool {
	return i.Kind == KindDirectory || i.Kind == KindDrive
}

// Drive is a top-level volume or root.
type Drive struct {
	Name     string
	Location location.Location
}

// Place is a named shortcut such as the home or downloads folder.
type Place struct {
	Name     string
	Location location.Location
}

func extensionOf(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

func isDotHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
