package render

import (
	"time"

	statepkg "github.com/kk-code-lab/rpane/internal/state"
)

// Frame is everything drawn in one pass. The app builds it from the
// session plus its own UI state.
type Frame struct {
	Panes   []statepkg.DisplayState
	Prompt  *Prompt
	Confirm string
	Overlay *Overlay
	Help    bool
	Notices []Notice

	ShowHidden bool
	Clipboard  bool
	Demo       bool

	// LastYank flashes the status line briefly after a copy.
	LastYank time.Time
	Now      time.Time
}

// Prompt is a one-line text input shown in the status line.
type Prompt struct {
	Label string
	Text  string
}

// Overlay is a full-screen pick list.
type Overlay struct {
	Title    string
	Rows     []OverlayRow
	Selected int
	Empty    string
	Hint     string
}

type OverlayRow struct {
	Label  string
	Detail string
}

// Notice is a dismissable message; Error notices use the error color.
type Notice struct {
	Text  string
	Error bool
}

func (f Frame) activePane() (statepkg.DisplayState, bool) {
	for _, p := range f.Panes {
		if p.PaneActive {
			return p, true
		}
	}
	return statepkg.DisplayState{}, false
}

func (f Frame) now() time.Time {
	if f.Now.IsZero() {
		return time.Now()
	}
	return f.Now
}
