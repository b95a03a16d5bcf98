package state

import (
	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
	"github.com/kk-code-lab/rpane/internal/search"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

// NavigateAction moves the active tab to Location. A non-empty Focus
// selects the entry of that name once the listing arrives.
type NavigateAction struct {
	Location location.Location
	Focus    string
}
type GoBackAction struct{}
type GoForwardAction struct{}
type GoUpAction struct{}
type GoHomeAction struct{}

// BreadcrumbAction jumps to the Index-th segment of the active location.
type BreadcrumbAction struct {
	Index int
}
type RefreshAction struct{}

// ===== SELECTION ACTIONS =====

type MoveSelectionAction struct {
	Delta int
}
type SelectIndexAction struct {
	Index int
}
type OpenSelectedAction struct{}

// OpenFileAction is emitted when a file (not a directory) is opened; the
// app hands it to the platform opener.
type OpenFileAction struct {
	Location location.Location
}

// ===== SEARCH ACTIONS =====

// SearchAction runs Query in the active tab. A zero Scope searches the
// tab's current location; Everywhere searches every drive.
type SearchAction struct {
	Query      string
	Scope      location.Location
	Everywhere bool
}
type ClearSearchAction struct{}

// ===== TAB AND PANE ACTIONS =====

// NewTabAction opens a tab in the active pane. A zero Location copies the
// active tab's location.
type NewTabAction struct {
	Location location.Location
}

// CloseTabAction closes TabID in the active pane, or the active tab when
// TabID is empty.
type CloseTabAction struct {
	TabID string
}
type SelectPaneAction struct {
	PaneID string
}
type SelectTabAction struct {
	PaneID string
	TabID  string
}
type CycleTabAction struct {
	Delta int
}
type CyclePaneAction struct {
	Delta int
}

// ===== FILE OPERATION ACTIONS =====

type FileOperationAction struct {
	Op fs.Op
}

// ===== ASYNC RESULT ACTIONS =====

type DirectoryLoadResultAction struct {
	Ref      TabRef
	Seq      uint64
	Location location.Location
	Items    []fs.Item
	Err      error
}

type SearchResultAction struct {
	Ref  TabRef
	Seq  uint64
	Hits []search.Hit
	Err  error
}

// RefreshLocationAction reloads every tab currently showing Location.
type RefreshLocationAction struct {
	Location location.Location
}

type FileOperationResultAction struct {
	Op  fs.Op
	Err error
}

// ===== APPLICATION ACTIONS =====
// Handled by the app loop; the reducer ignores them.

type QuitAction struct{}          // q - leave the shell where it was
type QuitAndChangeAction struct{} // x - cd the shell to the active location
type HelpToggleAction struct{}
type SuspendAction struct{} // Ctrl+Z

// DismissAction closes the top overlay, else the newest notice, else the
// active search.
type DismissAction struct{}
type YankPathAction struct{}
type ToggleHiddenAction struct{}

type ResizeAction struct {
	Width  int
	Height int
}

// PromptKind says what a submitted prompt line does.
type PromptKind int

const (
	PromptSearch PromptKind = iota
	PromptSearchEverywhere
	PromptAddress
	PromptMkdir
	PromptTemplateName
)

type PromptStartAction struct {
	Kind PromptKind
}
type PromptCharAction struct {
	Char rune
}
type PromptBackspaceAction struct{}
type PromptClearAction struct{}
type PromptSubmitAction struct{}
type PromptCancelAction struct{}

// OverlayKind names a full-pane list overlay.
type OverlayKind int

const (
	OverlayClipboard OverlayKind = iota
	OverlayPlaces
	OverlayProperties
)

type OverlayOpenAction struct {
	Kind OverlayKind
}
type OverlayMoveAction struct {
	Delta int
}
type OverlaySelectAction struct{}
type OverlayDeleteAction struct{}
type OverlaySaveTemplateAction struct{}

// ===== FILE OPERATION REQUESTS =====
// Resolved by the app against the selection and the other pane.

type CopyToOtherPaneAction struct{}
type MoveToOtherPaneAction struct{}
type DeleteSelectedAction struct{}
type ConfirmAction struct {
	Yes bool
}
