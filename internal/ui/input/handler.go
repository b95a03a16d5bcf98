package input

import (
	"math"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rpane/internal/state"
)

// Mode is the input context the app is in. Each mode owns the keyboard.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeOverlay
	ModeConfirm
	ModeHelp
)

// View is the slice of app state the handler needs to route keys.
type View struct {
	Mode     Mode
	PageSize int
}

// InputHandler converts tcell events to Actions
type InputHandler struct {
	emit func(statepkg.Action)
	view View
}

// NewInputHandler creates a new input handler. emit runs on the caller's
// goroutine and must not block.
func NewInputHandler(emit func(statepkg.Action)) *InputHandler {
	return &InputHandler{
		emit: emit,
	}
}

// SetView updates the mode used for routing.
func (ih *InputHandler) SetView(v View) {
	ih.view = v
}

// ProcessEvent converts a tcell event into an Action. It returns false
// once the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.emit(statepkg.ResizeAction{Width: w, Height: h})
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.emit(statepkg.QuitAction{})
		return false
	}

	switch ih.view.Mode {
	case ModeHelp:
		ih.processHelpKey(ev)
		return true
	case ModePrompt:
		ih.processPromptKey(ev)
		return true
	case ModeOverlay:
		ih.processOverlayKey(ev)
		return true
	case ModeConfirm:
		yes := ev.Key() == tcell.KeyEnter ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y'))
		ih.emit(statepkg.ConfirmAction{Yes: yes})
		return true
	}
	return ih.processNormalKey(ev)
}

func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.HelpToggleAction{})
	case tcell.KeyRune:
		r := ev.Rune()
		if r == '?' || r == 'q' || r == 'Q' {
			ih.emit(statepkg.HelpToggleAction{})
		}
	}
}

func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.PromptCancelAction{})
	case tcell.KeyEnter:
		ih.emit(statepkg.PromptSubmitAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(statepkg.PromptBackspaceAction{})
	case tcell.KeyCtrlU:
		ih.emit(statepkg.PromptClearAction{})
	case tcell.KeyRune:
		ih.emit(statepkg.PromptCharAction{Char: ev.Rune()})
	}
}

func (ih *InputHandler) processOverlayKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.DismissAction{})
	case tcell.KeyUp:
		ih.emit(statepkg.OverlayMoveAction{Delta: -1})
	case tcell.KeyDown:
		ih.emit(statepkg.OverlayMoveAction{Delta: 1})
	case tcell.KeyEnter:
		ih.emit(statepkg.OverlaySelectAction{})
	case tcell.KeyDelete:
		ih.emit(statepkg.OverlayDeleteAction{})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			ih.emit(statepkg.DismissAction{})
		case 'k':
			ih.emit(statepkg.OverlayMoveAction{Delta: -1})
		case 'j':
			ih.emit(statepkg.OverlayMoveAction{Delta: 1})
		case 'd':
			ih.emit(statepkg.OverlayDeleteAction{})
		case 's':
			ih.emit(statepkg.OverlaySaveTemplateAction{})
		}
	}
}

func (ih *InputHandler) pageSize() int {
	if ih.view.PageSize > 1 {
		return ih.view.PageSize
	}
	return 10
}

func (ih *InputHandler) processNormalKey(ev *tcell.EventKey) bool {
	alt := ev.Modifiers()&tcell.ModAlt != 0

	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.DismissAction{})
	case tcell.KeyUp:
		ih.emit(statepkg.MoveSelectionAction{Delta: -1})
	case tcell.KeyDown:
		ih.emit(statepkg.MoveSelectionAction{Delta: 1})
	case tcell.KeyPgUp:
		ih.emit(statepkg.MoveSelectionAction{Delta: -ih.pageSize()})
	case tcell.KeyPgDn:
		ih.emit(statepkg.MoveSelectionAction{Delta: ih.pageSize()})
	case tcell.KeyHome:
		ih.emit(statepkg.SelectIndexAction{Index: 0})
	case tcell.KeyEnd:
		ih.emit(statepkg.SelectIndexAction{Index: math.MaxInt32})
	case tcell.KeyEnter:
		ih.emit(statepkg.OpenSelectedAction{})
	case tcell.KeyRight:
		if alt {
			ih.emit(statepkg.GoForwardAction{})
		} else {
			ih.emit(statepkg.OpenSelectedAction{})
		}
	case tcell.KeyLeft:
		if alt {
			ih.emit(statepkg.GoBackAction{})
		} else {
			ih.emit(statepkg.GoUpAction{})
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(statepkg.GoUpAction{})
	case tcell.KeyTab:
		ih.emit(statepkg.CyclePaneAction{Delta: 1})
	case tcell.KeyBacktab:
		ih.emit(statepkg.CyclePaneAction{Delta: -1})
	case tcell.KeyCtrlZ:
		ih.emit(statepkg.SuspendAction{})
	case tcell.KeyCtrlT:
		ih.emit(statepkg.NewTabAction{})
	case tcell.KeyCtrlW:
		ih.emit(statepkg.CloseTabAction{})
	case tcell.KeyCtrlL:
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptAddress})
	case tcell.KeyCtrlF:
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptSearchEverywhere})
	case tcell.KeyCtrlP:
		ih.emit(statepkg.OverlayOpenAction{Kind: statepkg.OverlayClipboard})
	case tcell.KeyF5:
		ih.emit(statepkg.CopyToOtherPaneAction{})
	case tcell.KeyF6:
		ih.emit(statepkg.MoveToOtherPaneAction{})
	case tcell.KeyF7:
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptMkdir})
	case tcell.KeyF8, tcell.KeyDelete:
		ih.emit(statepkg.DeleteSelectedAction{})
	case tcell.KeyRune:
		return ih.processNormalRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processNormalRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.emit(statepkg.QuitAction{})
		return false
	case 'x', 'X':
		ih.emit(statepkg.QuitAndChangeAction{})
		return false
	case 'k':
		ih.emit(statepkg.MoveSelectionAction{Delta: -1})
	case 'j':
		ih.emit(statepkg.MoveSelectionAction{Delta: 1})
	case 'h':
		ih.emit(statepkg.GoUpAction{})
	case 'l':
		ih.emit(statepkg.OpenSelectedAction{})
	case '[':
		ih.emit(statepkg.GoBackAction{})
	case ']':
		ih.emit(statepkg.GoForwardAction{})
	case '{':
		ih.emit(statepkg.CycleTabAction{Delta: -1})
	case '}':
		ih.emit(statepkg.CycleTabAction{Delta: 1})
	case '~':
		ih.emit(statepkg.GoHomeAction{})
	case '/':
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptSearch})
	case ':':
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptAddress})
	case 'r':
		ih.emit(statepkg.RefreshAction{})
	case 'y':
		ih.emit(statepkg.YankPathAction{})
	case 'g':
		ih.emit(statepkg.OverlayOpenAction{Kind: statepkg.OverlayPlaces})
	case 'i':
		ih.emit(statepkg.OverlayOpenAction{Kind: statepkg.OverlayProperties})
	case '.':
		ih.emit(statepkg.ToggleHiddenAction{})
	case '?':
		ih.emit(statepkg.HelpToggleAction{})
	default:
		if r >= '1' && r <= '9' {
			ih.emit(statepkg.BreadcrumbAction{Index: int(r - '1')})
		}
	}
	return true
}
