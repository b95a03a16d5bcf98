package input

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rpane/internal/state"
)

func emit(t *testing.T, mode Mode, ev *tcell.EventKey) (statepkg.Action, bool) {
	t.Helper()
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(func(a statepkg.Action) { actionChan <- a })
	handler.SetView(View{Mode: mode, PageSize: 20})

	keepRunning := handler.ProcessEvent(ev)

	select {
	case action := <-actionChan:
		return action, keepRunning
	default:
		t.Fatalf("Expected action to be emitted for %v", ev.Name())
		return nil, keepRunning
	}
}

func TestNormalModeKeyTable(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, 0), statepkg.MoveSelectionAction{Delta: -1}},
		{tcell.NewEventKey(tcell.KeyDown, 0, 0), statepkg.MoveSelectionAction{Delta: 1}},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, 0), statepkg.MoveSelectionAction{Delta: 20}},
		{tcell.NewEventKey(tcell.KeyPgUp, 0, 0), statepkg.MoveSelectionAction{Delta: -20}},
		{tcell.NewEventKey(tcell.KeyHome, 0, 0), statepkg.SelectIndexAction{Index: 0}},
		{tcell.NewEventKey(tcell.KeyEnd, 0, 0), statepkg.SelectIndexAction{Index: math.MaxInt32}},
		{tcell.NewEventKey(tcell.KeyEnter, 0, 0), statepkg.OpenSelectedAction{}},
		{tcell.NewEventKey(tcell.KeyRight, 0, 0), statepkg.OpenSelectedAction{}},
		{tcell.NewEventKey(tcell.KeyLeft, 0, 0), statepkg.GoUpAction{}},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), statepkg.GoUpAction{}},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt), statepkg.GoBackAction{}},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModAlt), statepkg.GoForwardAction{}},
		{tcell.NewEventKey(tcell.KeyRune, '[', 0), statepkg.GoBackAction{}},
		{tcell.NewEventKey(tcell.KeyRune, ']', 0), statepkg.GoForwardAction{}},
		{tcell.NewEventKey(tcell.KeyRune, '~', 0), statepkg.GoHomeAction{}},
		{tcell.NewEventKey(tcell.KeyTab, 0, 0), statepkg.CyclePaneAction{Delta: 1}},
		{tcell.NewEventKey(tcell.KeyCtrlT, 0, tcell.ModCtrl), statepkg.NewTabAction{}},
		{tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), statepkg.CloseTabAction{}},
		{tcell.NewEventKey(tcell.KeyRune, '{', 0), statepkg.CycleTabAction{Delta: -1}},
		{tcell.NewEventKey(tcell.KeyRune, '}', 0), statepkg.CycleTabAction{Delta: 1}},
		{tcell.NewEventKey(tcell.KeyRune, '/', 0), statepkg.PromptStartAction{Kind: statepkg.PromptSearch}},
		{tcell.NewEventKey(tcell.KeyCtrlF, 0, tcell.ModCtrl), statepkg.PromptStartAction{Kind: statepkg.PromptSearchEverywhere}},
		{tcell.NewEventKey(tcell.KeyRune, ':', 0), statepkg.PromptStartAction{Kind: statepkg.PromptAddress}},
		{tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl), statepkg.PromptStartAction{Kind: statepkg.PromptAddress}},
		{tcell.NewEventKey(tcell.KeyRune, '3', 0), statepkg.BreadcrumbAction{Index: 2}},
		{tcell.NewEventKey(tcell.KeyF5, 0, 0), statepkg.CopyToOtherPaneAction{}},
		{tcell.NewEventKey(tcell.KeyF6, 0, 0), statepkg.MoveToOtherPaneAction{}},
		{tcell.NewEventKey(tcell.KeyF7, 0, 0), statepkg.PromptStartAction{Kind: statepkg.PromptMkdir}},
		{tcell.NewEventKey(tcell.KeyF8, 0, 0), statepkg.DeleteSelectedAction{}},
		{tcell.NewEventKey(tcell.KeyRune, 'y', 0), statepkg.YankPathAction{}},
		{tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl), statepkg.OverlayOpenAction{Kind: statepkg.OverlayClipboard}},
		{tcell.NewEventKey(tcell.KeyRune, 'g', 0), statepkg.OverlayOpenAction{Kind: statepkg.OverlayPlaces}},
		{tcell.NewEventKey(tcell.KeyRune, 'i', 0), statepkg.OverlayOpenAction{Kind: statepkg.OverlayProperties}},
		{tcell.NewEventKey(tcell.KeyRune, 'r', 0), statepkg.RefreshAction{}},
		{tcell.NewEventKey(tcell.KeyRune, '.', 0), statepkg.ToggleHiddenAction{}},
		{tcell.NewEventKey(tcell.KeyRune, '?', 0), statepkg.HelpToggleAction{}},
		{tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.DismissAction{}},
		{tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), statepkg.SuspendAction{}},
	}

	for _, tc := range cases {
		t.Run(tc.ev.Name(), func(t *testing.T) {
			got, keepRunning := emit(t, ModeNormal, tc.ev)
			if !keepRunning {
				t.Fatalf("handler stopped on %s", tc.ev.Name())
			}
			if got != tc.want {
				t.Fatalf("Expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestQuitKeysStopTheLoop(t *testing.T) {
	for _, mode := range []Mode{ModeNormal, ModePrompt, ModeOverlay, ModeHelp} {
		got, keepRunning := emit(t, mode, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
		if keepRunning {
			t.Fatalf("mode %d: Ctrl+C should stop the loop", mode)
		}
		if _, ok := got.(statepkg.QuitAction); !ok {
			t.Fatalf("mode %d: Expected QuitAction, got %T", mode, got)
		}
	}

	got, keepRunning := emit(t, ModeNormal, tcell.NewEventKey(tcell.KeyRune, 'x', 0))
	if keepRunning {
		t.Fatal("x should stop the loop")
	}
	if _, ok := got.(statepkg.QuitAndChangeAction); !ok {
		t.Fatalf("Expected QuitAndChangeAction, got %T", got)
	}
}

func TestPromptModeCapturesRunes(t *testing.T) {
	got, _ := emit(t, ModePrompt, tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	if got != (statepkg.PromptCharAction{Char: 'q'}) {
		t.Fatalf("Expected 'q' to be typed into the prompt, got %#v", got)
	}

	got, _ = emit(t, ModePrompt, tcell.NewEventKey(tcell.KeyBackspace2, 0, 0))
	if _, ok := got.(statepkg.PromptBackspaceAction); !ok {
		t.Fatalf("Expected PromptBackspaceAction, got %T", got)
	}

	got, _ = emit(t, ModePrompt, tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	if _, ok := got.(statepkg.PromptSubmitAction); !ok {
		t.Fatalf("Expected PromptSubmitAction, got %T", got)
	}

	got, _ = emit(t, ModePrompt, tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	if _, ok := got.(statepkg.PromptCancelAction); !ok {
		t.Fatalf("Expected PromptCancelAction, got %T", got)
	}
}

func TestOverlayModeKeys(t *testing.T) {
	got, _ := emit(t, ModeOverlay, tcell.NewEventKey(tcell.KeyDown, 0, 0))
	if got != (statepkg.OverlayMoveAction{Delta: 1}) {
		t.Fatalf("Expected OverlayMoveAction{1}, got %#v", got)
	}

	got, _ = emit(t, ModeOverlay, tcell.NewEventKey(tcell.KeyRune, 'd', 0))
	if _, ok := got.(statepkg.OverlayDeleteAction); !ok {
		t.Fatalf("Expected OverlayDeleteAction, got %T", got)
	}

	got, keepRunning := emit(t, ModeOverlay, tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	if !keepRunning {
		t.Fatal("q in an overlay should close it, not quit")
	}
	if _, ok := got.(statepkg.DismissAction); !ok {
		t.Fatalf("Expected DismissAction, got %T", got)
	}
}

func TestConfirmModeAnswers(t *testing.T) {
	got, _ := emit(t, ModeConfirm, tcell.NewEventKey(tcell.KeyRune, 'y', 0))
	if got != (statepkg.ConfirmAction{Yes: true}) {
		t.Fatalf("Expected confirmation, got %#v", got)
	}
	got, _ = emit(t, ModeConfirm, tcell.NewEventKey(tcell.KeyRune, 'n', 0))
	if got != (statepkg.ConfirmAction{Yes: false}) {
		t.Fatalf("Expected refusal, got %#v", got)
	}
}

func TestHelpModeSwallowsNavigation(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(func(a statepkg.Action) { actionChan <- a })
	handler.SetView(View{Mode: ModeHelp})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyDown, 0, 0))
	select {
	case action := <-actionChan:
		t.Fatalf("Expected no action while help is shown, got %T", action)
	default:
	}

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '?', 0))
	select {
	case action := <-actionChan:
		if _, ok := action.(statepkg.HelpToggleAction); !ok {
			t.Fatalf("Expected HelpToggleAction, got %T", action)
		}
	default:
		t.Fatal("Expected HelpToggleAction to be emitted for '?'")
	}
}

func TestResizeEmitsDimensions(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(func(a statepkg.Action) { actionChan <- a })

	handler.ProcessEvent(tcell.NewEventResize(120, 40))
	select {
	case action := <-actionChan:
		if action != (statepkg.ResizeAction{Width: 120, Height: 40}) {
			t.Fatalf("Expected ResizeAction{120,40}, got %#v", action)
		}
	default:
		t.Fatal("Expected ResizeAction")
	}
}
