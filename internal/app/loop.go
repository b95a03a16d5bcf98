package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpane/internal/logging"
	statepkg "github.com/kk-code-lab/rpane/internal/state"
	inputui "github.com/kk-code-lab/rpane/internal/ui/input"
	renderui "github.com/kk-code-lab/rpane/internal/ui/render"
)

const (
	doubleClickThreshold = 300 * time.Millisecond
	wheelStep            = 3
	flashDuration        = 100 * time.Millisecond
)

// Run drives the UI until the user quits.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.render()
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	const animationInterval = 50 * time.Millisecond
	var animationTimer *time.Timer
	var animationCh <-chan time.Time

	startAnimation := func() {
		if animationTimer == nil {
			animationTimer = time.NewTimer(animationInterval)
		} else {
			if !animationTimer.Stop() {
				select {
				case <-animationTimer.C:
				default:
				}
			}
			animationTimer.Reset(animationInterval)
		}
		animationCh = animationTimer.C
	}

	stopAnimation := func() {
		if animationTimer == nil {
			return
		}
		if !animationTimer.Stop() {
			select {
			case <-animationTimer.C:
			default:
			}
		}
		animationCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		if app.shouldAnimate() {
			startAnimation()
		} else {
			stopAnimation()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animationCh:
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	stopAnimation()
}

func (app *Application) render() {
	app.renderer.Render(app.frame())
	app.syncInputView()
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

// handleMouse maps clicks on tabs, breadcrumbs and rows to actions using
// the hit zones of the last frame.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.inputMode() != inputui.ModeNormal {
		return false
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.dispatch(statepkg.MoveSelectionAction{Delta: -wheelStep})
		return true
	case buttons&tcell.WheelDown != 0:
		app.dispatch(statepkg.MoveSelectionAction{Delta: wheelStep})
		return true
	case buttons&tcell.Button1 == 0:
		return false
	}

	x, y := ev.Position()
	hit, ok := app.renderer.HitTest(x, y)
	if !ok {
		return false
	}

	clickKey := fmt.Sprintf("%d-%s-%s-%d", hit.Kind, hit.PaneID, hit.TabID, hit.Index)
	doubleClick := app.lastClickKey == clickKey && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickKey = clickKey
	app.lastClickTime = time.Now()

	switch hit.Kind {
	case renderui.HitTab:
		app.dispatch(statepkg.SelectTabAction{PaneID: hit.PaneID, TabID: hit.TabID})
	case renderui.HitCrumb:
		app.dispatch(statepkg.SelectPaneAction{PaneID: hit.PaneID})
		app.dispatch(statepkg.BreadcrumbAction{Index: hit.Index})
	case renderui.HitRow:
		app.dispatch(statepkg.SelectPaneAction{PaneID: hit.PaneID})
		app.dispatch(statepkg.SelectIndexAction{Index: hit.Index})
		if doubleClick {
			app.dispatch(statepkg.OpenSelectedAction{})
		}
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) shouldAnimate() bool {
	if app.ui.lastYank.IsZero() {
		return false
	}
	return time.Since(app.ui.lastYank) < flashDuration
}

// handleAction applies one action and reports whether a redraw is needed.
func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.QuitAndChangeAction:
		if _, tab, err := app.session.ActiveTab(); err == nil {
			app.currentPath = tab.Location().Native(goos)
		}
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.ResizeAction:
		app.screen.Sync()
		return true
	}

	if handled := app.handleAppAction(action); handled {
		app.afterChange()
		return true
	}

	app.reduce(action)
	return true
}

// reduce runs action through the reducer and keeps the result.
func (app *Application) reduce(action statepkg.Action) {
	next, err := app.reducer.Reduce(app.session, action)
	app.session = next
	if err != nil {
		app.log.Debug("reduce", logging.String("action", fmt.Sprintf("%T", action)), logging.Err(err))
		app.reportError(err)
	}
	app.afterChange()
}

func (app *Application) afterChange() {
	app.syncWatcher()
	app.syncInputView()
}
