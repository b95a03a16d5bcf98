package app

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpane/internal/clipstore"
	"github.com/kk-code-lab/rpane/internal/config"
	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
	"github.com/kk-code-lab/rpane/internal/logging"
	"github.com/kk-code-lab/rpane/internal/search"
	statepkg "github.com/kk-code-lab/rpane/internal/state"
	inputui "github.com/kk-code-lab/rpane/internal/ui/input"
	renderui "github.com/kk-code-lab/rpane/internal/ui/render"
	"go.uber.org/zap"
)

// Options selects how the application is assembled.
type Options struct {
	Config config.Config
	Demo   bool
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	session  statepkg.Session
	reducer  *statepkg.Reducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action
	log      *zap.Logger

	provider fs.Provider // top of the stack, what the reducer reads
	cache    *fs.CachingProvider
	hidden   *fs.HiddenFilter
	watcher  *fs.Watcher
	watched  []location.Location
	clips    *clipstore.Store

	ui          uiState
	demo        bool
	shouldQuit  bool
	currentPath string

	copyText       func(string) error
	clipboardAvail bool
	openerCmd      []string
	startCommand   func(args []string) error

	lastClickKey  string
	lastClickTime time.Time
}

// deps are the pieces NewApplication builds from the environment; tests
// supply their own.
type deps struct {
	screen   tcell.Screen
	base     fs.Provider
	clips    *clipstore.Store
	ids      statepkg.IDSource
	watch    bool
	copyText func(string) error
}

// NewApplication builds the app from configuration.
func NewApplication(opts Options) (*Application, error) {
	cfg := opts.Config
	log := logging.Named("app")

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	var base fs.Provider = fs.NewLocalProvider()
	if opts.Demo {
		base = fs.NewDemoProvider()
	}

	clips, clipErr := clipstore.Open(cfg.Clipboard.DBPath, clipstore.WithMaxItems(cfg.Clipboard.MaxItems))
	if clipErr != nil {
		// History is optional; the app runs without it.
		log.Warn("clipboard history unavailable", logging.Err(clipErr))
		clips = nil
	}

	app, err := newApplication(cfg, opts.Demo, deps{
		screen:   screen,
		base:     base,
		clips:    clips,
		ids:      statepkg.UUIDs(),
		watch:    cfg.Watch.Enabled && !opts.Demo,
		copyText: clipboard.WriteAll,
	})
	if err != nil {
		screen.Fini()
		if clips != nil {
			_ = clips.Close()
		}
		return nil, err
	}
	app.clipboardAvail = !clipboard.Unsupported
	if clipErr != nil {
		app.notify(noticeWarn, "clipboard history unavailable: "+clipErr.Error())
	}
	return app, nil
}

func newApplication(cfg config.Config, demo bool, d deps) (*Application, error) {
	cache, err := fs.NewCachingProvider(d.base, cfg.Cache.Listings)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	hidden := fs.NewHiddenFilter(cache, cfg.Browse.ShowHidden)

	// Search reads the uncached provider so walks do not evict listings.
	searcher := search.NewWalkProvider(d.base, search.Options{
		MaxResults:    cfg.Search.MaxResults,
		Timeout:       cfg.Search.Timeout,
		IncludeHidden: cfg.Browse.ShowHidden,
	})

	app := &Application{
		screen:   d.screen,
		log:      logging.Named("app"),
		actionCh: make(chan statepkg.Action, 10),
		provider: hidden,
		cache:    cache,
		hidden:   hidden,
		clips:    d.clips,
		demo:     demo,
		copyText: d.copyText,
	}
	app.clipboardAvail = d.copyText != nil
	app.openerCmd, _ = detectOpener()
	app.startCommand = startDetached

	app.reducer = statepkg.NewReducer(statepkg.ReducerConfig{
		FS:       hidden,
		Search:   searcher,
		IDs:      d.ids,
		Dispatch: app.dispatch,
	})
	app.renderer = renderui.NewRenderer(d.screen)
	app.input = inputui.NewInputHandler(app.dispatch)

	start, second := app.startLocations(cfg)
	app.session = statepkg.CreateDefaultSession(start,
		statepkg.WithIDSource(d.ids),
		statepkg.WithPaneStart(1, second))

	if d.watch {
		w, err := fs.NewWatcher(app.onDirectoryChanged, func(err error) {
			app.log.Debug("watch error", logging.Err(err))
		})
		if err != nil {
			app.log.Warn("directory watching disabled", logging.Err(err))
		} else {
			app.watcher = w
		}
	}

	app.reducer.Bootstrap(app.session)
	app.syncWatcher()
	app.syncInputView()
	return app, nil
}

// startLocations resolves the configured start folders, falling back to
// the working directory and then home.
func (app *Application) startLocations(cfg config.Config) (location.Location, location.Location) {
	home, err := app.provider.Home()
	if err != nil {
		app.log.Warn("home directory unavailable", logging.Err(err))
	}

	start := location.Normalize(cfg.Browse.Start)
	if start.IsZero() && !app.demo {
		if cwd, err := GetCwd(); err == nil {
			start = location.Normalize(cwd)
		}
	}
	if start.IsZero() {
		start = home
	}
	second := location.Normalize(cfg.Browse.SecondPane)
	if second.IsZero() {
		second = start
	}
	return start, second
}

// dispatch queues an action for the loop without ever blocking the caller.
func (app *Application) dispatch(action statepkg.Action) {
	select {
	case app.actionCh <- action:
	default:
		go func() { app.actionCh <- action }()
	}
}

func (app *Application) onDirectoryChanged(loc location.Location) {
	app.cache.Invalidate(loc)
	app.dispatch(statepkg.RefreshLocationAction{Location: loc})
}

// syncWatcher points the watcher at the locations currently on screen.
func (app *Application) syncWatcher() {
	if app.watcher == nil {
		return
	}
	visible := app.session.VisibleLocations()
	if slices.Equal(visible, app.watched) {
		return
	}
	app.watched = visible
	if err := app.watcher.Watch(visible); err != nil {
		app.log.Debug("watch failed", logging.Err(err))
	}
}

// Close cleans up resources.
func (app *Application) Close() error {
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	if app.clips != nil {
		_ = app.clips.Close()
	}
	app.screen.Fini()
	return nil
}

// GetCurrentPath returns the directory to hand back to the shell on exit,
// or "" when the shell should stay where it was.
func (app *Application) GetCurrentPath() string {
	return app.currentPath
}

// GetCwd returns current working directory.
func GetCwd() (string, error) {
	return os.Getwd()
}

func (app *Application) ctx() context.Context {
	return context.Background()
}
