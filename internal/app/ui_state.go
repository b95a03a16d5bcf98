package app

import (
	"errors"
	"time"

	"github.com/kk-code-lab/rpane/internal/clipstore"
	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
	"github.com/kk-code-lab/rpane/internal/logging"
	statepkg "github.com/kk-code-lab/rpane/internal/state"
	inputui "github.com/kk-code-lab/rpane/internal/ui/input"
	renderui "github.com/kk-code-lab/rpane/internal/ui/render"
)

const maxNotices = 5

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeWarn
	noticeError
)

// notice is a dismissable message. Esc removes the newest.
type notice struct {
	Level noticeLevel
	Text  string
	At    time.Time
}

type promptState struct {
	kind statepkg.PromptKind
	text []rune
	// pending carries the clip content while a template name is typed.
	pending string
}

type confirmState struct {
	text string
	op   fs.Op
}

type overlayRow struct {
	label    string
	detail   string
	clipID   string
	template string // template id
	content  string
	target   location.Location
}

type overlayState struct {
	kind     statepkg.OverlayKind
	title    string
	rows     []overlayRow
	selected int
}

// uiState is everything on screen that is not navigation state.
type uiState struct {
	help     bool
	prompt   *promptState
	confirm  *confirmState
	overlay  *overlayState
	notices  []notice
	lastYank time.Time
}

func (app *Application) notify(level noticeLevel, text string) {
	app.ui.notices = append(app.ui.notices, notice{Level: level, Text: text, At: time.Now()})
	if over := len(app.ui.notices) - maxNotices; over > 0 {
		app.ui.notices = app.ui.notices[over:]
	}
}

// reportError turns a reducer or handler error into a notice. Notices from
// providers are shown; anything else is a fault and only logged.
func (app *Application) reportError(err error) {
	if err == nil {
		return
	}
	var n *statepkg.NoticeError
	if errors.As(err, &n) {
		app.notify(noticeError, n.Error())
		return
	}
	if errors.Is(err, statepkg.ErrNotFound) {
		app.log.Debug("stale reference", logging.Err(err))
		return
	}
	app.log.Error("action failed", logging.Err(err))
}

func (app *Application) dismissNotice() bool {
	if len(app.ui.notices) == 0 {
		return false
	}
	app.ui.notices = app.ui.notices[:len(app.ui.notices)-1]
	return true
}

func (app *Application) inputMode() inputui.Mode {
	switch {
	case app.ui.help:
		return inputui.ModeHelp
	case app.ui.confirm != nil:
		return inputui.ModeConfirm
	case app.ui.prompt != nil:
		return inputui.ModePrompt
	case app.ui.overlay != nil:
		return inputui.ModeOverlay
	default:
		return inputui.ModeNormal
	}
}

func (app *Application) syncInputView() {
	app.input.SetView(inputui.View{Mode: app.inputMode(), PageSize: app.renderer.PageSize()})
}

func promptLabel(kind statepkg.PromptKind) string {
	switch kind {
	case statepkg.PromptSearch:
		return "search:"
	case statepkg.PromptSearchEverywhere:
		return "search all drives:"
	case statepkg.PromptAddress:
		return "go to:"
	case statepkg.PromptMkdir:
		return "new folder:"
	case statepkg.PromptTemplateName:
		return "template name:"
	default:
		return ">"
	}
}

// frame assembles what the renderer draws.
func (app *Application) frame() renderui.Frame {
	panes, err := statepkg.PaneDisplays(app.session)
	if err != nil {
		app.log.Error("display state", logging.Err(err))
	}

	f := renderui.Frame{
		Panes:      panes,
		Help:       app.ui.help,
		ShowHidden: app.hidden.ShowHidden(),
		Clipboard:  app.clipboardAvail,
		Demo:       app.demo,
		LastYank:   app.ui.lastYank,
		Now:        time.Now(),
	}
	if p := app.ui.prompt; p != nil {
		f.Prompt = &renderui.Prompt{Label: promptLabel(p.kind), Text: string(p.text)}
	}
	if c := app.ui.confirm; c != nil {
		f.Confirm = c.text
	}
	if o := app.ui.overlay; o != nil {
		rows := make([]renderui.OverlayRow, len(o.rows))
		for i, r := range o.rows {
			rows[i] = renderui.OverlayRow{Label: r.label, Detail: r.detail}
		}
		ov := &renderui.Overlay{Title: o.title, Rows: rows, Selected: o.selected}
		switch o.kind {
		case statepkg.OverlayClipboard:
			ov.Empty = "clipboard history is empty"
			ov.Hint = "↵ copy · d delete · s save as template · Esc close"
		case statepkg.OverlayPlaces:
			ov.Empty = "no places found"
			ov.Hint = "↵ go · Esc close"
		case statepkg.OverlayProperties:
			ov.Hint = "↵ show in folder · Esc close"
		}
		f.Overlay = ov
	}
	for _, n := range app.ui.notices {
		f.Notices = append(f.Notices, renderui.Notice{Text: n.Text, Error: n.Level == noticeError})
	}
	return f
}

// clipRows lists history newest first, then templates.
func clipRows(entries []clipstore.Entry, templates []clipstore.Template) []overlayRow {
	rows := make([]overlayRow, 0, len(entries)+len(templates))
	for _, e := range entries {
		rows = append(rows, overlayRow{
			label:   e.CreatedAt.Local().Format("01-02 15:04"),
			detail:  e.Preview,
			clipID:  e.ID,
			content: e.Content,
		})
	}
	for _, t := range templates {
		rows = append(rows, overlayRow{
			label:    "template: " + t.Name,
			detail:   clipstore.Preview(t.Content),
			template: t.ID,
			content:  t.Content,
		})
	}
	return rows
}
