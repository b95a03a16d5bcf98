package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kk-code-lab/rpane/internal/clipstore"
	"github.com/kk-code-lab/rpane/internal/fs"
	"github.com/kk-code-lab/rpane/internal/location"
	"github.com/kk-code-lab/rpane/internal/logging"
	statepkg "github.com/kk-code-lab/rpane/internal/state"
	"go.uber.org/zap"
)

var (
	errNoSelection      = errors.New("nothing selected")
	errNoOtherPane      = errors.New("no other pane")
	errSameFolder       = errors.New("source and destination are the same")
	errInvalidName      = errors.New("folder name must not be empty or contain '/'")
	errHistoryDisabled  = errors.New("clipboard history unavailable")
	errClipboardMissing = errors.New("system clipboard unavailable")
)

// handleAppAction handles the actions that touch UI state or the host
// rather than the session. It returns false for actions the reducer owns.
func (app *Application) handleAppAction(action statepkg.Action) bool {
	switch a := action.(type) {

	// ===== APPLICATION =====

	case statepkg.HelpToggleAction:
		app.ui.help = !app.ui.help
	case statepkg.DismissAction:
		app.handleDismiss()
	case statepkg.YankPathAction:
		app.handleYank()
	case statepkg.ToggleHiddenAction:
		app.handleToggleHidden()
	case statepkg.OpenFileAction:
		app.handleOpenFile(a.Location)
	case statepkg.RefreshAction:
		// A file rewritten in place leaves the directory mtime alone, so
		// the cached listing cannot be trusted here.
		if _, tab, err := app.session.ActiveTab(); err == nil {
			app.cache.Invalidate(tab.Location())
		}
		return false
	case statepkg.FileOperationResultAction:
		if a.Err == nil {
			app.notify(noticeInfo, operationSummary(a.Op))
		}
		// The reducer still refreshes the affected listings.
		return false

	// ===== PROMPTS =====

	case statepkg.PromptStartAction:
		app.startPrompt(a.Kind, "")
	case statepkg.PromptCharAction:
		if p := app.ui.prompt; p != nil {
			p.text = append(p.text, a.Char)
		}
	case statepkg.PromptBackspaceAction:
		if p := app.ui.prompt; p != nil && len(p.text) > 0 {
			p.text = p.text[:len(p.text)-1]
		}
	case statepkg.PromptClearAction:
		if p := app.ui.prompt; p != nil {
			p.text = p.text[:0]
		}
	case statepkg.PromptCancelAction:
		app.ui.prompt = nil
	case statepkg.PromptSubmitAction:
		app.submitPrompt()

	// ===== OVERLAYS =====

	case statepkg.OverlayOpenAction:
		app.openOverlay(a.Kind)
	case statepkg.OverlayMoveAction:
		if o := app.ui.overlay; o != nil && len(o.rows) > 0 {
			o.selected = min(max(o.selected+a.Delta, 0), len(o.rows)-1)
		}
	case statepkg.OverlaySelectAction:
		app.selectOverlayRow()
	case statepkg.OverlayDeleteAction:
		app.deleteOverlayRow()
	case statepkg.OverlaySaveTemplateAction:
		app.saveTemplateFromOverlay()

	// ===== FILE OPERATION REQUESTS =====

	case statepkg.CopyToOtherPaneAction:
		app.requestTransfer(fs.OpCopy)
	case statepkg.MoveToOtherPaneAction:
		app.requestTransfer(fs.OpMove)
	case statepkg.DeleteSelectedAction:
		app.requestDelete()
	case statepkg.ConfirmAction:
		app.answerConfirm(a.Yes)

	default:
		return false
	}
	return true
}

func (app *Application) handleDismiss() {
	switch {
	case app.ui.overlay != nil:
		app.ui.overlay = nil
	case app.dismissNotice():
	default:
		app.reduce(statepkg.ClearSearchAction{})
	}
}

// selection returns the highlighted entry of the active tab: a listing item
// or a search hit.
func (app *Application) selection() (fs.Item, error) {
	_, tab, err := app.session.ActiveTab()
	if err != nil {
		return fs.Item{}, err
	}
	item, _, ok := tab.SelectedItem()
	if !ok {
		return fs.Item{}, errNoSelection
	}
	return item, nil
}

func (app *Application) activeLocation() location.Location {
	_, tab, err := app.session.ActiveTab()
	if err != nil {
		return ""
	}
	return tab.Location()
}

func (app *Application) handleYank() {
	target := app.activeLocation()
	if item, err := app.selection(); err == nil {
		target = item.FullPath
	}
	if target.IsZero() {
		return
	}
	if err := app.copyToClipboard(target.Native(goos), "path"); err != nil {
		app.notify(noticeError, "yank: "+err.Error())
		return
	}
	app.ui.lastYank = time.Now()
}

// copyToClipboard writes text to the system clipboard and records it in
// the history.
func (app *Application) copyToClipboard(text string, tags ...string) error {
	if !app.clipboardAvail || app.copyText == nil {
		return errClipboardMissing
	}
	if err := app.copyText(text); err != nil {
		return err
	}
	if app.clips != nil && len(tags) > 0 {
		if _, err := app.clips.Add(app.ctx(), text, tags...); err != nil {
			app.log.Warn("clipboard history write failed", logging.Err(err))
		}
	}
	return nil
}

func (app *Application) handleToggleHidden() {
	show := !app.hidden.ShowHidden()
	app.hidden.SetShowHidden(show)
	app.log.Debug("hidden files toggled", zap.Bool("show", show))
	for _, loc := range app.session.VisibleLocations() {
		app.reduce(statepkg.RefreshLocationAction{Location: loc})
	}
}

func (app *Application) handleOpenFile(loc location.Location) {
	native := loc.Native(goos)
	if app.demo {
		app.notify(noticeInfo, "demo: would open "+loc.Base())
		return
	}
	if len(app.openerCmd) == 0 || app.startCommand == nil {
		app.notify(noticeWarn, "no program to open files (set "+openerEnv+")")
		return
	}
	args := append(append([]string{}, app.openerCmd...), native)
	if err := app.startCommand(args); err != nil {
		app.notify(noticeError, fmt.Sprintf("open %s: %v", loc.Base(), err))
		return
	}
	app.log.Info("opened file", logging.Location("location", loc))
}

func operationSummary(op fs.Op) string {
	switch op.Kind {
	case fs.OpCopy:
		return fmt.Sprintf("copied %s to %s", op.Source.Base(), op.Target.String())
	case fs.OpMove:
		return fmt.Sprintf("moved %s to %s", op.Source.Base(), op.Target.String())
	case fs.OpDelete:
		return "deleted " + op.Source.Base()
	case fs.OpCreateDirectory:
		return "created " + op.Target.Base()
	default:
		return op.Kind.String() + " done"
	}
}

// ===== PROMPTS =====

func (app *Application) startPrompt(kind statepkg.PromptKind, pending string) {
	p := &promptState{kind: kind, pending: pending}
	if kind == statepkg.PromptSearch {
		if _, tab, err := app.session.ActiveTab(); err == nil && tab.Search != nil {
			p.text = []rune(tab.Search.Query)
		}
	}
	app.ui.overlay = nil
	app.ui.prompt = p
}

func (app *Application) submitPrompt() {
	p := app.ui.prompt
	if p == nil {
		return
	}
	app.ui.prompt = nil
	text := strings.TrimSpace(string(p.text))

	switch p.kind {
	case statepkg.PromptSearch:
		app.reduce(statepkg.SearchAction{Query: text})
	case statepkg.PromptSearchEverywhere:
		app.reduce(statepkg.SearchAction{Query: text, Everywhere: true})
	case statepkg.PromptAddress:
		if text == "" {
			return
		}
		loc, err := app.resolveAddress(text)
		if err != nil {
			app.notify(noticeError, err.Error())
			return
		}
		app.reduce(statepkg.NavigateAction{Location: loc})
	case statepkg.PromptMkdir:
		if text == "" || strings.ContainsAny(text, `/\`) {
			app.notify(noticeError, errInvalidName.Error())
			return
		}
		target := app.activeLocation().Join(text)
		app.reduce(statepkg.FileOperationAction{Op: fs.Op{Kind: fs.OpCreateDirectory, Target: target}})
	case statepkg.PromptTemplateName:
		app.saveTemplate(text, p.pending)
	}
}

// resolveAddress turns typed input into a location. "~" expands to home;
// relative input is joined to the active location.
func (app *Application) resolveAddress(raw string) (location.Location, error) {
	if raw == "~" || strings.HasPrefix(raw, "~/") || strings.HasPrefix(raw, `~\`) {
		home, err := app.provider.Home()
		if err != nil {
			return "", fmt.Errorf("home: %w", err)
		}
		return home.Join(raw[1:]), nil
	}
	if isAbsoluteAddress(raw) {
		return location.Normalize(raw), nil
	}
	return app.activeLocation().Join(raw), nil
}

func isAbsoluteAddress(raw string) bool {
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, `\`) {
		return true
	}
	first, _, _ := strings.Cut(strings.ReplaceAll(raw, `\`, "/"), "/")
	return len(first) >= 2 && strings.HasSuffix(first, ":")
}

// ===== OVERLAYS =====

func (app *Application) openOverlay(kind statepkg.OverlayKind) {
	o := &overlayState{kind: kind}
	switch kind {
	case statepkg.OverlayClipboard:
		if app.clips == nil {
			app.notify(noticeWarn, errHistoryDisabled.Error())
			return
		}
		if err := app.loadClipRows(o); err != nil {
			app.notify(noticeError, "clipboard history: "+err.Error())
			return
		}
	case statepkg.OverlayPlaces:
		o.title = "Places"
		o.rows = app.placeRows()
	case statepkg.OverlayProperties:
		item, err := app.selection()
		if err != nil {
			app.notify(noticeWarn, err.Error())
			return
		}
		fresh, err := app.provider.Stat(app.ctx(), item.FullPath)
		if err != nil {
			app.notify(noticeError, "properties: "+err.Error())
			return
		}
		o.title = "Properties: " + fresh.Name
		o.rows = propertyRows(fresh)
	default:
		return
	}
	app.ui.prompt = nil
	app.ui.overlay = o
}

func (app *Application) loadClipRows(o *overlayState) error {
	ctx := app.ctx()
	entries, err := app.clips.List(ctx, clipstore.Filter{Limit: clipstore.DefaultMaxItems})
	if err != nil {
		return err
	}
	templates, err := app.clips.Templates(ctx)
	if err != nil {
		return err
	}
	o.rows = clipRows(entries, templates)
	o.title = "Clipboard history"
	if counts, err := app.clips.TagCounts(ctx); err == nil && len(counts) > 0 {
		parts := make([]string, 0, len(counts))
		for _, c := range counts {
			parts = append(parts, fmt.Sprintf("%s %d", c.Name, c.Count))
		}
		o.title += " (" + strings.Join(parts, ", ") + ")"
	}
	if len(o.rows) > 0 {
		o.selected = min(o.selected, len(o.rows)-1)
	} else {
		o.selected = 0
	}
	return nil
}

func (app *Application) placeRows() []overlayRow {
	var rows []overlayRow
	for _, p := range app.provider.SpecialFolders() {
		rows = append(rows, overlayRow{label: p.Name, detail: p.Location.Native(goos), target: p.Location})
	}
	drives, err := app.provider.Drives(app.ctx())
	if err != nil {
		app.log.Warn("drive enumeration failed", logging.Err(err))
	}
	for _, d := range drives {
		rows = append(rows, overlayRow{label: d.Name, detail: d.Location.Native(goos), target: d.Location})
	}
	return rows
}

func (app *Application) selectedOverlayRow() (overlayRow, bool) {
	o := app.ui.overlay
	if o == nil || o.selected < 0 || o.selected >= len(o.rows) {
		return overlayRow{}, false
	}
	return o.rows[o.selected], true
}

func (app *Application) selectOverlayRow() {
	row, ok := app.selectedOverlayRow()
	if !ok {
		return
	}
	switch app.ui.overlay.kind {
	case statepkg.OverlayClipboard:
		if err := app.copyToClipboard(row.content); err != nil {
			app.notify(noticeError, "copy: "+err.Error())
			return
		}
		app.ui.lastYank = time.Now()
		app.ui.overlay = nil
		app.notify(noticeInfo, "copied to clipboard")
	case statepkg.OverlayPlaces:
		app.ui.overlay = nil
		app.reduce(statepkg.NavigateAction{Location: row.target})
	case statepkg.OverlayProperties:
		app.ui.overlay = nil
		app.showInFolder(row.target)
	}
}

// showInFolder opens the folder containing target with target selected.
// Roots have no folder and are opened directly.
func (app *Application) showInFolder(target location.Location) {
	parent, ok := target.Parent()
	if !ok {
		app.reduce(statepkg.NavigateAction{Location: target})
		return
	}
	app.reduce(statepkg.NavigateAction{Location: parent, Focus: target.Base()})
}

func propertyRows(it fs.Item) []overlayRow {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	rows := []overlayRow{
		{label: "Name", detail: it.Name},
		{label: "Type", detail: it.Kind.String()},
		{label: "Location", detail: it.FullPath.Native(goos)},
	}
	if it.HasSize {
		rows = append(rows, overlayRow{label: "Size", detail: fmt.Sprintf("%s (%s bytes)",
			humanize.IBytes(uint64(max(it.Size, 0))), humanize.Comma(it.Size))})
	}
	if !it.Modified.IsZero() {
		rows = append(rows, overlayRow{label: "Modified", detail: it.Modified.Local().Format("2006-01-02 15:04:05")})
	}
	rows = append(rows, overlayRow{label: "Hidden", detail: yesNo(it.Hidden)})
	if it.Symlink {
		rows = append(rows, overlayRow{label: "Symlink", detail: "yes"})
	}
	for i := range rows {
		rows[i].target = it.FullPath
	}
	return rows
}

func (app *Application) deleteOverlayRow() {
	row, ok := app.selectedOverlayRow()
	if !ok || app.ui.overlay.kind != statepkg.OverlayClipboard || app.clips == nil {
		return
	}
	var err error
	if row.template != "" {
		err = app.clips.DeleteTemplate(app.ctx(), row.template)
	} else {
		err = app.clips.Delete(app.ctx(), row.clipID)
	}
	if err != nil {
		app.notify(noticeError, "delete: "+err.Error())
		return
	}
	if err := app.loadClipRows(app.ui.overlay); err != nil {
		app.notify(noticeError, "clipboard history: "+err.Error())
	}
}

func (app *Application) saveTemplateFromOverlay() {
	row, ok := app.selectedOverlayRow()
	if !ok || app.ui.overlay.kind != statepkg.OverlayClipboard {
		return
	}
	app.startPrompt(statepkg.PromptTemplateName, row.content)
}

func (app *Application) saveTemplate(name, content string) {
	if name == "" || app.clips == nil {
		return
	}
	if _, err := app.clips.AddTemplate(app.ctx(), name, content); err != nil {
		app.notify(noticeError, "save template: "+err.Error())
		return
	}
	app.notify(noticeInfo, "saved template "+name)
}

// ===== FILE OPERATION REQUESTS =====

func (app *Application) requestTransfer(kind fs.OpKind) {
	item, err := app.selection()
	if err != nil {
		app.notify(noticeWarn, kind.String()+": "+err.Error())
		return
	}
	other, ok := app.session.OtherPane()
	if !ok {
		app.notify(noticeWarn, kind.String()+": "+errNoOtherPane.Error())
		return
	}
	dest, err := other.ActiveTab()
	if err != nil {
		app.reportError(err)
		return
	}
	target := dest.Location().Join(item.Name)
	if target == item.FullPath {
		app.notify(noticeWarn, kind.String()+": "+errSameFolder.Error())
		return
	}
	app.reduce(statepkg.FileOperationAction{Op: fs.Op{Kind: kind, Source: item.FullPath, Target: target}})
}

func (app *Application) requestDelete() {
	item, err := app.selection()
	if err != nil {
		app.notify(noticeWarn, "delete: "+err.Error())
		return
	}
	app.ui.confirm = &confirmState{
		text: fmt.Sprintf("Delete %s? (y/n)", item.Name),
		op:   fs.Op{Kind: fs.OpDelete, Source: item.FullPath},
	}
}

func (app *Application) answerConfirm(yes bool) {
	c := app.ui.confirm
	app.ui.confirm = nil
	if c == nil || !yes {
		return
	}
	app.reduce(statepkg.FileOperationAction{Op: c.op})
}
