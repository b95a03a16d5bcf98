package render

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpane/internal/fs"
	statepkg "github.com/kk-code-lab/rpane/internal/state"
	textutil "github.com/kk-code-lab/rpane/internal/textutil"
)

const (
	crumbSeparator = " › "
	flashDuration  = 100 * time.Millisecond
)

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	widths map[rune]int // cell widths, filled on first use

	// scroll offsets keyed by pane and tab so switching tabs keeps position
	scroll map[string]int
	zones  []hitZone
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		widths: make(map[rune]int),
		scroll: make(map[string]int),
	}
}

// PageSize is the number of list rows visible in a pane.
func (r *Renderer) PageSize() int {
	_, h := r.screen.Size()
	return listRows(h)
}

// Render draws the entire UI for one frame.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	r.zones = r.zones[:0]
	w, h := r.screen.Size()

	switch {
	case f.Help:
		r.drawHelpOverlay(f, w, h)
	case f.Overlay != nil:
		r.drawListOverlay(f.Overlay, w, h)
	default:
		r.drawHeader(f, w)
		active := 0
		for i, p := range f.Panes {
			if p.PaneActive {
				active = i
			}
		}
		cols := computeColumns(w, len(f.Panes), active)
		for i, col := range cols {
			if i > 0 {
				r.drawSeparator(col.start-separatorWidth, h)
			}
			r.drawPane(f, f.Panes[col.index], col, h)
		}
		r.drawStatusLine(f, w, h)
		r.drawFooter(f, w, h)
	}

	r.screen.Show()
}

// drawHeader renders the top bar with the app name and view flags.
func (r *Renderer) drawHeader(f Frame, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	x := r.drawTextLine(0, headerRow, w, "rpane", headerStyle.Bold(true))

	if f.Demo && x < w {
		x = r.drawStyledStringClipped(x, headerRow, w, " ", headerStyle)
		demoStyle := headerStyle.Background(r.theme.DemoBg).Foreground(r.theme.DemoFg)
		x = r.drawStyledStringClipped(x, headerRow, w, " DEMO ", demoStyle)
	}
	r.fillRow(x, headerRow, w, headerStyle)

	flag := "hidden files off"
	if f.ShowHidden {
		flag = "hidden files on"
	}
	flagWidth := r.measureTextWidth(flag)
	if start := w - flagWidth - 1; start > x+1 {
		r.drawTextLine(start, headerRow, flagWidth, flag, headerStyle.Foreground(r.theme.MetaFg))
	}
}

func (r *Renderer) drawSeparator(x, h int) {
	style := tcell.StyleDefault.Foreground(r.theme.SeparatorFg)
	for y := tabBarRow; y < h-reservedBottom; y++ {
		r.screen.SetContent(x, y, '│', nil, style)
	}
}

func (r *Renderer) drawPane(f Frame, ds statepkg.DisplayState, col paneColumn, h int) {
	r.drawTabBar(ds, col)
	if ds.Searching {
		r.drawSearchHeader(ds, col)
	} else {
		r.drawBreadcrumbs(ds, col)
	}

	rows := listRows(h)
	if ds.Searching {
		r.drawSearchResults(ds, col, rows)
	} else {
		r.drawFileList(f, ds, col, rows)
	}
}

// drawTabBar renders one label per tab; the active tab is highlighted.
func (r *Renderer) drawTabBar(ds statepkg.DisplayState, col paneColumn) {
	maxX := col.start + col.width
	base := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.TabInactiveFg)
	r.fillRow(col.start, tabBarRow, maxX, base)

	labelWidth := col.width
	if n := len(ds.Tabs); n > 1 {
		labelWidth = max(col.width/n, 6)
	}

	x := col.start
	for _, tab := range ds.Tabs {
		if x >= maxX {
			break
		}
		style := base
		if tab.Active {
			style = base.Foreground(r.theme.TabActiveFg)
			if ds.PaneActive {
				style = style.Background(r.theme.TabActiveBg)
			} else {
				style = style.Background(r.theme.InactiveSelBg)
			}
		}
		title := textutil.SanitizeTerminalText(tab.Title)
		label := r.truncateTextToWidth(" "+title+" ", min(labelWidth, maxX-x))
		start := x
		x = r.drawStyledStringClipped(x, tabBarRow, maxX, label, style)
		r.addZone(start, x, tabBarRow, Hit{Kind: HitTab, PaneID: ds.PaneID, TabID: tab.ID})
		if x < maxX {
			x = r.drawStyledRune(x, tabBarRow, maxX, ' ', base)
		}
	}
}

// drawBreadcrumbs renders the location as labelled segments. When the
// whole trail fits each segment is clickable; otherwise it is trimmed from
// the left. The last segment is bold.
func (r *Renderer) drawBreadcrumbs(ds statepkg.DisplayState, col paneColumn) {
	maxX := col.start + col.width
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.CrumbFg)
	sepStyle := style.Foreground(r.theme.MetaFg)
	r.fillRow(col.start, crumbRow, maxX, style)

	crumbs := ds.Breadcrumbs
	if len(crumbs) == 0 {
		return
	}
	lastIdx := len(crumbs) - 1
	labels := make([]string, len(crumbs))
	for i, c := range crumbs {
		labels[i] = textutil.SanitizeTerminalText(c.Label)
	}

	if r.measureTextWidth(strings.Join(labels, crumbSeparator)) <= col.width {
		x := col.start
		for i, label := range labels {
			if i > 0 {
				x = r.drawTextLine(x, crumbRow, maxX-x, crumbSeparator, sepStyle)
			}
			segStyle := style
			if i == lastIdx {
				segStyle = style.Bold(true)
			}
			start := x
			x = r.drawTextLine(x, crumbRow, maxX-x, label, segStyle)
			r.addZone(start, x, crumbRow, Hit{Kind: HitCrumb, PaneID: ds.PaneID, TabID: ds.TabID, Index: i})
		}
		return
	}

	x := col.start
	last := labels[lastIdx]
	if lastIdx > 0 {
		prefixWidth := col.width - r.measureTextWidth(crumbSeparator) - r.measureTextWidth(last)
		prefix := r.fitBreadcrumb(strings.Join(labels[:lastIdx], crumbSeparator), max(prefixWidth, 1))
		x = r.drawTextLine(x, crumbRow, maxX-x, prefix, style)
		if x < maxX {
			x = r.drawTextLine(x, crumbRow, maxX-x, crumbSeparator, sepStyle)
		}
	}
	if x < maxX {
		r.drawTextLine(x, crumbRow, maxX-x, r.fitBreadcrumb(last, maxX-x), style.Bold(true))
	}
}

// fitBreadcrumb trims the breadcrumb path to fit within the available width
func (r *Renderer) fitBreadcrumb(path string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(path)
	totalWidth := 0
	for _, ru := range runes {
		totalWidth += max(r.cachedRuneWidth(ru), 0)
		if totalWidth > width {
			break
		}
	}
	if totalWidth <= width {
		return path
	}

	ellipsis := "…"
	ellipsisWidth := r.cachedRuneWidth('…')
	if ellipsisWidth < 0 {
		ellipsisWidth = 1
	}
	if width <= ellipsisWidth {
		return ellipsis
	}

	available := width - ellipsisWidth

	// Trim from the left, keep end of the path (most useful part)
	start := len(runes)
	currentWidth := 0
	for i := len(runes) - 1; i >= 0; i-- {
		ruWidth := max(r.cachedRuneWidth(runes[i]), 0)
		if currentWidth+ruWidth > available {
			break
		}
		start = i
		currentWidth += ruWidth
	}

	return ellipsis + string(runes[start:])
}

func (r *Renderer) drawSearchHeader(ds statepkg.DisplayState, col paneColumn) {
	maxX := col.start + col.width
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fillRow(col.start, crumbRow, maxX, style)

	x := r.drawStyledStringClipped(col.start, crumbRow, maxX, "search: ", style.Foreground(r.theme.MetaFg))
	x = r.drawStyledStringClipped(x, crumbRow, maxX, textutil.SanitizeTerminalText(ds.Query), style.Bold(true))

	statusStyle := style.Foreground(r.theme.MetaFg)
	if ds.SearchStatus == statepkg.SearchFailed {
		statusStyle = style.Foreground(r.theme.ErrorFg)
	}
	status := textutil.SanitizeTerminalText("  " + formatSearchStatus(ds))
	r.drawStyledStringClipped(x, crumbRow, maxX, r.truncateTextToWidth(status, maxX-x), statusStyle)
}

func (r *Renderer) rowStyle(it fs.Item, selected, paneActive bool) tcell.Style {
	base := tcell.StyleDefault.Background(r.theme.Background)
	if selected {
		if paneActive {
			return base.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		}
		return base.Background(r.theme.InactiveSelBg).Foreground(r.theme.SelectionFg)
	}
	style := base.Foreground(r.theme.FileFg)
	switch {
	case it.Kind == fs.KindDrive:
		style = base.Foreground(r.theme.DriveFg)
	case it.Symlink:
		style = base.Foreground(r.theme.SymlinkFg)
	case it.IsDir():
		style = base.Foreground(r.theme.DirectoryFg)
	}
	if it.Hidden {
		style = style.Foreground(r.theme.HiddenFg)
	}
	return style
}

func itemIcon(it fs.Item) string {
	switch {
	case it.Symlink:
		return "@"
	case it.Kind == fs.KindDrive:
		return "#"
	case it.IsDir():
		return "/"
	default:
		return " "
	}
}

func (r *Renderer) scrollOffset(ds statepkg.DisplayState, count, rows int) int {
	key := ds.PaneID + "/" + ds.TabID
	if ds.Searching {
		key += "/search"
	}
	offset := scrollFor(r.scroll[key], ds.Selected, count, rows)
	r.scroll[key] = offset
	return offset
}

// drawFileList renders the directory listing with size and modified columns.
func (r *Renderer) drawFileList(f Frame, ds statepkg.DisplayState, col paneColumn, rows int) {
	maxX := col.start + col.width

	if len(ds.Items) == 0 {
		msg, style := "(empty)", tcell.StyleDefault.Foreground(r.theme.PlaceholderFg)
		switch {
		case ds.Loading:
			msg = "loading…"
		case ds.LoadErr != nil:
			msg, style = ds.LoadErr.Error(), tcell.StyleDefault.Foreground(r.theme.ErrorFg)
		}
		msg = r.truncateTextToWidth(textutil.SanitizeTerminalText(msg), col.width-1)
		r.drawTextLine(col.start+1, listStartRow, col.width-1, msg, style)
		return
	}

	now := f.now()
	showMeta := col.width >= 48
	offset := r.scrollOffset(ds, len(ds.Items), rows)
	for i := 0; i < rows && offset+i < len(ds.Items); i++ {
		idx := offset + i
		it := ds.Items[idx]
		y := listStartRow + i
		style := r.rowStyle(it, idx == ds.Selected, ds.PaneActive)
		r.fillRow(col.start, y, maxX, style)
		r.addZone(col.start, maxX, y, Hit{Kind: HitRow, PaneID: ds.PaneID, TabID: ds.TabID, Index: idx})

		meta := ""
		if showMeta {
			meta = formatItemSize(it)
			if mod := formatModified(it.Modified, now); mod != "" {
				meta += "  " + mod
			}
		}
		metaWidth := r.measureTextWidth(meta)

		prefix := " " + itemIcon(it) + " "
		nameWidth := col.width - r.measureTextWidth(prefix) - metaWidth - 2
		name := r.truncateTextToWidth(textutil.SanitizeTerminalText(it.Name), max(nameWidth, 0))
		r.drawTextLine(col.start, y, col.width, prefix+name, style)

		if meta != "" && nameWidth > 0 {
			metaStyle := style
			if idx != ds.Selected {
				metaStyle = style.Foreground(r.theme.MetaFg)
			}
			r.drawTextLine(maxX-metaWidth-1, y, metaWidth, meta, metaStyle)
		}
	}
}

// drawSearchResults renders hits as name plus containing directory, with
// the query highlighted in the name.
func (r *Renderer) drawSearchResults(ds statepkg.DisplayState, col paneColumn, rows int) {
	maxX := col.start + col.width

	if len(ds.Results) == 0 {
		msg := "no matches"
		if ds.SearchStatus == statepkg.SearchPending {
			msg = "searching…"
		} else if ds.SearchStatus == statepkg.SearchFailed {
			msg = ""
		}
		if msg != "" {
			r.drawTextLine(col.start+1, listStartRow, col.width-1, msg, tcell.StyleDefault.Foreground(r.theme.PlaceholderFg))
		}
		return
	}

	offset := r.scrollOffset(ds, len(ds.Results), rows)
	for i := 0; i < rows && offset+i < len(ds.Results); i++ {
		idx := offset + i
		hit := ds.Results[idx]
		y := listStartRow + i
		selected := idx == ds.Selected
		style := r.rowStyle(hit.Item, selected, ds.PaneActive)
		r.fillRow(col.start, y, maxX, style)
		r.addZone(col.start, maxX, y, Hit{Kind: HitRow, PaneID: ds.PaneID, TabID: ds.TabID, Index: idx})

		x := r.drawStyledStringClipped(col.start, y, maxX, " "+itemIcon(hit.Item)+" ", style)
		name := textutil.SanitizeTerminalText(hit.Item.Name)
		matchStyle := style.Foreground(r.theme.MatchFg).Bold(true)
		if selected {
			matchStyle = style.Bold(true)
		}
		x, _ = r.drawHighlightedText(x, y, maxX, name, matchSpans(name, ds.Query), 0, style, matchStyle)

		dir := textutil.SanitizeTerminalText(hit.Location.String())
		if x+2 < maxX {
			dirStyle := style
			if !selected {
				dirStyle = style.Foreground(r.theme.MetaFg)
			}
			r.drawTextLine(x+2, y, maxX-x-2, r.fitBreadcrumb(dir, maxX-x-2), dirStyle)
		}
	}
}

// drawStatusLine shows, in priority order, a confirmation, the prompt, the
// newest notice, or the selected item's path.
func (r *Renderer) drawStatusLine(f Frame, w, h int) {
	y := h - 2
	if y <= listStartRow {
		return
	}
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	switch {
	case f.Confirm != "":
		style := normalStyle.Background(r.theme.ConfirmBg).Foreground(r.theme.ConfirmFg)
		r.fillRow(0, y, w, style)
		r.drawTextLine(0, y, w, r.truncateTextToWidth(textutil.SanitizeTerminalText(" "+f.Confirm), w), style)

	case f.Prompt != nil:
		r.fillRow(0, y, w, normalStyle)
		x := r.drawStyledStringClipped(0, y, w, f.Prompt.Label+" ", normalStyle.Foreground(r.theme.MetaFg))
		text := textutil.SanitizeTerminalText(f.Prompt.Text)
		if tw := r.measureTextWidth(text); tw > w-x-1 {
			text = r.fitBreadcrumb(text, w-x-1)
		}
		x = r.drawStyledStringClipped(x, y, w, text, normalStyle)
		cursorStyle := normalStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		r.drawStyledRune(x, y, w, ' ', cursorStyle)

	case len(f.Notices) > 0:
		n := f.Notices[len(f.Notices)-1]
		style := normalStyle
		if n.Error {
			style = normalStyle.Background(r.theme.NoticeBg).Foreground(r.theme.NoticeFg)
		}
		text := " " + n.Text
		if more := len(f.Notices) - 1; more > 0 {
			text += "  (+" + pluralCount(more, "notice") + ")"
		}
		r.fillRow(0, y, w, style)
		r.drawTextLine(0, y, w, r.truncateTextToWidth(textutil.SanitizeTerminalText(text), w), style)

	default:
		style := normalStyle
		if !f.LastYank.IsZero() && f.now().Sub(f.LastYank) < flashDuration {
			style = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
		}
		r.fillRow(0, y, w, style)
		ds, ok := f.activePane()
		if !ok {
			return
		}
		left, right := statusTexts(ds)
		rightWidth := r.measureTextWidth(right)
		left = r.fitBreadcrumb(textutil.SanitizeTerminalText(left), max(w-rightWidth-2, 0))
		r.drawTextLine(0, y, w, left, style)
		if rightWidth+1 < w {
			r.drawTextLine(w-rightWidth-1, y, rightWidth, right, style.Foreground(r.theme.MetaFg))
		}
	}
}

func statusTexts(ds statepkg.DisplayState) (string, string) {
	if ds.Searching {
		if ds.Selected >= 0 && ds.Selected < len(ds.Results) {
			hit := ds.Results[ds.Selected]
			return hit.Location.Join(hit.Item.Name).String(), formatSearchStatus(ds)
		}
		return ds.Location.String(), formatSearchStatus(ds)
	}
	path := ds.Location.String()
	if ds.Selected >= 0 && ds.Selected < len(ds.Items) {
		path = ds.Items[ds.Selected].FullPath.String()
	}
	return path, formatListingStatus(ds)
}

func (r *Renderer) drawFooter(f Frame, w, h int) {
	if h < 1 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fillRow(0, h-1, w, style)
	helpText := textutil.SanitizeTerminalText(buildFooterHelpText(f))
	r.drawTextLine(0, h-1, w, r.truncateTextToWidth(helpText, w), style)
}
