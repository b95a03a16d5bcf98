package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	textutil "github.com/kk-code-lab/rpane/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

const helpKeyColumn = 16

func buildHelpOverlayLines(f Frame) []string {
	hiddenDesc := "Show hidden files"
	if f.ShowHidden {
		hiddenDesc = "Hide hidden files"
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ PgUp/PgDn", desc: "Move selection"},
				{keys: "↵ or →", desc: "Open directory or file"},
				{keys: "← or Backspace", desc: "Parent directory"},
				{keys: "[ ] Alt+←/→", desc: "History back/forward"},
				{keys: "1-9", desc: "Jump to breadcrumb"},
				{keys: ": or Ctrl+L", desc: "Type a location"},
				{keys: "~", desc: "Go home"},
				{keys: "g", desc: "Places and drives"},
			},
		},
		{
			title: "Tabs & Panes",
			entries: []helpOverlayEntry{
				{keys: "Tab", desc: "Switch pane"},
				{keys: "Ctrl+T", desc: "New tab"},
				{keys: "Ctrl+W", desc: "Close tab"},
				{keys: "{ }", desc: "Previous/next tab"},
			},
		},
		{
			title: "Search",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Search below this folder"},
				{keys: "Ctrl+F", desc: "Search all drives"},
				{keys: "Esc", desc: "Close search results"},
			},
		},
		{
			title: "Files",
			entries: []helpOverlayEntry{
				{keys: "F5", desc: "Copy to other pane"},
				{keys: "F6", desc: "Move to other pane"},
				{keys: "F7", desc: "New folder"},
				{keys: "F8 or Del", desc: "Delete"},
				{keys: "i", desc: "Properties"},
				{keys: "y", desc: "Yank path to clipboard"},
				{keys: "Ctrl+P", desc: "Clipboard history"},
				{keys: ".", desc: hiddenDesc},
				{keys: "r", desc: "Refresh"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "x", desc: "Quit and cd here"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 40)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	pad := helpKeyColumn - textutil.DisplayWidth(key)
	if pad < 1 {
		pad = 1
	}
	return "  " + key + strings.Repeat(" ", pad) + desc
}

func (r *Renderer) drawHelpOverlay(f Frame, w, h int) {
	r.drawFullScreen(w, h, " Help ", buildHelpOverlayLines(f), -1, "? toggle · Esc/q close")
}

// drawFullScreen paints a titled page of lines; selected < 0 highlights nothing.
func (r *Renderer) drawFullScreen(w, h int, title string, lines []string, selected int, footer string) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	selStyle := baseStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	rows := h - 3
	offset := 0
	if selected >= 0 {
		offset = scrollFor(0, selected, len(lines), rows)
	}
	row := 2
	for i := offset; i < len(lines) && row < h-1; i++ {
		text := strings.TrimRight(lines[i], " ")
		text = r.truncateTextToWidth(text, w-4)
		style := baseStyle
		if i == selected {
			style = selStyle
			r.fillRow(0, row, w, style)
		}
		r.drawTextLine(2, row, w-4, text, style)
		row++
	}

	if footer != "" && h > 0 {
		footerText := r.truncateTextToWidth(footer, w)
		r.drawTextLine(0, h-1, w, footerText, headerStyle)
	}
}

func (r *Renderer) drawListOverlay(o *Overlay, w, h int) {
	lines := make([]string, 0, len(o.Rows))
	labelWidth := 0
	for _, row := range o.Rows {
		labelWidth = max(labelWidth, r.measureTextWidth(textutil.SanitizeTerminalText(row.Label)))
	}
	labelWidth = min(labelWidth, w/2)
	for _, row := range o.Rows {
		label := r.truncateTextToWidth(textutil.SanitizeTerminalText(row.Label), labelWidth)
		line := label + strings.Repeat(" ", labelWidth-r.measureTextWidth(label))
		if row.Detail != "" {
			detail := textutil.SanitizeTerminalText(textutil.ExpandTabs(row.Detail, textutil.DefaultTabWidth))
			line += "  " + detail
		}
		lines = append(lines, line)
	}
	selected := o.Selected
	if len(lines) == 0 {
		lines = []string{o.Empty}
		selected = -1
	}
	r.drawFullScreen(w, h, " "+o.Title+" ", lines, selected, o.Hint)
}
