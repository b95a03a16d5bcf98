package render

// Screen rows: header, tab bar, breadcrumb, list..., status, footer.
const (
	headerRow      = 0
	tabBarRow      = 1
	crumbRow       = 2
	listStartRow   = 3
	reservedBottom = 2
	minPaneWidth   = 24
	separatorWidth = 1
)

type paneColumn struct {
	index int
	start int
	width int
}

// computeColumns splits w among the panes. When the terminal is too narrow
// for all of them only the active pane is shown.
func computeColumns(w, panes, active int) []paneColumn {
	if panes <= 0 || w <= 0 {
		return nil
	}
	if active < 0 || active >= panes {
		active = 0
	}

	need := panes*minPaneWidth + (panes-1)*separatorWidth
	if panes == 1 || w < need {
		return []paneColumn{{index: active, start: 0, width: w}}
	}

	usable := w - (panes-1)*separatorWidth
	base := usable / panes
	extra := usable % panes

	cols := make([]paneColumn, panes)
	x := 0
	for i := range cols {
		width := base
		if i < extra {
			width++
		}
		cols[i] = paneColumn{index: i, start: x, width: width}
		x += width + separatorWidth
	}
	return cols
}

// listRows is how many list entries fit in a pane for screen height h.
func listRows(h int) int {
	rows := h - listStartRow - reservedBottom
	if rows < 0 {
		return 0
	}
	return rows
}

// scrollFor keeps selected inside a window of rows, moving prev as little
// as possible.
func scrollFor(prev, selected, count, rows int) int {
	if rows <= 0 || count <= rows {
		return 0
	}
	offset := prev
	if selected < offset {
		offset = selected
	}
	if selected >= offset+rows {
		offset = selected - rows + 1
	}
	if limit := count - rows; offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
