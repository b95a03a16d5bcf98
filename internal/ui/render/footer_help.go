package render

import (
	"strings"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(f Frame) string {
	parts := buildFooterHelpSegments(f)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(f Frame) []string {
	segments := contextualHelpSegments(f)
	segments = append(segments, persistentHelpSegments(f)...)
	return segments
}

func contextualHelpSegments(f Frame) []string {
	switch {
	case f.Confirm != "":
		return []string{"y/↵: confirm", "any key: cancel"}
	case f.Prompt != nil:
		return []string{"type: edit", "↵: accept", "Esc: cancel", "Ctrl+U: clear"}
	case f.Overlay != nil:
		return []string{"↑↓: select", "↵: use", "d: delete", "Esc: close"}
	}

	if ds, ok := f.activePane(); ok && ds.Searching {
		return []string{
			"↑↓: select match",
			"↵: open",
			"Esc: clear search",
			"/: new search",
		}
	}
	return []string{
		"↑/↓/↵/←: navigate",
		"[]: history",
		"Tab: pane",
		"Ctrl+T/W: tab",
		"/: search",
		"F5-F8: files",
		"?: help",
	}
}

func persistentHelpSegments(f Frame) []string {
	if f.Prompt != nil || f.Confirm != "" || f.Overlay != nil {
		return nil
	}
	if ds, ok := f.activePane(); ok && ds.Searching {
		return nil
	}

	hiddenStatus := "show"
	if f.ShowHidden {
		hiddenStatus = "hide"
	}
	segments := []string{".: " + hiddenStatus + " hidden"}
	if f.Clipboard {
		segments = append(segments, "y: yank path")
	}
	return segments
}
