package render

import (
	"strings"
	"testing"
)

func TestBuildHelpOverlayLinesIncludesSections(t *testing.T) {
	lines := buildHelpOverlayLines(Frame{})

	assertContains := func(substr string) {
		found := false
		for _, line := range lines {
			if strings.Contains(line, substr) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected lines to contain %q, got %v", substr, lines)
		}
	}

	assertContains("Navigation")
	assertContains("Tabs & Panes")
	assertContains("Search")
	assertContains("Files")
	assertContains("Exit")
	assertContains("Show hidden files")
	assertContains("Search all drives")
	assertContains("Copy to other pane")
}

func TestBuildHelpOverlayLinesReflectsHiddenToggle(t *testing.T) {
	lines := buildHelpOverlayLines(Frame{ShowHidden: true})

	joined := strings.Join(lines, " ")
	if !strings.Contains(joined, "Hide hidden files") {
		t.Fatalf("expected help to show hide instruction when hidden files visible, got %v", lines)
	}
}

func TestHelpEntriesAlignDescriptions(t *testing.T) {
	a := formatHelpOverlayEntry(helpOverlayEntry{keys: "q", desc: "Quit"})
	b := formatHelpOverlayEntry(helpOverlayEntry{keys: "Ctrl+C", desc: "Quit immediately"})
	if strings.Index(a, "Quit") != strings.Index(b, "Quit") {
		t.Fatalf("descriptions not aligned:\n%q\n%q", a, b)
	}
}
