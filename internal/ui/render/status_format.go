package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kk-code-lab/rpane/internal/fs"
	statepkg "github.com/kk-code-lab/rpane/internal/state"
)

const recentWindow = 7 * 24 * time.Hour

func formatItemSize(it fs.Item) string {
	switch {
	case it.Kind == fs.KindDrive:
		return "<drive>"
	case it.IsDir():
		return "<dir>"
	case !it.HasSize:
		return ""
	default:
		return humanize.IBytes(uint64(max(it.Size, 0)))
	}
}

// formatModified shows recent times relative to now and older ones as a date.
func formatModified(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if d := now.Sub(t); d >= 0 && d < recentWindow {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return t.Format("2006-01-02")
}

func formatSearchStatus(ds statepkg.DisplayState) string {
	switch ds.SearchStatus {
	case statepkg.SearchPending:
		return "searching…"
	case statepkg.SearchFailed:
		msg := "search failed"
		if ds.SearchErr != nil {
			msg = ds.SearchErr.Error()
		}
		if n := len(ds.Results); n > 0 {
			return fmt.Sprintf("%s · %s partial", msg, pluralCount(n, "result"))
		}
		return msg
	default:
		return pluralCount(len(ds.Results), "result")
	}
}

func formatListingStatus(ds statepkg.DisplayState) string {
	parts := []string{pluralCount(len(ds.Items), "item")}
	var total int64
	for _, it := range ds.Items {
		if !it.IsDir() && it.HasSize {
			total += it.Size
		}
	}
	if total > 0 {
		parts = append(parts, humanize.IBytes(uint64(total)))
	}
	if ds.Loading {
		parts = append(parts, "loading…")
	}
	return strings.Join(parts, " · ")
}

func pluralCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
