package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// cachedRuneWidth returns the number of cells ru occupies. Combining
// marks report 0.
func (r *Renderer) cachedRuneWidth(ru rune) int {
	if w, ok := r.widths[ru]; ok {
		return w
	}
	w := max(runewidth.RuneWidth(ru), 0)
	r.widths[ru] = w
	return w
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

// truncateTextToWidth shortens text to maxWidth cells, marking the cut
// with an ellipsis.
func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= runewidth.StringWidth(ellipsis) {
		return ellipsis
	}
	return runewidth.Truncate(text, maxWidth, ellipsis)
}

// drawTextLine draws text from startX using at most maxWidth cells and
// returns the column after the last drawn cell. Zero-width runes are
// attached to the preceding cell.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	for i := 0; i < len(runes); {
		base := runes[i]
		i++
		w := r.cachedRuneWidth(base)
		if x-startX+max(w, 1) > maxWidth {
			break
		}
		j := i
		for j < len(runes) && r.cachedRuneWidth(runes[j]) == 0 {
			j++
		}
		var comb []rune
		if j > i {
			comb = runes[i:j]
		}
		i = j
		r.screen.SetContent(x, y, base, comb, style)
		x += max(w, 1)
	}
	return x
}

// drawStyledRune draws ru at x, padding the trailing cells of wide runes,
// and returns the next column.
func (r *Renderer) drawStyledRune(x, y, maxX int, ru rune, style tcell.Style) int {
	if x >= maxX {
		return x
	}
	w := max(r.cachedRuneWidth(ru), 1)
	r.screen.SetContent(x, y, ru, nil, style)
	for pad := 1; pad < w && x+pad < maxX; pad++ {
		r.screen.SetContent(x+pad, y, ' ', nil, style)
	}
	return x + w
}

func (r *Renderer) drawStyledStringClipped(startX, y, maxX int, text string, style tcell.Style) int {
	x, _ := r.drawHighlightedText(startX, y, maxX, text, nil, 0, style, style)
	return x
}

func (r *Renderer) fillRow(startX, y, maxX int, style tcell.Style) {
	for x := startX; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// highlightSpan is a half-open rune range drawn with the match style.
type highlightSpan struct {
	start int
	end   int
}

// matchSpans finds non-overlapping case-insensitive occurrences of query
// in text. Texts whose lowercase form changes rune count get no spans.
func matchSpans(text, query string) []highlightSpan {
	if query == "" {
		return nil
	}
	hay := []rune(strings.ToLower(text))
	needle := []rune(strings.ToLower(query))
	if len(hay) != len([]rune(text)) {
		return nil
	}
	var spans []highlightSpan
	for i := 0; i+len(needle) <= len(hay); i++ {
		if string(hay[i:i+len(needle)]) == string(needle) {
			spans = append(spans, highlightSpan{start: i, end: i + len(needle)})
			i += len(needle) - 1
		}
	}
	return spans
}

// drawHighlightedText draws text with runes inside spans in highlight.
// offset is the rune index of text[0] within the string the spans were
// computed for. It returns the next column and the offset after text.
func (r *Renderer) drawHighlightedText(startX, y, maxX int, text string, spans []highlightSpan, offset int, base, highlight tcell.Style) (int, int) {
	runes := []rune(text)
	end := offset + len(runes)
	x := startX
	next := 0
	for idx, ru := range runes {
		if x >= maxX {
			break
		}
		pos := offset + idx
		for next < len(spans) && pos >= spans[next].end {
			next++
		}
		style := base
		if next < len(spans) && pos >= spans[next].start {
			style = highlight
		}
		x = r.drawStyledRune(x, y, maxX, ru, style)
	}
	return x, end
}
