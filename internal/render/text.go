package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/rivo/uniseg"
)

// DaysCount renders n with the right plural, e.g. "1 day", "5 days".
func DaysCount(n int) string {
	return fmt.Sprintf("%s %s", humanize.Comma(int64(n)), english.PluralWord(n, "day", ""))
}

// Count renders n followed by noun, pluralized.
func Count(n int, noun string) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, noun, "")
}

// Truncate shortens s to at most width terminal cells, appending an
// ellipsis when something was cut. Grapheme clusters are never split.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width-1 {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	b.WriteString("…")
	return b.String()
}

// PadRight pads s with spaces to width terminal cells.
func PadRight(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
