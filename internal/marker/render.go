package marker

import (
	"sort"
	"strings"

	"github.com/starford/laguz/internal/models"
)

// markOpen is the highlight wrapper used on card fronts and backs. The
// inline colors keep highlighted terms readable in the sink's dark theme.
const (
	markOpen  = `<mark style="background-color: #f2c744; color: black;">`
	markClose = `</mark>`
)

// Highlight wraps text in the visual highlight marker.
func Highlight(text string) string {
	return markOpen + text + markClose
}

// Placeholder bytes stand in for the mark wrapper while stray notation
// is stripped. The real markup carries a #hex color the tag strip would
// otherwise mangle, so it is substituted in last.
const (
	openToken  = "\x00"
	closeToken = "\x01"
)

// Render produces a display-safe version of line with every marked term
// replaced by a highlight-wrapped version of its text and all notation
// stripped.
//
// Replacement runs right-to-left so earlier offsets stay valid, then a
// second pass strips stray notation characters (unmatched delimiters,
// orphan glyphs) and inline #tags that sit outside any matched span.
func Render(line string, terms []models.MarkedTerm) string {
	sorted := make([]models.MarkedTerm, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset > sorted[j].Offset
	})

	out := line
	for _, t := range sorted {
		end := t.Offset + span(t)
		if t.Offset < 0 || end > len(out) {
			continue
		}
		out = out[:t.Offset] + openToken + t.Text + closeToken + out[end:]
	}

	out = strings.ReplaceAll(out, "^^", "")
	out = strings.ReplaceAll(out, SpeechGlyph, "")
	out = tagRe.ReplaceAllString(out, "")
	out = strings.ReplaceAll(out, openToken, markOpen)
	out = strings.ReplaceAll(out, closeToken, markClose)
	return strings.TrimSpace(out)
}

// StripNotation removes all marker notation and inline tags from a line
// without inserting highlights.
func StripNotation(line string) string {
	out := strings.ReplaceAll(line, "^^", "")
	out = strings.ReplaceAll(out, SpeechGlyph, "")
	return strings.TrimSpace(StripTags(out))
}

// StripTags removes inline #tags, leaving everything else intact.
func StripTags(line string) string {
	return tagRe.ReplaceAllString(line, "")
}
