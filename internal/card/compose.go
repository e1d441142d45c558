// Package card composes flashcard HTML from a rendered context line and
// a harvested word entry.
package card

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/starford/laguz/internal/marker"
	"github.com/starford/laguz/internal/models"
)

// nightModeCSS keeps highlighted terms legible when the sink renders
// cards with its dark theme.
const nightModeCSS = `
<style>
  .night-mode mark, .nightMode mark {
    color: black !important;
  }
</style>
`

var (
	leadingBulletRe = regexp.MustCompile(`^[•\-]\s+[A-Za-z0-9 -]+\s+`)
	backtickRe      = regexp.MustCompile("`([^`]+)`")
	leadingDashRe   = regexp.MustCompile(`^-\s*`)
)

// Compose builds a flashcard for entry. The front shows the rendered
// context line with the term restated below it; the back carries the
// cleaned anchor line, the definition, and the examples with the term
// highlighted wherever it appears on a word boundary.
func Compose(context string, entry models.WordEntry, deck string) models.FlashCard {
	return models.FlashCard{
		Front: composeFront(context, entry.Term) + nightModeCSS,
		Back:  composeBack(entry) + nightModeCSS,
		Deck:  deck,
	}
}

func composeFront(context, term string) string {
	var b strings.Builder
	b.WriteString("<div style=\"text-align: left; margin-bottom: 20px;\">\n")
	b.WriteString("  <p>" + context + "</p>\n")
	b.WriteString("</div>\n")
	b.WriteString("<div style=\"text-align: center; font-size: 1.2em; font-weight: bold;\">\n")
	b.WriteString("  " + term + "\n")
	b.WriteString("</div>")
	return b.String()
}

func composeBack(entry models.WordEntry) string {
	var b strings.Builder
	b.WriteString("<div style=\"text-align: left;\">\n")
	b.WriteString("  <p><b>Word Block:</b> " + cleanAnchorLine(entry.RawLine) + "</p>\n")
	if entry.Definition != "" {
		def := leadingDashRe.ReplaceAllString(entry.Definition, "")
		b.WriteString("  <p><b>Definition:</b> " + def + "</p>\n")
	}
	if len(entry.Examples) > 0 {
		b.WriteString("  <p><b>Examples:</b></p>\n")
		b.WriteString("  <ul>")
		for _, ex := range entry.Examples {
			b.WriteString("<li>" + highlightTerm(ex, entry.Term) + "</li>")
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// cleanAnchorLine turns the raw anchor line into card-ready HTML: marker
// notation and inline tags go away, the leading bullet and term are cut
// so the line reads as annotation, and backticked segments become
// highlights.
func cleanAnchorLine(raw string) string {
	out := strings.ReplaceAll(raw, "^^", "")
	out = strings.ReplaceAll(out, marker.SpeechGlyph, "")
	out = leadingBulletRe.ReplaceAllString(out, "")
	out = marker.StripTags(out)
	out = backtickRe.ReplaceAllStringFunc(out, func(m string) string {
		return marker.Highlight(strings.Trim(m, "`"))
	})
	return strings.TrimSpace(out)
}

// highlightTerm wraps whole-word, case-insensitive occurrences of term
// in text with the highlight marker. The matched text keeps its original
// casing.
func highlightTerm(text, term string) string {
	if strings.TrimSpace(term) == "" {
		return text
	}
	re, err := regexp.Compile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(term)))
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, marker.Highlight)
}
