// Package marker extracts marked vocabulary terms from annotated text and
// renders display-safe versions of the source line.
//
// Two notations mark a term as new: a delimited span (^^term^^) and a
// trailing speaker glyph (term 🔊). Both are scanned over the same line
// and the merged matches are ordered by byte offset in the original line.
package marker

import (
	"regexp"
	"sort"
	"strings"

	"github.com/starford/laguz/internal/models"
)

// SpeechGlyph is the fixed trailing-glyph character.
const SpeechGlyph = "🔊"

const (
	// highlightOverhead is the notation span overhead for ^^term^^.
	highlightOverhead = 4
	// speechOverhead covers the single separating space plus the glyph.
	speechOverhead = 1 + len(SpeechGlyph)
)

var (
	highlightRe = regexp.MustCompile(`\^\^([^^]+?)\^\^`)
	speechRe    = regexp.MustCompile(`([A-Za-z0-9 -]+) ` + SpeechGlyph)
	tagRe       = regexp.MustCompile(`#[A-Za-z0-9_-]+`)
)

// Tokenize scans a line for both notations and returns every match sorted
// by ascending offset. Zero matches returns an empty sequence, never an
// error; callers must treat an empty result as "nothing to do".
func Tokenize(line string) []models.MarkedTerm {
	var terms []models.MarkedTerm

	for _, m := range highlightRe.FindAllStringSubmatchIndex(line, -1) {
		text := strings.TrimSpace(line[m[2]:m[3]])
		if text == "" {
			continue
		}
		terms = append(terms, models.MarkedTerm{
			Text:   text,
			Kind:   models.NotationHighlight,
			Offset: m[0],
		})
	}

	for _, m := range speechRe.FindAllStringSubmatchIndex(line, -1) {
		raw := line[m[2]:m[3]]
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		// The character class admits leading spaces; shift the offset to
		// the first character of the trimmed term so span replacement in
		// Render stays aligned with the original line.
		offset := m[2] + strings.Index(raw, text)
		terms = append(terms, models.MarkedTerm{
			Text:   text,
			Kind:   models.NotationSpeech,
			Offset: offset,
		})
	}

	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Offset < terms[j].Offset
	})
	return terms
}

// Dedupe keeps the first occurrence of each term, case-insensitively.
// Input order (ascending offset) is preserved.
func Dedupe(terms []models.MarkedTerm) []models.MarkedTerm {
	seen := make(map[string]struct{}, len(terms))
	out := make([]models.MarkedTerm, 0, len(terms))
	for _, t := range terms {
		key := strings.ToLower(t.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// First isolates the earliest match, for flows that card a single term.
func First(terms []models.MarkedTerm) []models.MarkedTerm {
	if len(terms) == 0 {
		return nil
	}
	return terms[:1]
}

// span returns the byte length of the full notation span for t in the
// original line (term text plus notation overhead).
func span(t models.MarkedTerm) int {
	switch t.Kind {
	case models.NotationSpeech:
		return len(t.Text) + speechOverhead
	default:
		return len(t.Text) + highlightOverhead
	}
}
