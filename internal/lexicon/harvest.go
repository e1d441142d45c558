package lexicon

import (
	"regexp"
	"sort"
	"strings"

	"github.com/starford/laguz/internal/marker"
	"github.com/starford/laguz/internal/models"
)

// section is the harvester state while walking lines under an anchor.
type section int

const (
	sectionNone section = iota
	sectionExamples
	sectionSynonyms
	sectionAntonyms
)

var (
	definitionPrefixRe = regexp.MustCompile(`\*\*Definition\*\*[:\s]+|Definition[:\s]+`)
	numberedRe         = regexp.MustCompile(`^\s*\d+\.`)
	boldHeaderRe       = regexp.MustCompile(`^\*\*[^*]+\*\*`)
	sectionOrDashRe    = regexp.MustCompile(`^(\*\*|-|•)`)
)

// Harvest walks the lines following each entry's anchor and fills in the
// definition and example list. Entries are mutated in place and returned.
//
// The scan window for an entry runs from its anchor (exclusive) to the
// next entry's anchor extended by opts.HarvestOverscan lines, bounding
// cost and keeping sparse entries from bleeding into unrelated content.
func Harvest(lines []string, entries []models.WordEntry, opts Options) []models.WordEntry {
	anchors := anchorIndex(entries)

	prevAnchor := -2
	for i := range entries {
		e := &entries[i]
		if e.AnchorLine < 0 {
			continue // synthetic entries carry their canned definition
		}
		if e.AnchorLine == prevAnchor {
			continue // two terms collapsed onto the same line
		}
		prevAnchor = e.AnchorLine

		limit := nextAnchorAfter(anchors, e.AnchorLine, len(lines)) + opts.HarvestOverscan
		harvestEntry(lines, e, limit, opts)
	}
	return entries
}

func harvestEntry(lines []string, e *models.WordEntry, limit int, opts Options) {
	multiWord := strings.Contains(e.Term, " ")
	state := sectionNone

	for j := e.AnchorLine + 1; j < len(lines) && j < limit; j++ {
		line := strings.TrimSpace(lines[j])

		switch {
		case strings.Contains(line, "Examples"):
			state = sectionExamples
			continue
		case strings.Contains(line, "Synonyms"):
			state = sectionSynonyms
			continue
		case strings.Contains(line, "Antonyms"):
			state = sectionAntonyms
			continue
		}

		if definitionPrefixRe.MatchString(line) {
			if e.Definition == "" {
				e.Definition = cleanDefinition(line)
				if multiWord && e.Definition != "" {
					e.Definition = appendWrappedDefinition(e.Definition, lines, j, opts)
				}
			}
			continue
		}

		if state == sectionExamples && looksLikeListItem(line) {
			example := cleanContent(line)
			if isValidExample(example) {
				e.Examples = append(e.Examples, example)
			}
			continue
		}

		// A phrase's definition sometimes sits unlabelled on the line
		// right under the anchor.
		if multiWord && j == e.AnchorLine+1 && e.Definition == "" && looksLikePhraseDefinition(line, e.Term) {
			e.Definition = cleanContent(line)
		}
	}
}

// anchorIndex returns the sorted anchor lines of all located entries.
func anchorIndex(entries []models.WordEntry) []int {
	var anchors []int
	for _, e := range entries {
		if e.AnchorLine >= 0 {
			anchors = append(anchors, e.AnchorLine)
		}
	}
	sort.Ints(anchors)
	return anchors
}

// nextAnchorAfter returns the first anchor strictly greater than n, or
// fallback when n is the last anchor. Returning the line count keeps the
// overscan arithmetic in Harvest from overflowing.
func nextAnchorAfter(anchors []int, n, fallback int) int {
	i := sort.SearchInts(anchors, n+1)
	if i == len(anchors) {
		return fallback
	}
	return anchors[i]
}

// appendWrappedDefinition joins up to opts.DefinitionWrapLines of plain
// continuation lines onto a phrase definition. Bullets, dashes, and bold
// section headers end the continuation.
func appendWrappedDefinition(def string, lines []string, start int, opts Options) string {
	for k := start + 1; k < len(lines) && k <= start+opts.DefinitionWrapLines; k++ {
		line := strings.TrimSpace(lines[k])
		if sectionOrDashRe.MatchString(line) {
			break
		}
		if extra := cleanContent(line); extra != "" {
			def += " " + extra
		}
	}
	return def
}

// cleanDefinition strips the Definition label then applies the common
// per-line cleanup.
func cleanDefinition(line string) string {
	return cleanContent(definitionPrefixRe.ReplaceAllString(line, ""))
}

// cleanContent strips leading numbering or bullets and all marker
// notation from a harvested line.
func cleanContent(line string) string {
	out := strings.TrimLeft(line, " \t")
	out = strings.TrimPrefix(out, "•")
	out = strings.TrimPrefix(out, "-")
	out = numberedRe.ReplaceAllString(out, "")
	out = strings.ReplaceAll(out, "^^", "")
	out = strings.ReplaceAll(out, marker.SpeechGlyph, "")
	return strings.TrimSpace(out)
}

// looksLikeListItem matches numbered, bulleted, or dashed lines.
func looksLikeListItem(line string) bool {
	return numberedRe.MatchString(line) ||
		strings.HasPrefix(line, "•") ||
		strings.HasPrefix(line, "-")
}

// isValidExample filters out section headers that slipped into an
// examples block.
func isValidExample(line string) bool {
	if line == "" || boldHeaderRe.MatchString(line) {
		return false
	}
	for _, excluded := range []string{"Synonyms", "Antonyms", "Etymology", "Usage Notes"} {
		if strings.Contains(line, excluded) {
			return false
		}
	}
	return true
}

// looksLikePhraseDefinition heuristically spots an unlabelled definition
// line for a multi-word phrase.
func looksLikePhraseDefinition(line, phrase string) bool {
	if !strings.Contains(line, "A") {
		return false
	}
	if strings.Contains(line, "Examples") || strings.Contains(line, "Synonyms") {
		return false
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, strings.ToLower(phrase)) {
		return true
	}
	for _, w := range strings.Fields(phrase) {
		if !strings.Contains(lower, strings.ToLower(w)) {
			return false
		}
	}
	return true
}
