package lexicon

import (
	"fmt"
	"strings"

	"github.com/starford/laguz/internal/models"
)

// Options tune the fallback matching heuristics. The zero value is not
// usable; call DefaultOptions and override fields as needed.
type Options struct {
	// FuzzyThreshold is the fraction of a phrase's significant words that
	// must appear in a line for a fuzzy match (pass 2).
	FuzzyThreshold float64
	// MinSignificantWordLen excludes short filler words ("of", "a") from
	// fuzzy matching.
	MinSignificantWordLen int
	// HarvestOverscan extends each entry's harvest window this many lines
	// past the next entry's anchor.
	HarvestOverscan int
	// DefinitionWrapLines is how many plain continuation lines may be
	// appended to a multi-word phrase's definition.
	DefinitionWrapLines int
}

// DefaultOptions returns the tuning used by the original heuristics.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold:        0.5,
		MinSignificantWordLen: 2,
		HarvestOverscan:       10,
		DefinitionWrapLines:   4,
	}
}

// Locate associates each marked term with an entry line in the outline.
//
// Pass 1 records every entry line found by the exact strategy cascade.
// Pass 2 fuzzy-matches multi-word terms that pass 1 missed, forcing the
// entry's term back to the original marked text so the caller's key is
// preserved. Pass 3 fabricates a synthetic entry for anything still
// missing, so every requested term ends up with some exportable content.
func Locate(lines []string, terms []models.MarkedTerm, opts Options) []models.WordEntry {
	var entries []models.WordEntry

	// Pass 1: exact entry lines.
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if !isEntryLine(line) {
			continue
		}
		term, _, ok := extractEntryTerm(line)
		if !ok {
			continue
		}
		entries = append(entries, models.WordEntry{
			Term:       term,
			AnchorLine: i,
			RawLine:    line,
		})
	}

	missing := missingTerms(entries, terms)

	// Pass 2: fuzzy matching for multi-word phrases.
	for _, want := range missing {
		if !strings.Contains(want, " ") {
			continue
		}
		for i, raw := range lines {
			line := strings.TrimSpace(raw)
			if !isBulletLine(line) {
				continue
			}
			if !fuzzyLineMatch(line, want, opts) {
				continue
			}
			if _, _, ok := extractEntryTerm(line); !ok {
				continue
			}
			// Keep the original marked text as the key, not whatever the
			// pattern extracted from the line.
			entries = append(entries, models.WordEntry{
				Term:       want,
				AnchorLine: i,
				RawLine:    line,
			})
			break
		}
	}

	// Pass 3: synthetic fallback entries.
	for _, want := range missingTerms(entries, terms) {
		entries = append(entries, models.WordEntry{
			Term:       want,
			AnchorLine: -1,
			RawLine:    fmt.Sprintf("- %s (missing entry)", want),
			Definition: fmt.Sprintf("Definition for %q not found in notes.", want),
		})
	}

	return entries
}

// missingTerms returns marked-term texts (original casing) that have no
// located entry yet, comparing case-insensitively.
func missingTerms(entries []models.WordEntry, terms []models.MarkedTerm) []string {
	found := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		found[strings.ToLower(e.Term)] = struct{}{}
	}
	var out []string
	for _, t := range terms {
		if _, ok := found[strings.ToLower(t.Text)]; !ok {
			out = append(out, t.Text)
		}
	}
	return out
}

// fuzzyLineMatch reports whether enough of a phrase's significant words
// appear in the line as case-insensitive substrings.
func fuzzyLineMatch(line, phrase string, opts Options) bool {
	lower := strings.ToLower(line)
	if !strings.Contains(phrase, " ") {
		return strings.Contains(lower, strings.ToLower(phrase))
	}
	var significant []string
	for _, w := range strings.Fields(phrase) {
		if len(w) > opts.MinSignificantWordLen {
			significant = append(significant, w)
		}
	}
	if len(significant) == 0 {
		return false
	}
	hits := 0
	for _, w := range significant {
		if strings.Contains(lower, strings.ToLower(w)) {
			hits++
		}
	}
	return float64(hits)/float64(len(significant)) >= opts.FuzzyThreshold
}
