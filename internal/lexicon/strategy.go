// Package lexicon reconciles marked terms against an AI-generated outline:
// it locates the entry line for each term, collapses duplicate entries, and
// harvests definitions and examples from the lines that follow each anchor.
package lexicon

import (
	"regexp"
	"strings"

	"github.com/starford/laguz/internal/marker"
)

// partOfSpeechKeywords gate entry-line detection: a bulleted line is only
// treated as an entry when it carries one of these.
var partOfSpeechKeywords = []string{"noun", "verb", "adjective", "adverb", "adj"}

var (
	bulletRe     = regexp.MustCompile(`^\s*[•\-]`)
	delimitedRe  = regexp.MustCompile(`\^\^([^^]+)\^\^`)
	glyphTermRe  = regexp.MustCompile(`([A-Za-z0-9 -]+) ` + marker.SpeechGlyph)
	genericPOSRe = regexp.MustCompile(`(?i)[•\-]\s+([A-Za-z0-9 -]+)\s+(noun|verb|adjective|adverb|adj)`)
)

// StrategyName tags one matcher in the extraction cascade.
type StrategyName string

const (
	StrategyExactDelimited StrategyName = "exact-delimited"
	StrategyExactGlyph     StrategyName = "exact-glyph"
	StrategyGenericPOS     StrategyName = "generic-pos"
	StrategyFuzzyMultiWord StrategyName = "fuzzy-multi-word"
	StrategySynthetic      StrategyName = "synthetic"
)

// Strategy is one pure line matcher. Match returns the extracted term and
// whether the strategy applied.
type Strategy struct {
	Name  StrategyName
	Match func(line string) (string, bool)
}

// entryStrategies is the fixed priority order for extracting the term of
// an entry line. The first matching strategy wins.
var entryStrategies = []Strategy{
	{
		Name: StrategyExactDelimited,
		Match: func(line string) (string, bool) {
			m := delimitedRe.FindStringSubmatch(line)
			if m == nil {
				return "", false
			}
			term := strings.TrimSpace(m[1])
			return term, term != ""
		},
	},
	{
		Name: StrategyExactGlyph,
		Match: func(line string) (string, bool) {
			m := glyphTermRe.FindStringSubmatch(line)
			if m == nil {
				return "", false
			}
			term := strings.TrimSpace(m[1])
			return term, term != ""
		},
	},
	{
		Name: StrategyGenericPOS,
		Match: func(line string) (string, bool) {
			m := genericPOSRe.FindStringSubmatch(line)
			if m == nil {
				return "", false
			}
			term := strings.TrimSpace(m[1])
			return term, term != ""
		},
	},
}

// extractEntryTerm runs the strategy cascade over an entry line.
func extractEntryTerm(line string) (string, StrategyName, bool) {
	for _, s := range entryStrategies {
		if term, ok := s.Match(line); ok {
			return term, s.Name, true
		}
	}
	return "", "", false
}

// isBulletLine reports whether a line starts with a bullet or dash,
// allowing leading indentation.
func isBulletLine(line string) bool {
	return bulletRe.MatchString(line)
}

// isEntryLine reports whether a line anchors a word entry: bulleted and
// carrying a part-of-speech keyword.
func isEntryLine(line string) bool {
	if !isBulletLine(line) {
		return false
	}
	for _, kw := range partOfSpeechKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
