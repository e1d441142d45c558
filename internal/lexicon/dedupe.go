package lexicon

import (
	"strings"

	"github.com/starford/laguz/internal/models"
)

// Dedupe collapses entries to one per case-insensitive term, keeping the
// entry with the highest quality score. Ties keep the first-seen entry;
// since Locate emits pass-1 entries before fallbacks, exact matches win
// ties over fuzzy and synthetic ones.
func Dedupe(entries []models.WordEntry) []models.WordEntry {
	type slot struct {
		index int
		entry models.WordEntry
	}
	best := make(map[string]*slot, len(entries))
	var order []string

	for _, e := range entries {
		key := strings.ToLower(e.Term)
		s, ok := best[key]
		if !ok {
			best[key] = &slot{index: len(order), entry: e}
			order = append(order, key)
			continue
		}
		if e.QualityScore() > s.entry.QualityScore() {
			s.entry = e
		}
	}

	out := make([]models.WordEntry, 0, len(order))
	for _, key := range order {
		out = append(out, best[key].entry)
	}
	return out
}
