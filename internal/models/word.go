// Package models defines the domain types for Laguz.
package models

import "time"

// NotationKind identifies which inline notation marked a term.
type NotationKind string

const (
	// NotationHighlight is the delimited-span notation: ^^term^^.
	NotationHighlight NotationKind = "highlight"
	// NotationSpeech is the trailing-glyph notation: term followed by
	// one space and the speaker glyph.
	NotationSpeech NotationKind = "speech"
)

// MarkedTerm is a word or phrase flagged as unfamiliar in a line of text.
// Offset is the byte offset of the start of the notation span in the
// original line, so replacements must be applied right-to-left.
type MarkedTerm struct {
	Text   string       `json:"text"`
	Kind   NotationKind `json:"kind"`
	Offset int          `json:"offset"`
}

// WordEntry is the content harvested from an outline for one marked term.
// AnchorLine is -1 for synthetic fallback entries that have no locatable
// line in the outline.
type WordEntry struct {
	Term       string   `json:"term"`
	AnchorLine int      `json:"anchor_line"`
	RawLine    string   `json:"raw_line"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
}

// QualityScore ranks duplicate entries for the same term: a definition is
// worth more than examples, and an entry with neither scores zero.
func (e WordEntry) QualityScore() int {
	score := 0
	if e.Definition != "" {
		score += 2
	}
	if len(e.Examples) > 0 {
		score++
	}
	return score
}

// RelatedWord is one synonym or antonym inside a structured record.
type RelatedWord struct {
	Word                      string `json:"word"`
	Phonetic                  string `json:"phonetic"`
	PartOfSpeech              string `json:"partOfSpeech"`
	MotherLanguageTranslation string `json:"motherLanguageTranslation"`
}

// WordBasic is the headline portion of a structured record.
type WordBasic struct {
	Word                      string `json:"word"`
	Phonetic                  string `json:"phonetic"`
	PartOfSpeech              string `json:"partOfSpeech"`
	MotherLanguageTranslation string `json:"motherLanguageTranslation"`
}

// StructuredWordRecord is one lexical entry produced by the language model.
// It is consumed exactly once by the outline serializer and then discarded.
type StructuredWordRecord struct {
	Basic      WordBasic     `json:"basic"`
	Tags       []string      `json:"tags"`
	Definition string        `json:"definition"`
	Examples   []string      `json:"examples"`
	Synonyms   []RelatedWord `json:"synonyms"`
	Antonyms   []RelatedWord `json:"antonyms"`
	Etymology  string        `json:"etymology"`
	UsageNotes string        `json:"usageNotes"`
}

// FlashCard is a front/back HTML pair bound for the flashcard sink.
type FlashCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Deck  string `json:"deck"`
}

// ExportSummary reports the outcome of one export run.
type ExportSummary struct {
	BlockID string `json:"block_id"`
	Deck    string `json:"deck"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// ExportRecord is one row in the export ledger.
type ExportRecord struct {
	BlockID   string    `json:"block_id"`
	TermIndex int       `json:"term_index"`
	Term      string    `json:"term"`
	Deck      string    `json:"deck"`
	CreatedAt time.Time `json:"created_at"`
}
