package outline

import (
	"fmt"
	"strings"

	"github.com/starford/laguz/internal/models"
)

// Section header literals re-parsed by downstream consumers. They must
// stay bit-exact with what the harvester matches.
const (
	headerDefinition = "**Definition**:"
	headerExamples   = "**Examples**"
	headerSynonyms   = "**Synonyms**"
	headerAntonyms   = "**Antonyms**"
	headerEtymology  = "**Etymology**:"
	headerUsageNotes = "**Usage Notes**:"
)

// FromRecord serializes a structured word record into an outline tree.
//
// Empty optional scalars (phonetic, part of speech, translation) render
// as an empty-backtick token instead of being omitted, so positional
// parsing of the top line never shifts.
func FromRecord(rec models.StructuredWordRecord) *Node {
	root := &Node{Text: headlineText(rec)}

	root.Children = append(root.Children, &Node{
		Text: headerDefinition + " " + rec.Definition,
	})

	if len(rec.Examples) > 0 {
		ex := &Node{Text: headerExamples}
		for i, e := range rec.Examples {
			ex.Children = append(ex.Children, &Node{Text: fmt.Sprintf("%d. %s", i+1, e)})
		}
		root.Children = append(root.Children, ex)
	}

	if len(rec.Synonyms) > 0 {
		root.Children = append(root.Children, relatedNode(headerSynonyms, rec.Synonyms))
	}
	if len(rec.Antonyms) > 0 {
		root.Children = append(root.Children, relatedNode(headerAntonyms, rec.Antonyms))
	}

	if rec.Etymology != "" {
		root.Children = append(root.Children, &Node{Text: headerEtymology + " " + rec.Etymology})
	}
	if rec.UsageNotes != "" {
		root.Children = append(root.Children, &Node{Text: headerUsageNotes + " " + rec.UsageNotes})
	}

	return root
}

// headlineText builds the container line: marked term, phonetics, part of
// speech, translation, then #tags.
func headlineText(rec models.StructuredWordRecord) string {
	parts := []string{
		"^^" + rec.Basic.Word + "^^",
		backtick(rec.Basic.Phonetic),
		backtick(rec.Basic.PartOfSpeech),
		backtick(rec.Basic.MotherLanguageTranslation),
	}
	for _, tag := range rec.Tags {
		parts = append(parts, "#"+strings.TrimPrefix(tag, "#"))
	}
	return strings.Join(parts, " ")
}

// relatedNode renders a Synonyms/Antonyms header with one child line per
// related word.
func relatedNode(header string, words []models.RelatedWord) *Node {
	n := &Node{Text: header}
	for _, w := range words {
		n.Children = append(n.Children, &Node{
			Text: strings.Join([]string{
				w.Word,
				backtick(w.Phonetic),
				backtick(w.PartOfSpeech),
				backtick(w.MotherLanguageTranslation),
			}, " "),
		})
	}
	return n
}

// backtick wraps a scalar field; empty values render as an empty pair so
// the token is never dropped.
func backtick(s string) string {
	return "`" + s + "`"
}
