package outline

import (
	"fmt"
	"strings"
	"testing"

	"github.com/starford/laguz/internal/models"
)

func sampleRecord() models.StructuredWordRecord {
	return models.StructuredWordRecord{
		Basic: models.WordBasic{
			Word:                      "ambience",
			Phonetic:                  "ˈæmbiəns",
			PartOfSpeech:              "noun",
			MotherLanguageTranslation: "氛围",
		},
		Tags:       []string{"new-words"},
		Definition: "the character and atmosphere of a place",
		Examples: []string{
			"The ambience was warm.",
			"Soft lights set the ambience.",
		},
		Synonyms: []models.RelatedWord{
			{Word: "atmosphere", Phonetic: "ˈætməsfɪr", PartOfSpeech: "noun", MotherLanguageTranslation: "气氛"},
		},
		Antonyms: []models.RelatedWord{
			{Word: "sterility", Phonetic: "stəˈrɪləti", PartOfSpeech: "noun", MotherLanguageTranslation: "乏味"},
		},
		Etymology:  "from Latin ambire, to go around",
		UsageNotes: "common in reviews of restaurants and hotels",
	}
}

func TestFromRecord_Structure(t *testing.T) {
	root := FromRecord(sampleRecord())

	if !strings.HasPrefix(root.Text, "^^ambience^^ `ˈæmbiəns` `noun` `氛围`") {
		t.Errorf("headline = %q", root.Text)
	}
	if !strings.Contains(root.Text, "#new-words") {
		t.Errorf("missing tag token: %q", root.Text)
	}

	wantHeads := []string{"**Definition**:", "**Examples**", "**Synonyms**", "**Antonyms**", "**Etymology**:", "**Usage Notes**:"}
	if len(root.Children) != len(wantHeads) {
		t.Fatalf("children = %d, want %d", len(root.Children), len(wantHeads))
	}
	for i, want := range wantHeads {
		if !strings.HasPrefix(root.Children[i].Text, want) {
			t.Errorf("child %d = %q, want prefix %q", i, root.Children[i].Text, want)
		}
	}

	ex := root.Children[1]
	if len(ex.Children) != 2 {
		t.Fatalf("example children = %d", len(ex.Children))
	}
	if ex.Children[0].Text != "1. The ambience was warm." {
		t.Errorf("example = %q", ex.Children[0].Text)
	}
}

func TestFromRecord_EmptyScalarsKeepPosition(t *testing.T) {
	rec := sampleRecord()
	rec.Basic.Phonetic = ""
	rec.Basic.MotherLanguageTranslation = ""
	root := FromRecord(rec)
	if !strings.HasPrefix(root.Text, "^^ambience^^ `` `noun` ``") {
		t.Errorf("empty scalars must render as empty backticks: %q", root.Text)
	}
}

func TestFromRecord_OptionalSectionsOmitted(t *testing.T) {
	rec := models.StructuredWordRecord{
		Basic:      models.WordBasic{Word: "hum", PartOfSpeech: "noun"},
		Definition: "a low continuous sound",
	}
	root := FromRecord(rec)
	if len(root.Children) != 1 {
		t.Fatalf("children = %d, want only the definition line", len(root.Children))
	}
}

func TestFlattenAndParseRoundTrip(t *testing.T) {
	root := FromRecord(sampleRecord())
	text := RenderBlockText(root)

	forest := ParseLines(text)
	if len(forest) != 1 {
		t.Fatalf("forest size = %d, want 1", len(forest))
	}
	got := Flatten(forest[0])
	want := Flatten(root)
	if len(got) != len(want) {
		t.Fatalf("line count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Text != want[i].Text || got[i].Indent != want[i].Indent {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseLines_SiblingAndDedent(t *testing.T) {
	text := "- a\n\t- a1\n\t\t- a1x\n\t- a2\n- b"
	forest := ParseLines(text)
	if len(forest) != 2 {
		t.Fatalf("forest = %d roots", len(forest))
	}
	a := forest[0]
	if len(a.Children) != 2 || a.Children[0].Text != "a1" || a.Children[1].Text != "a2" {
		t.Errorf("a children = %+v", a.Children)
	}
	if len(a.Children[0].Children) != 1 || a.Children[0].Children[0].Text != "a1x" {
		t.Errorf("a1 children wrong")
	}
	if forest[1].Text != "b" {
		t.Errorf("forest[1] = %q", forest[1].Text)
	}
}

type recordingWriter struct {
	calls []string
	next  int
}

func (w *recordingWriter) CreateChildBlock(parentID, text string, order int, open bool) (string, error) {
	w.next++
	id := fmt.Sprintf("b%d", w.next)
	w.calls = append(w.calls, parentID+" <- "+text)
	return id, nil
}

func TestMaterialize_WritesInDocumentOrder(t *testing.T) {
	root := &Node{Text: "top", Children: []*Node{
		{Text: "first", Children: []*Node{{Text: "nested"}}},
		{Text: "second"},
	}}
	w := &recordingWriter{}
	id, err := Materialize(w, "root", root)
	if err != nil {
		t.Fatal(err)
	}
	if id != "b1" {
		t.Errorf("container id = %q", id)
	}
	want := []string{
		"root <- top",
		"b1 <- first",
		"b2 <- nested",
		"b1 <- second",
	}
	if len(w.calls) != len(want) {
		t.Fatalf("calls = %v", w.calls)
	}
	for i := range want {
		if w.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, w.calls[i], want[i])
		}
	}
}
