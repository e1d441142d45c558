package lexicon

import (
	"strings"
	"testing"

	"github.com/starford/laguz/internal/models"
)

func TestHarvest_DefinitionAndExamples(t *testing.T) {
	lines := []string{
		"The ^^ambience^^ was gentle.",
		"- ^^ambience^^ `ˈæmbiəns` `noun` `氛围` #new-words",
		"\t- **Definition**: the character and atmosphere of a place",
		"\t- **Examples**",
		"\t\t- 1. The ^^ambience^^ was warm.",
		"\t\t- 2. Soft lights set the ^^ambience^^.",
		"\t- **Synonyms**",
		"\t\t- atmosphere `ˈætməsfɪr` `noun` `气氛`",
	}
	entries := []models.WordEntry{{Term: "ambience", AnchorLine: 1, RawLine: lines[1]}}
	out := Harvest(lines, entries, DefaultOptions())

	if out[0].Definition != "the character and atmosphere of a place" {
		t.Errorf("definition = %q", out[0].Definition)
	}
	if len(out[0].Examples) != 2 {
		t.Fatalf("examples = %v", out[0].Examples)
	}
	if out[0].Examples[0] != "The ambience was warm." {
		t.Errorf("examples[0] = %q", out[0].Examples[0])
	}
	if out[0].Examples[1] != "Soft lights set the ambience." {
		t.Errorf("examples[1] = %q", out[0].Examples[1])
	}
}

func TestHarvest_SynonymLinesNotCollectedAsExamples(t *testing.T) {
	lines := []string{
		"- ^^hum^^ `noun`",
		"\t- **Examples**",
		"\t\t- 1. A steady hum filled the room.",
		"\t- **Synonyms**",
		"\t\t- buzz `bʌz` `noun`",
		"\t- **Antonyms**",
		"\t\t- silence `ˈsaɪləns` `noun`",
	}
	entries := []models.WordEntry{{Term: "hum", AnchorLine: 0}}
	out := Harvest(lines, entries, DefaultOptions())
	if len(out[0].Examples) != 1 {
		t.Errorf("examples = %v", out[0].Examples)
	}
}

func TestHarvest_ExclusionList(t *testing.T) {
	lines := []string{
		"- ^^whir^^ `noun`",
		"\t- **Examples**",
		"\t\t- 1. The whir of the fan.",
		"\t\t- **Etymology** imitative origin",
		"\t\t- see also Usage Notes below",
	}
	entries := []models.WordEntry{{Term: "whir", AnchorLine: 0}}
	out := Harvest(lines, entries, DefaultOptions())
	if len(out[0].Examples) != 1 {
		t.Errorf("examples = %v", out[0].Examples)
	}
}

func TestHarvest_MultiWordWrappedDefinition(t *testing.T) {
	lines := []string{
		"- ^^valued proximity over luxury^^ `phrase`",
		"\t**Definition**: chose a location close to the venue",
		"\teven when the rooms were plain",
		"\tand the services basic",
		"\t- **Examples**",
	}
	entries := []models.WordEntry{{Term: "valued proximity over luxury", AnchorLine: 0}}
	out := Harvest(lines, entries, DefaultOptions())
	def := out[0].Definition
	if !strings.Contains(def, "even when the rooms were plain") {
		t.Errorf("wrap line not appended: %q", def)
	}
	if !strings.Contains(def, "and the services basic") {
		t.Errorf("second wrap line not appended: %q", def)
	}
	if strings.Contains(def, "Examples") {
		t.Errorf("definition bled into next section: %q", def)
	}
}

func TestHarvest_SingleWordNoWrap(t *testing.T) {
	lines := []string{
		"- ^^hum^^ `noun`",
		"\t**Definition**: a low continuous sound",
		"\tthis line must not be appended",
	}
	entries := []models.WordEntry{{Term: "hum", AnchorLine: 0}}
	out := Harvest(lines, entries, DefaultOptions())
	if out[0].Definition != "a low continuous sound" {
		t.Errorf("definition = %q", out[0].Definition)
	}
}

func TestHarvest_WindowBounded(t *testing.T) {
	lines := []string{
		"- ^^alpha^^ `noun`",
		"\t- **Definition**: first",
		"- ^^beta^^ `noun`",
		"\t- **Definition**: second",
	}
	entries := []models.WordEntry{
		{Term: "alpha", AnchorLine: 0},
		{Term: "beta", AnchorLine: 2},
	}
	out := Harvest(lines, entries, DefaultOptions())
	if out[0].Definition != "first" {
		t.Errorf("alpha definition = %q", out[0].Definition)
	}
	if out[1].Definition != "second" {
		t.Errorf("beta definition = %q", out[1].Definition)
	}
}

func TestHarvest_LastAnchorScansToEnd(t *testing.T) {
	// The entry with no anchor after it must still harvest everything
	// down to the final line.
	lines := []string{
		"- ^^alpha^^ `noun`",
		"\t- **Definition**: first",
		"- ^^omega^^ `noun`",
		"\t- **Definition**: last of all",
		"\t- **Examples**",
		"\t\t- 1. The omega closed the set.",
	}
	entries := []models.WordEntry{
		{Term: "alpha", AnchorLine: 0},
		{Term: "omega", AnchorLine: 2},
	}
	out := Harvest(lines, entries, DefaultOptions())
	if out[1].Definition != "last of all" {
		t.Errorf("omega definition = %q", out[1].Definition)
	}
	if len(out[1].Examples) != 1 || out[1].Examples[0] != "The omega closed the set." {
		t.Errorf("omega examples = %v", out[1].Examples)
	}
}

func TestHarvest_SyntheticEntriesUntouched(t *testing.T) {
	entries := []models.WordEntry{{
		Term:       "ghost",
		AnchorLine: -1,
		Definition: `Definition for "ghost" not found in notes.`,
	}}
	out := Harvest([]string{"- **Definition**: should not apply"}, entries, DefaultOptions())
	if out[0].Definition != `Definition for "ghost" not found in notes.` {
		t.Errorf("synthetic definition overwritten: %q", out[0].Definition)
	}
}

func TestHarvest_SharedAnchorSkipsSecond(t *testing.T) {
	lines := []string{
		"- ^^lobby^^ ^^foyer^^ `noun`",
		"\t- **Definition**: an entrance hall",
	}
	entries := []models.WordEntry{
		{Term: "lobby", AnchorLine: 0},
		{Term: "foyer", AnchorLine: 0},
	}
	out := Harvest(lines, entries, DefaultOptions())
	if out[0].Definition == "" {
		t.Error("first entry on shared anchor should be harvested")
	}
	if out[1].Definition != "" {
		t.Errorf("second entry on shared anchor should be skipped, got %q", out[1].Definition)
	}
}
