package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/models"
)

type wordsPayload struct {
	Words []models.StructuredWordRecord `json:"words"`
}

// ParseWordsPayload parses a JSON completion of the form
// {"words": [...]}. Any parse failure or a missing words array surfaces
// as ErrMalformedModelOutput so the caller aborts without partial writes.
func ParseWordsPayload(raw string) ([]models.StructuredWordRecord, error) {
	cleaned := stripCodeFence(raw)

	var payload wordsPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrMalformedModelOutput, err)
	}
	if payload.Words == nil {
		return nil, fmt.Errorf("%w: missing words array", apperr.ErrMalformedModelOutput)
	}
	return payload.Words, nil
}

// stripCodeFence unwraps a completion the model wrapped in a markdown
// code fence despite the JSON response format.
func stripCodeFence(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
