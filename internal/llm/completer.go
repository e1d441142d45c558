// Package llm consumes the language-model completion capability and
// parses its structured vocabulary payload.
package llm

import "context"

// ResponseFormat selects the shape of the completion.
type ResponseFormat string

const (
	FormatText ResponseFormat = "text"
	FormatJSON ResponseFormat = "json"
)

// Completer is the opaque completion capability. Implementations must
// honor ctx cancellation; the caller enforces the wall-clock timeout.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userContent string, format ResponseFormat) (string, error)
}
