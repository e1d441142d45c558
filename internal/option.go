package internal

import "github.com/starford/laguz/internal/llm"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	mcp       bool
	completer llm.Completer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithMCP serves the MCP stdio transport instead of the HTTP API.
func WithMCP(enabled bool) Option {
	return func(a *application) {
		a.mcp = enabled
	}
}

// WithCompleter overrides the language-model client, used by tests.
func WithCompleter(c llm.Completer) Option {
	return func(a *application) {
		a.completer = c
	}
}
