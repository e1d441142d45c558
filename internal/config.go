package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Auth     AuthConfig        `yaml:"auth"`
	Anki     AnkiConfig        `yaml:"anki"`
	Model    ModelConfig       `yaml:"model"`
	Prompt   PromptConfig      `yaml:"prompt"`
	Ledger   LedgerConfig      `yaml:"ledger"`
	Matching MatchingConfig    `yaml:"matching"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Anki.Validate(); err != nil {
		return err
	}
	if err := c.Model.Validate(); err != nil {
		return err
	}
	if err := c.Ledger.Validate(); err != nil {
		return err
	}
	return c.Matching.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// AnkiConfig holds flashcard sink configuration.
type AnkiConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	Deck           string        `yaml:"deck"`
	AllowDuplicate bool          `yaml:"allow_duplicate"`
	AllowReexport  bool          `yaml:"allow_reexport"`
	Timeout        time.Duration `yaml:"timeout"`
}

// Validate validates the Anki configuration.
func (c *AnkiConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required),
		validation.Field(&c.Deck, validation.Required),
	)
}

// ModelConfig holds language-model endpoint configuration.
type ModelConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	APIKey    string        `yaml:"api_key"`
	Name      string        `yaml:"name"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// Validate validates the model configuration.
func (c *ModelConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.MaxTokens, validation.Min(0)),
	)
}

// PromptConfig holds the optional system prompt override.
type PromptConfig struct {
	Path string `yaml:"path"`
}

// LedgerConfig holds export ledger database configuration.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the ledger configuration.
func (c *LedgerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// MatchingConfig tunes the entry-matching heuristics.
type MatchingConfig struct {
	FuzzyThreshold        float64 `yaml:"fuzzy_threshold"`
	MinSignificantWordLen int     `yaml:"min_significant_word_len"`
	HarvestOverscan       int     `yaml:"harvest_overscan"`
	DefinitionWrapLines   int     `yaml:"definition_wrap_lines"`
}

// Validate validates the matching configuration.
func (c *MatchingConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.FuzzyThreshold, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.MinSignificantWordLen, validation.Min(0)),
		validation.Field(&c.HarvestOverscan, validation.Min(0)),
		validation.Field(&c.DefinitionWrapLines, validation.Min(0)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8090,
			},
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Anki: AnkiConfig{
			Endpoint:       "http://localhost:8765",
			Deck:           "English Vocabulary",
			AllowDuplicate: true,
			Timeout:        10 * time.Second,
		},
		Model: ModelConfig{
			Endpoint:  "https://api.openai.com/v1/chat/completions",
			Name:      "gpt-4o-mini",
			Timeout:   45 * time.Second,
			MaxTokens: 4096,
		},
		Ledger: LedgerConfig{
			Path: "./laguz.db",
		},
		Matching: MatchingConfig{
			FuzzyThreshold:        0.5,
			MinSignificantWordLen: 2,
			HarvestOverscan:       10,
			DefinitionWrapLines:   4,
		},
	}
}
