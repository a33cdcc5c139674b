// Package config loads runtime settings and captures the environment
// snapshot the rest of the agent consumes.
package config

import "time"

// Config holds the tunable settings for a review run. Values come from an
// optional iar.yaml plus IAR_-prefixed environment overrides; the required
// per-run inputs (repository, number, tokens) come from the environment
// Snapshot instead.
type Config struct {
	Model     ModelConfig     `mapstructure:"model"`
	Command   CommandConfig   `mapstructure:"command"`
	Review    ReviewConfig    `mapstructure:"review"`
	Redaction RedactionConfig `mapstructure:"redaction"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ModelConfig configures the text-generation backend.
type ModelConfig struct {
	// Backend selects the generator: "vertex" calls Vertex AI, "static"
	// posts a canned review without a model call (pipeline dry runs).
	Backend string `mapstructure:"backend"`

	// Name is the Vertex AI model identifier.
	Name string `mapstructure:"name"`

	// Temperature is the sampling temperature passed to the backend.
	Temperature float32 `mapstructure:"temperature"`

	// MaxOutputTokens caps the response length. Zero lets the backend decide.
	MaxOutputTokens int32 `mapstructure:"maxOutputTokens"`
}

// CommandConfig configures host CLI subprocess execution.
type CommandConfig struct {
	// Timeout bounds a single gh/glab invocation. Zero disables the bound.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ReviewConfig configures the review pipeline itself.
type ReviewConfig struct {
	// MaxDiffBytes truncates the diff sent to the model. Zero disables
	// truncation.
	MaxDiffBytes int `mapstructure:"maxDiffBytes"`

	// Instructions optionally replaces the built-in reviewer instruction.
	Instructions string `mapstructure:"instructions"`
}

// RedactionConfig controls secret redaction of the prompt.
type RedactionConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format is "text" or "json"; empty picks based on whether stderr is
	// a terminal.
	Format string `mapstructure:"format"`
}
