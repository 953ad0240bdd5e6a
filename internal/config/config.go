package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Extraction ExtractionConfig `mapstructure:"extraction" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                  int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel              string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gt=0"`
}

// RequestTimeout returns the per-request deadline applied by the HTTP layer.
func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// LLMConfig contains the remote completion settings.
// An empty GeminiAPIKey disables the remote path entirely.
type LLMConfig struct {
	GeminiAPIKey         string  `mapstructure:"gemini_api_key"`
	ModelName            string  `mapstructure:"model_name" validate:"required"`
	MaxRetries           int     `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds    int     `mapstructure:"retry_delay_seconds" validate:"gte=1"`
	TimeoutSeconds       int     `mapstructure:"timeout_seconds" validate:"gt=0"`
	MaxOutputTokens      int     `mapstructure:"max_output_tokens" validate:"gt=0"`
	Temperature          float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	RequestsPerMinute    int     `mapstructure:"requests_per_minute" validate:"gte=0"`
	ExtractionPromptPath string  `mapstructure:"extraction_prompt_path" validate:"omitempty,file"`
	PriorityPromptPath   string  `mapstructure:"priority_prompt_path" validate:"omitempty,file"`
}

// RemoteEnabled reports whether a credential for the remote service is configured.
func (c LLMConfig) RemoteEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Timeout is the upper bound for a single remote operation, retries included.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ExtractionConfig configures the local rule-based extractor.
type ExtractionConfig struct {
	VocabularyPath string `mapstructure:"vocabulary_path" validate:"omitempty,file"`
	Timezone       string `mapstructure:"timezone" validate:"omitempty,timezone"`
}

// Location resolves Timezone. An empty value maps to the host zone.
func (c ExtractionConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
