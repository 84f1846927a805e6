// Package config provides process configuration for the groqchat service.
//
// Settings are loaded once at startup with a layered approach:
//  1. Built-in defaults
//  2. Optional .env file in the working directory
//  3. Optional YAML config file (explicit path, ./config.yaml, /etc/groqchat/config.yaml)
//  4. Environment variable overrides
//  5. Validation
//
// The resulting Settings value is immutable for the process lifetime.
package config

import "time"

// Settings holds all configuration for the service.
type Settings struct {
	// Groq API access.
	APIKey       string `yaml:"api_key"`
	DefaultModel string `yaml:"default_model"`

	// HTTP server.
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Debug string `yaml:"debug"`

	// Chat request limits and defaults.
	MaxMessageLength   int     `yaml:"max_message_length"`
	DefaultMaxTokens   int     `yaml:"default_max_tokens"`
	DefaultTemperature float64 `yaml:"default_temperature"`

	// Outbound provider call bound.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// CORS. A single "*" entry allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`

	LogLevel string `yaml:"log_level"`
}

// Defaults returns Settings with all default values filled in.
// APIKey has no default; it must come from the environment or config file.
func Defaults() Settings {
	return Settings{
		DefaultModel:       "llama-3.1-8b-instant",
		Host:               "0.0.0.0",
		Port:               8000,
		MaxMessageLength:   4000,
		DefaultMaxTokens:   1024,
		DefaultTemperature: 0.7,
		RequestTimeout:     30 * time.Second,
		AllowedOrigins:     []string{"*"},
		LogLevel:           "INFO",
	}
}

// AllowsAllOrigins reports whether CORS is configured as a wildcard.
func (s *Settings) AllowsAllOrigins() bool {
	for _, o := range s.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// ConfigurationError reports a fatal configuration problem. The process
// must not start when Load returns one.
type ConfigurationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return e.Field + ": " + e.Message
}
