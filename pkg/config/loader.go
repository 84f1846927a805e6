package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources. configPath may
// name a YAML config file explicitly; when empty, common locations are
// tried and silently skipped if absent.
//
// Malformed numeric environment variables do not fail the load: the
// default is kept and a warning is logged. Only a missing API key is
// fatal.
func Load(configPath string) (*Settings, error) {
	cfg := Defaults()

	// A .env file in the working directory feeds the environment layer.
	// Absence is not an error.
	_ = godotenv.Load()

	if filePath := discoverConfigFile(configPath); filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// explicit argument, GROQCHAT_CONFIG env var, ./config.yaml,
// /etc/groqchat/config.yaml. Returns empty string if none exists.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if envPath := os.Getenv("GROQCHAT_CONFIG"); envPath != "" {
		return envPath
	}
	for _, path := range []string{"config.yaml", "/etc/groqchat/config.yaml"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadYAMLFile reads and parses a YAML file into the Settings struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to settings fields.
// Numeric variables that fail to parse keep the current value; the
// failure is logged as a warning rather than escalated.
func applyEnvOverrides(cfg *Settings) {
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("GROQ_DEFAULT_MODEL"); v != "" {
		cfg.DefaultModel = v
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		setInt(&cfg.Port, "PORT", v)
	}
	if v := os.Getenv("DEBUG"); v != "" {
		cfg.Debug = v
	}
	if v := os.Getenv("MAX_MESSAGE_LENGTH"); v != "" {
		setInt(&cfg.MaxMessageLength, "MAX_MESSAGE_LENGTH", v)
	}
	if v := os.Getenv("DEFAULT_MAX_TOKENS"); v != "" {
		setInt(&cfg.DefaultMaxTokens, "DEFAULT_MAX_TOKENS", v)
	}
	if v := os.Getenv("DEFAULT_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DefaultTemperature = f
		} else {
			slog.Warn("ignoring malformed environment variable",
				"var", "DEFAULT_TEMPERATURE", "value", v)
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		} else {
			slog.Warn("ignoring malformed environment variable",
				"var", "REQUEST_TIMEOUT", "value", v)
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitOrigins(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// setInt parses v into *dst, keeping the current value and logging a
// warning on parse failure.
func setInt(dst *int, name, v string) {
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring malformed environment variable", "var", name, "value", v)
		return
	}
	*dst = n
}

// splitOrigins parses a comma-separated origin list, trimming whitespace
// and dropping empty entries.
func splitOrigins(v string) []string {
	var origins []string
	for _, o := range strings.Split(v, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// validate checks the loaded settings for fatal problems.
func (s *Settings) validate() error {
	if strings.TrimSpace(s.APIKey) == "" {
		return &ConfigurationError{
			Field:   "GROQ_API_KEY",
			Message: "a Groq API key is required",
		}
	}
	if s.Port < 1 || s.Port > 65535 {
		return &ConfigurationError{
			Field:   "PORT",
			Message: fmt.Sprintf("invalid port number %d", s.Port),
		}
	}
	if s.DefaultTemperature < 0.0 || s.DefaultTemperature > 2.0 {
		return &ConfigurationError{
			Field:   "DEFAULT_TEMPERATURE",
			Message: fmt.Sprintf("default temperature %v out of range [0.0, 2.0]", s.DefaultTemperature),
		}
	}
	return nil
}
