// Package debug provides category-based debug logging for groqchat.
//
// Two orthogonal controls:
//   - Categories (WHAT to debug): the DEBUG env var or config value.
//     "true" or "all" enables every category; otherwise a comma-separated
//     list selects specific ones.
//   - Levels (HOW MUCH detail): the LOG_LEVEL env var or config value.
//
// Usage:
//
//	debug.Log("provider", "completion call", "model", model)
//	if debug.Enabled("transport") { /* expensive formatting */ }
//
// Categories: transport, provider, config, validation, all.
package debug

import (
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// categories holds the set of enabled debug categories.
// Access is read-only after Init(), so no synchronization needed.
var categories map[string]bool

func init() {
	// Initialize from environment for immediate availability.
	// Re-initialized via Init() once config is loaded.
	categories = parseCategories(os.Getenv("DEBUG"))
}

// Init configures the debug system from config values. Environment
// variables take precedence over config.
func Init(configDebug, configLevel string) {
	debug := os.Getenv("DEBUG")
	if debug == "" {
		debug = configDebug
	}
	categories = parseCategories(debug)

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = configLevel
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})))
}

// Enabled reports whether debug output is active for the given category.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits a debug message for the given category.
// If the category is not enabled, this is a no-op.
func Log(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// ParseLevel converts a level string to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Truncate returns s truncated to maxLen characters, with "..." appended
// if truncated. Cuts on rune boundaries so multi-byte input stays valid
// UTF-8. Used to keep message bodies out of full log lines.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "false" {
		return m
	}
	// A bare boolean toggle enables everything.
	if s == "true" || s == "1" {
		m["all"] = true
		return m
	}
	for _, cat := range strings.Split(s, ",") {
		cat = strings.TrimSpace(cat)
		if cat != "" {
			m[cat] = true
		}
	}
	return m
}
