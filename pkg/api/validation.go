package api

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Hard bounds on request parameters, independent of configuration.
const (
	MinMaxTokens = 1
	MaxMaxTokens = 4096

	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// ValidationLimits holds the configurable limits and defaults applied
// during request normalization.
type ValidationLimits struct {
	MaxMessageLength   int
	DefaultModel       string
	DefaultMaxTokens   int
	DefaultTemperature float64
}

// ModelSet is the registry lookup the validator needs to check the
// model field. Satisfied by models.Registry.
type ModelSet interface {
	Contains(id string) bool
}

// ValidateChatRequest normalizes and validates a raw chat request.
//
// Normalization substitutes configured defaults for absent optional
// fields; validation then checks each field in order: message, model,
// max_tokens, temperature. The first failure is returned and no further
// fields are examined. On success the returned request has all four
// fields populated and the input is left unmodified.
func ValidateChatRequest(raw *ChatRequest, limits ValidationLimits, models ModelSet) (*ChatRequest, *ValidationError) {
	req := *raw

	// Message: trim, then check for emptiness and length. Length is
	// counted in characters, not bytes, so multi-byte input is not
	// penalized.
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return nil, NewValidationError("message", ReasonEmpty, "message must not be empty")
	}
	if n := utf8.RuneCountInString(req.Message); n > limits.MaxMessageLength {
		return nil, NewValidationError("message", ReasonTooLong,
			fmt.Sprintf("message exceeds maximum length of %d characters", limits.MaxMessageLength))
	}

	// Model: default, then membership check against the registry.
	if req.Model == "" {
		req.Model = limits.DefaultModel
	}
	if !models.Contains(req.Model) {
		return nil, NewValidationError("model", ReasonUnknownModel,
			fmt.Sprintf("model %q is not available", req.Model))
	}

	// MaxTokens: default, then range check.
	if req.MaxTokens == nil {
		mt := limits.DefaultMaxTokens
		req.MaxTokens = &mt
	}
	if *req.MaxTokens < MinMaxTokens || *req.MaxTokens > MaxMaxTokens {
		return nil, NewValidationError("max_tokens", ReasonOutOfRange,
			fmt.Sprintf("max_tokens must be between %d and %d", MinMaxTokens, MaxMaxTokens))
	}

	// Temperature: default, then range check.
	if req.Temperature == nil {
		temp := limits.DefaultTemperature
		req.Temperature = &temp
	}
	if *req.Temperature < MinTemperature || *req.Temperature > MaxTemperature {
		return nil, NewValidationError("temperature", ReasonOutOfRange,
			fmt.Sprintf("temperature must be between %.1f and %.1f", MinTemperature, MaxTemperature))
	}

	return &req, nil
}
