// Package api defines the wire types for the chat endpoint and the
// request validation that turns a raw ChatRequest into a normalized one.
//
// Validation is a pure function of the request, the configured limits,
// and the model registry. It short-circuits on the first failure and
// reports it as a ValidationError with a stable machine-readable reason.
package api
