// Package provider abstracts the external LLM completion backend.
//
// The gateway contract is intentionally small: one synchronous
// completion call per invocation, no retries, no streaming. Failures
// are classified into three error types (AuthError, RequestError,
// UnavailableError) that the transport layer maps onto HTTP statuses.
package provider
