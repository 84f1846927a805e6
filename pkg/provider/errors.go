package provider

// AuthError indicates the backend rejected the configured credential.
// Non-retryable; the deployment is misconfigured.
type AuthError struct {
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string { return "provider auth: " + e.Message }

// RequestError indicates the backend rejected the request itself.
// Non-retryable without changing the request.
type RequestError struct {
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string { return "provider request: " + e.Message }

// UnavailableError indicates the backend could not be reached or failed
// server-side (network error, timeout, 5xx, rate limit). Transient;
// callers may retry, this service does not.
type UnavailableError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string { return "provider unavailable: " + e.Message }

// Unwrap exposes the underlying cause for errors.Is checks.
func (e *UnavailableError) Unwrap() error { return e.Err }
