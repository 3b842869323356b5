// Package hsierrors defines the core's error taxonomy. Each type is
// surfaced, logged, or retried according to its own rules rather than
// a shared string-matched sentinel, so callers can branch with errors.As.
package hsierrors

import "fmt"

// ConfigError indicates missing or invalid required configuration,
// e.g. cloud credentials when upload is enabled. Fatal at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}

// SourceInitError indicates an adapter's initialize() call failed.
// Surfaced to the caller of Core.Start.
type SourceInitError struct {
	Source string
	Err    error
}

func (e *SourceInitError) Error() string {
	return fmt.Sprintf("source init error: %s: %v", e.Source, e.Err)
}

func (e *SourceInitError) Unwrap() error { return e.Err }

// SourceStreamError indicates a transient error on a single source's
// push stream. Logged; the source subscription is kept alive.
type SourceStreamError struct {
	Source string
	Err    error
}

func (e *SourceStreamError) Error() string {
	return fmt.Sprintf("source stream error: %s: %v", e.Source, e.Err)
}

func (e *SourceStreamError) Unwrap() error { return e.Err }

// InternalError is a guard-rail for unexpected conditions inside
// fusion/extraction. The offending tick is dropped and logged; the
// pipeline stays live.
type InternalError struct {
	Component string
	Err       error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in %s: %v", e.Component, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// --- Upload error taxonomy (§4.8, §7) ---

// SchemaValidationError is a permanent upload error (HTTP 400,
// code=schema_validation_failed). Never retried.
type SchemaValidationError struct {
	Detail string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %s", e.Detail)
}

// InvalidSignatureError is a permanent upload error (HTTP 401,
// code=invalid_signature). Never retried.
type InvalidSignatureError struct {
	Detail string
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid signature: %s", e.Detail)
}

// InvalidTenantError is a permanent upload error (HTTP 403,
// code=invalid_tenant). Never retried.
type InvalidTenantError struct {
	Detail string
}

func (e *InvalidTenantError) Error() string {
	return fmt.Sprintf("invalid tenant: %s", e.Detail)
}

// RateLimitExceededError is permanent for the current call (HTTP 429,
// code=rate_limit_exceeded). The caller may re-enqueue after RetryAfterS.
type RateLimitExceededError struct {
	RetryAfterS int
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded: retry after %ds", e.RetryAfterS)
}

// NetworkError is transient: any transport failure or 5xx response.
// Retried internally up to max_retries, then surfaced.
type NetworkError struct {
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("network error: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Permanent reports whether err is one of the non-retried upload errors.
func Permanent(err error) bool {
	switch err.(type) {
	case *SchemaValidationError, *InvalidSignatureError, *InvalidTenantError, *RateLimitExceededError:
		return true
	default:
		return false
	}
}
