package providers

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes provider and selection failures.
type ErrorCode string

const (
	// CodeMissingCredential means the provider's credential env value is
	// absent or empty; checked before any network call.
	CodeMissingCredential ErrorCode = "missing_credential"

	// CodeHTTPError means the vendor returned a non-success HTTP status.
	CodeHTTPError ErrorCode = "http_error"

	// CodeUnsupportedProvider means a forced directive named an unknown provider.
	CodeUnsupportedProvider ErrorCode = "unsupported_provider"

	// CodeNoProviderAvailable means auto-selection exhausted every
	// credentialed candidate, or no candidate had a credential.
	CodeNoProviderAvailable ErrorCode = "no_provider_available"
)

// ProviderError is a structured error carrying the failing provider,
// an error code, and (for http_error) the vendor's status and body.
type ProviderError struct {
	// Provider that generated the error; empty for selection-level errors
	Provider ProviderID

	// Code is the error category
	Code ErrorCode

	// Message is the human-readable description
	Message string

	// StatusCode is the HTTP status code, when Code is http_error
	StatusCode int

	// Body is the vendor response body text, when Code is http_error
	Body string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	msg := e.Message
	if e.Provider != "" {
		msg = fmt.Sprintf("%s: %s", e.Provider, msg)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap implements error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new provider error
func NewProviderError(provider ProviderID, code ErrorCode, message string, statusCode int, cause error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// NewMissingCredentialError reports an absent credential for a provider.
// The env var name is included so operators know what to set.
func NewMissingCredentialError(provider ProviderID, envVar string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     CodeMissingCredential,
		Message:  fmt.Sprintf("credential not set (expected %s)", envVar),
	}
}

// NewHTTPError reports a non-success status from a vendor, carrying the
// status code and the raw response body text.
func NewHTTPError(provider ProviderID, statusCode int, body string) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Code:       CodeHTTPError,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

// ErrorCodeOf returns the ErrorCode of a provider error, or empty string
// for any other error (including raw transport errors).
func ErrorCodeOf(err error) ErrorCode {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Code
	}
	return ""
}

// IsMissingCredential checks whether an error is a missing_credential failure
func IsMissingCredential(err error) bool {
	return ErrorCodeOf(err) == CodeMissingCredential
}

// IsHTTPError checks whether an error is an http_error failure
func IsHTTPError(err error) bool {
	return ErrorCodeOf(err) == CodeHTTPError
}

// IsUnsupportedProvider checks whether an error is an unsupported_provider failure
func IsUnsupportedProvider(err error) bool {
	return ErrorCodeOf(err) == CodeUnsupportedProvider
}

// IsNoProviderAvailable checks whether an error is a no_provider_available failure
func IsNoProviderAvailable(err error) bool {
	return ErrorCodeOf(err) == CodeNoProviderAvailable
}
