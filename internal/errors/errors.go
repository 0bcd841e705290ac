// Package errors provides custom error types and utilities for stardrain.
//
// This package provides error handling for:
// - GitHub API request errors
// - Configuration errors
// - Credential validation errors
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error categories for stardrain operations
var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrRateLimited   = errors.New("rate limited")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNetwork       = errors.New("network error")
	ErrConfiguration = errors.New("configuration error")
)

// RequestError is returned by the transport when the API answers with a
// non-2xx status. Message carries the human readable text from the response.
type RequestError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d %s %s", e.StatusCode, e.Method, e.URL)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound:
		return errors.Is(target, ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Is(target, ErrUnauthorized)
	case http.StatusTooManyRequests:
		return errors.Is(target, ErrRateLimited)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.Is(target, ErrInvalidInput)
	default:
		return false
	}
}

// NewRequestError creates a new request error
func NewRequestError(statusCode int, method, url, message string) *RequestError {
	return &RequestError{
		StatusCode: statusCode,
		Method:     method,
		URL:        url,
		Message:    message,
	}
}

// NewNetworkError wraps a transport failure that never produced a response.
func NewNetworkError(method, url string, err error) *RequestError {
	return &RequestError{
		Method:  method,
		URL:     url,
		Message: err.Error(),
		Err:     errors.Join(ErrNetwork, err),
	}
}

// StatusCode returns the HTTP status carried by err, or 0 when there is none.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// IsHTTPStatus checks if an error represents a specific HTTP status
func IsHTTPStatus(err error, statusCode int) bool {
	return StatusCode(err) == statusCode
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrConfiguration)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// IsConfiguration checks if an error is configuration-related
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// ValidationError represents a rejected input value. Message is shown to the
// user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidInput)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidation checks if an error is validation-related
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound checks if an error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if an error represents an authorization failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited checks if the API refused the request because of rate limits
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNetwork checks if an error is network-related
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
