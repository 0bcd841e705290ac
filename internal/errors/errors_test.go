package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestRequestError(t *testing.T) {
	err := NewRequestError(404, "DELETE", "/user/starred/octo/gone", "Not Found")

	if err.Error() != "Not Found" {
		t.Errorf("Expected error message %q, got %q", "Not Found", err.Error())
	}

	if !IsNotFound(err) {
		t.Error("Expected RequestError with 404 to be identified as NotFound")
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected RequestError with 404 to match ErrNotFound")
	}
}

func TestRequestError_NoMessage(t *testing.T) {
	err := NewRequestError(502, "GET", "/user/starred", "")

	expectedMsg := "HTTP 502 GET /user/starred"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestRequestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadRequest, ErrInvalidInput},
		{http.StatusUnprocessableEntity, ErrInvalidInput},
	}

	for _, test := range tests {
		err := NewRequestError(test.statusCode, "GET", "/test", "test error")
		if !errors.Is(err, test.expected) {
			t.Errorf("Expected HTTP %d to map to %v", test.statusCode, test.expected)
		}
	}
}

func TestRequestError_ServerErrorMatchesNothing(t *testing.T) {
	err := NewRequestError(http.StatusInternalServerError, "GET", "/test", "boom")

	for _, sentinel := range []error{ErrNotFound, ErrUnauthorized, ErrRateLimited, ErrInvalidInput} {
		if errors.Is(err, sentinel) {
			t.Errorf("Expected HTTP 500 not to match %v", sentinel)
		}
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("GET", "https://api.github.com/user", cause)

	if !IsNetwork(err) {
		t.Error("Expected network error to be identified as network error")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected network error to wrap the underlying cause")
	}
	if StatusCode(err) != 0 {
		t.Errorf("Expected status 0 for network error, got %d", StatusCode(err))
	}
}

func TestStatusCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("fetching page: %w", NewRequestError(401, "GET", "/user/starred", "Bad credentials"))

	if StatusCode(err) != 401 {
		t.Errorf("Expected status 401, got %d", StatusCode(err))
	}
	if !IsHTTPStatus(err, 401) {
		t.Error("Expected IsHTTPStatus to see through wrapping")
	}
	if !IsUnauthorized(err) {
		t.Error("Expected wrapped 401 to be unauthorized")
	}
	if StatusCode(errors.New("plain")) != 0 {
		t.Error("Expected status 0 for a plain error")
	}
}

func TestConfigurationError(t *testing.T) {
	cause := errors.New("must be positive")
	err := NewConfigurationError("per_page", "invalid page size", cause)

	expectedMsg := "configuration error in field 'per_page': invalid page size"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	if !IsConfiguration(err) {
		t.Error("Expected ConfigurationError to be identified as configuration error")
	}

	if !errors.Is(err, cause) {
		t.Error("Expected ConfigurationError to wrap the underlying cause")
	}

	noField := NewConfigurationError("", "unreadable", nil)
	if noField.Error() != "configuration error: unreadable" {
		t.Errorf("Unexpected message %q", noField.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("token", "Token is required")

	if err.Error() != "Token is required" {
		t.Errorf("Expected error message %q, got %q", "Token is required", err.Error())
	}

	if !IsValidation(err) {
		t.Error("Expected ValidationError to be identified as validation error")
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected ValidationError to match ErrInvalidInput")
	}
}
