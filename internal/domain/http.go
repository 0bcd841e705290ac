package domain

import (
	"context"
	"net/http"
)

// RequestParams fills a route template such as "DELETE /user/starred/{owner}/{repo}".
type RequestParams struct {
	Path    map[string]string
	Query   map[string]string
	Headers map[string]string
}

// APIResponse is a successful (2xx) API answer.
type APIResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// APIClient issues one authenticated API call. Non-2xx answers come back as
// *errors.RequestError.
type APIClient interface {
	Request(ctx context.Context, route string, params RequestParams) (*APIResponse, error)
}

// APIClientFactory builds an authenticated client for a token.
type APIClientFactory interface {
	NewClient(token string) APIClient
}
