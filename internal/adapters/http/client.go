package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"stardrain/internal/domain"
	apperrors "stardrain/internal/errors"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"
	// DefaultAPIVersion is sent as X-GitHub-Api-Version on every request.
	DefaultAPIVersion = "2022-11-28"

	defaultTimeout = 30 * time.Second

	// Rate limiting configuration.
	defaultRequestsPerSecond = 10
	defaultBurst             = 20

	acceptGitHubJSON = "application/vnd.github+json"
	userAgent        = "stardrain"
)

// ClientOptions configures the transport.
type ClientOptions struct {
	BaseURL           string
	APIVersion        string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.APIVersion == "" {
		o.APIVersion = DefaultAPIVersion
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RequestsPerSecond <= 0 {
		o.RequestsPerSecond = defaultRequestsPerSecond
	}
	if o.Burst <= 0 {
		o.Burst = defaultBurst
	}
	return o
}

var (
	_ domain.APIClient        = (*Client)(nil)
	_ domain.APIClientFactory = (*Factory)(nil)
)

// Client is an authenticated GitHub API client built on resty with rate limiting.
type Client struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a client that sends token as a bearer credential on every request.
func NewClient(token string, opts ClientOptions, logger *slog.Logger) *Client {
	opts = opts.withDefaults()

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", acceptGitHubJSON).
		SetHeader("X-GitHub-Api-Version", opts.APIVersion).
		SetHeader("User-Agent", userAgent)
	if token != "" {
		client.SetAuthToken(token)
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst)

	// Add rate limiting middleware
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	// Add logging middleware
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "HTTP request",
			"method", req.Method,
			"url", req.URL,
		)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.DebugContext(resp.Request.Context(), "HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
		)
		return nil
	})

	return &Client{
		client:  client,
		limiter: limiter,
		logger:  logger,
	}
}

// Request issues one API call. route is "METHOD /path" where the path may
// contain {placeholders} filled from params.Path.
func (c *Client) Request(
	ctx context.Context,
	route string,
	params domain.RequestParams,
) (*domain.APIResponse, error) {
	method, path, err := parseRoute(route)
	if err != nil {
		return nil, err
	}

	req := c.client.R().SetContext(ctx)
	if len(params.Path) > 0 {
		req.SetPathParams(params.Path)
	}
	if len(params.Query) > 0 {
		req.SetQueryParams(params.Query)
	}
	if len(params.Headers) > 0 {
		req.SetHeaders(params.Headers)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, apperrors.NewNetworkError(method, path, err)
	}

	if !resp.IsSuccess() {
		reqErr := apperrors.NewRequestError(
			resp.StatusCode(),
			method,
			resp.Request.URL,
			errorMessage(resp.StatusCode(), resp.Body()),
		)
		return nil, reqErr
	}

	return &domain.APIResponse{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

func parseRoute(route string) (string, string, error) {
	method, path, ok := strings.Cut(strings.TrimSpace(route), " ")
	path = strings.TrimSpace(path)
	if !ok || method == "" || !strings.HasPrefix(path, "/") {
		return "", "", fmt.Errorf("invalid route %q: expected \"METHOD /path\"", route)
	}
	return strings.ToUpper(method), path, nil
}

// errorBody is the error shape of the GitHub REST API.
type errorBody struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}

func errorMessage(status int, body []byte) string {
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil && eb.Message != "" {
		return eb.Message
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", status)
}

// Factory builds authenticated clients sharing one set of options.
type Factory struct {
	opts   ClientOptions
	logger *slog.Logger
}

// NewFactory creates a client factory.
func NewFactory(opts ClientOptions, logger *slog.Logger) *Factory {
	return &Factory{opts: opts, logger: logger}
}

// NewClient implements domain.APIClientFactory.
func (f *Factory) NewClient(token string) domain.APIClient {
	return NewClient(token, f.opts, f.logger)
}
