package tomtom

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	apiKey     string
	limit      *int
	retryDelay time.Duration
	timeout    time.Duration
	httpClient *http.Client
	lookupEnv  func(string) (string, bool)
}

// WithAPIKey sets the API key explicitly, taking precedence over the
// TOMTOM_API_KEY environment variable.
func WithAPIKey(apiKey string) Option {
	return func(o *clientOptions) {
		o.apiKey = apiKey
	}
}

// WithLimit sets the maximum number of results per lookup. Values outside
// [1, MaxLimit] are clamped, not rejected.
func WithLimit(limit int) Option {
	return func(o *clientOptions) {
		o.limit = &limit
	}
}

// WithRetryDelay sets how long rate-limited lookups wait before the single
// retry wave.
func WithRetryDelay(delay time.Duration) Option {
	return func(o *clientOptions) {
		if delay > 0 {
			o.retryDelay = delay
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client, overriding WithTimeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithBaseURL overrides the production endpoint. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithEnvLookup replaces the environment lookup used for the API key
// fallback. Used by tests to avoid touching process state.
func WithEnvLookup(lookupEnv func(string) (string, bool)) Option {
	return func(o *clientOptions) {
		o.lookupEnv = lookupEnv
	}
}
