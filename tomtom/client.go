package tomtom

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBaseURL is the production search endpoint.
	DefaultBaseURL = "https://api.tomtom.com/search/2"

	// DefaultRetryDelay is how long the client waits after a 429 before
	// draining the queued lookups.
	DefaultRetryDelay = 5 * time.Second

	// drainConcurrency bounds how many queued lookups are re-issued at once
	drainConcurrency = 10
)

// Client performs address lookups against the TomTom fuzzy search API and
// absorbs upstream rate limiting. The first 429 puts the client into a
// draining state: the rate-limited lookup and every lookup submitted during
// the delay window are batched and re-issued together after the delay, each
// resolving independently. There is exactly one retry wave; a 429 during the
// wave surfaces as ErrRateLimited to that caller.
type Client struct {
	baseURL    string
	params     Params
	retryDelay time.Duration
	httpClient *http.Client
	logger     zerolog.Logger

	// mu guards the Idle/Draining transition. queue and timer are set and
	// cleared together: queue == nil exactly when timer == nil.
	mu     sync.Mutex
	queue  []*pendingLookup
	timer  *time.Timer
	closed bool
}

// lookupOutcome is the terminal result of one queued lookup
type lookupOutcome struct {
	results []Result
	err     error
}

// pendingLookup is a lookup deferred until the next drain. The done channel
// is buffered so the drain never blocks on a caller that gave up waiting.
type pendingLookup struct {
	ctx   context.Context
	query string
	done  chan lookupOutcome
}

// NewClient creates a new search client. The API key is resolved from options
// or the TOMTOM_API_KEY environment variable.
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	options := &clientOptions{
		baseURL:    DefaultBaseURL,
		retryDelay: DefaultRetryDelay,
		timeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(options)
	}

	params, err := buildParams(paramOptions{
		apiKey:    options.apiKey,
		limit:     options.limit,
		lookupEnv: options.lookupEnv,
	})
	if err != nil {
		return nil, err
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(options.baseURL, "/"),
		params:     params,
		retryDelay: options.retryDelay,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Search builds default params and executes a single lookup without any
// retry state. It is the one-shot counterpart of Client.Lookup.
func Search(ctx context.Context, query string, opts ...Option) ([]Result, error) {
	client, err := NewClient(zerolog.Nop(), opts...)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return client.searchOnce(ctx, query)
}

// Lookup searches for addresses matching the free-text query. Safe for
// concurrent use; each caller blocks only on its own result. If the upstream
// rate limit is hit, the lookup joins the current retry batch and resolves
// after the delay elapses.
func (c *Client) Lookup(ctx context.Context, query string) ([]Result, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClientClosed
	}
	if c.queue != nil {
		// Already draining: join the batch instead of re-triggering the limit.
		// The timer is not extended; delay counts from the first 429.
		pending := c.enqueueLocked(ctx, query)
		c.mu.Unlock()
		return c.await(ctx, pending)
	}
	c.mu.Unlock()

	results, err := c.searchOnce(ctx, query)
	if !errors.Is(err, ErrRateLimited) {
		return results, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClientClosed
	}
	pending := c.enqueueLocked(ctx, query)
	c.mu.Unlock()

	c.logger.Warn().
		Str("query", query).
		Dur("retry_delay", c.retryDelay).
		Msg("Rate limited, lookup queued for retry")

	return c.await(ctx, pending)
}

// Close cancels any pending retry timer and fails every queued lookup with
// ErrClientClosed. The client is unusable afterwards. Idempotent, and safe to
// call while a drain is in flight: only lookups still unresolved are failed.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	batch := c.queue
	c.queue = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	for _, pending := range batch {
		pending.done <- lookupOutcome{err: ErrClientClosed}
	}
	if len(batch) > 0 {
		c.logger.Debug().Int("rejected", len(batch)).Msg("Client closed with lookups still queued")
	}
}

// QueueDepth reports how many lookups are waiting for the next drain.
// Introspection for tests and diagnostics only.
func (c *Client) QueueDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Draining reports whether a retry delay is currently pending
func (c *Client) Draining() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue != nil
}

// enqueueLocked appends a lookup to the retry batch, creating the batch and
// arming the drain timer on the first rate-limit event. Caller holds mu.
func (c *Client) enqueueLocked(ctx context.Context, query string) *pendingLookup {
	pending := &pendingLookup{
		ctx:   ctx,
		query: query,
		done:  make(chan lookupOutcome, 1),
	}
	if c.queue == nil {
		c.queue = []*pendingLookup{pending}
		c.timer = time.AfterFunc(c.retryDelay, c.drain)
	} else {
		c.queue = append(c.queue, pending)
	}
	return pending
}

// await blocks until the lookup resolves or the caller's context is done.
// Abandoning a queued lookup affects neither its siblings nor the timer.
func (c *Client) await(ctx context.Context, pending *pendingLookup) ([]Result, error) {
	select {
	case outcome := <-pending.done:
		return outcome.results, outcome.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// drain re-issues every queued lookup once the delay has elapsed. Each lookup
// resolves with its own outcome; one failure does not affect siblings. A 429
// here is terminal for that lookup, there is never a second delay.
func (c *Client) drain() {
	c.mu.Lock()
	batch := c.queue
	c.queue = nil
	c.timer = nil
	c.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	c.logger.Info().Int("queued", len(batch)).Msg("Retry delay elapsed, draining queued lookups")

	var g errgroup.Group
	g.SetLimit(drainConcurrency)

	for _, pending := range batch {
		g.Go(func() error {
			results, err := c.searchOnce(pending.ctx, pending.query)
			pending.done <- lookupOutcome{results: results, err: err}
			return nil
		})
	}

	g.Wait()
}

// searchOnce issues exactly one request against the search endpoint and
// classifies the outcome: results, ErrRateLimited on 429, ValidationError on
// a malformed body, TransportError on anything else.
func (c *Client) searchOnce(ctx context.Context, query string) ([]Result, error) {
	requestURL := fmt.Sprintf("%s/search/%s.json?%s",
		c.baseURL, url.PathEscape(query), c.params.values().Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("query", query).Msg("Querying search endpoint")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	decoded, err := decodeSearchResponse(body)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(decoded.Results))
	for _, raw := range decoded.Results {
		results = append(results, toResult(raw))
	}
	return results, nil
}
