// Package tomtom provides a client for the TomTom fuzzy search API,
// restricted to Dutch addresses.
//
// The interesting part is how the client copes with upstream rate limiting.
// A lookup that hits HTTP 429 is not failed and not immediately retried;
// instead the client enters a draining state: the lookup is queued, a single
// delay timer is armed, and every lookup submitted while the timer is pending
// joins the same batch. When the delay elapses the whole batch is re-issued
// concurrently and each caller gets its own independent outcome. There is
// exactly one retry wave per rate-limit event; a 429 during the wave is
// surfaced to that caller as ErrRateLimited.
//
// # Usage
//
// One-shot lookup:
//
//	results, err := tomtom.Search(ctx, "Dam 1 Amsterdam")
//
// Long-lived client:
//
//	client, err := tomtom.NewClient(logger,
//		tomtom.WithAPIKey("your-api-key"),
//		tomtom.WithLimit(25),
//		tomtom.WithRetryDelay(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	results, err := client.Lookup(ctx, "Dam 1 Amsterdam")
//
// The API key falls back to the TOMTOM_API_KEY environment variable when not
// set explicitly.
//
// # Error Handling
//
// The package distinguishes five error kinds:
//
//   - ErrMissingAPIKey: no key via option or environment
//   - ValidationError: response body does not match the documented shape
//   - ErrRateLimited: 429 during the retry wave (never retried twice)
//   - TransportError: any other transport failure, with status classification
//   - ErrClientClosed: lookup was queued when Close was called
//
// Only rate limiting is ever recovered from, and only once per event; every
// other error propagates on first occurrence.
package tomtom
