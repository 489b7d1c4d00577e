package tomtom

import (
	"net/url"
	"os"
	"strconv"
)

const (
	// EnvAPIKey is the environment variable consulted when no explicit API key
	// option is given.
	EnvAPIKey = "TOMTOM_API_KEY"

	// CountrySet restricts every search to Dutch addresses. This is a policy
	// constant, not a configuration knob.
	CountrySet = "NL"

	// MaxLimit is the largest result count the search endpoint supports per
	// request, and the default when no limit option is given.
	MaxLimit = 100
)

// Params holds the resolved query parameters sent with every lookup.
// Immutable once built; the limit is always inside [1, MaxLimit].
type Params struct {
	APIKey     string
	CountrySet string
	Limit      int
}

// paramOptions collects the raw inputs to BuildParams. A nil Limit means
// "not set", which is distinct from an out-of-range value.
type paramOptions struct {
	apiKey    string
	limit     *int
	lookupEnv func(string) (string, bool)
}

// buildParams resolves the API key and result limit. The key comes from the
// explicit option first, then from TOMTOM_API_KEY; if neither yields a
// non-empty string it fails with ErrMissingAPIKey. An unset limit defaults to
// MaxLimit, an out-of-range limit is clamped to the nearest bound.
func buildParams(opts paramOptions) (Params, error) {
	lookupEnv := opts.lookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	apiKey := opts.apiKey
	if apiKey == "" {
		apiKey, _ = lookupEnv(EnvAPIKey)
	}
	if apiKey == "" {
		return Params{}, ErrMissingAPIKey
	}

	limit := MaxLimit
	if opts.limit != nil {
		limit = clampLimit(*opts.limit)
	}

	return Params{
		APIKey:     apiKey,
		CountrySet: CountrySet,
		Limit:      limit,
	}, nil
}

// clampLimit forces a caller-supplied limit into [1, MaxLimit]
func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// values renders the params as the query string for one request
func (p Params) values() url.Values {
	return url.Values{
		"key":        {p.APIKey},
		"countrySet": {p.CountrySet},
		"limit":      {strconv.Itoa(p.Limit)},
	}
}
