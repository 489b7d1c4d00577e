package tomtom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envWith(key, value string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		if name == key {
			return value, true
		}
		return "", false
	}
}

func TestBuildParamsAPIKey(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		lookupEnv func(string) (string, bool)
		want      string
		wantErr   error
	}{
		{
			name:      "explicit key",
			apiKey:    "explicit-key",
			lookupEnv: noEnv,
			want:      "explicit-key",
		},
		{
			name:      "env fallback",
			lookupEnv: envWith(EnvAPIKey, "env-key"),
			want:      "env-key",
		},
		{
			name:      "explicit takes precedence over env",
			apiKey:    "explicit-key",
			lookupEnv: envWith(EnvAPIKey, "env-key"),
			want:      "explicit-key",
		},
		{
			name:      "missing everywhere",
			lookupEnv: noEnv,
			wantErr:   ErrMissingAPIKey,
		},
		{
			name:      "empty env value",
			lookupEnv: envWith(EnvAPIKey, ""),
			wantErr:   ErrMissingAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := buildParams(paramOptions{apiKey: tt.apiKey, lookupEnv: tt.lookupEnv})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.APIKey)
			assert.Equal(t, CountrySet, params.CountrySet)
		})
	}
}

func TestBuildParamsLimit(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{name: "unset defaults to max", limit: nil, want: MaxLimit},
		{name: "in range passes through", limit: intPtr(25), want: 25},
		{name: "lower bound", limit: intPtr(1), want: 1},
		{name: "upper bound", limit: intPtr(100), want: 100},
		{name: "zero clamps to lower bound", limit: intPtr(0), want: 1},
		{name: "negative clamps to lower bound", limit: intPtr(-7), want: 1},
		{name: "too large clamps to upper bound", limit: intPtr(5000), want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := buildParams(paramOptions{apiKey: "key", limit: tt.limit, lookupEnv: noEnv})
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.Limit)
		})
	}
}

func TestParamsValues(t *testing.T) {
	params, err := buildParams(paramOptions{apiKey: "abc", lookupEnv: noEnv})
	require.NoError(t, err)

	values := params.values()
	assert.Equal(t, "abc", values.Get("key"))
	assert.Equal(t, "NL", values.Get("countrySet"))
	assert.Equal(t, "100", values.Get("limit"))
}
