package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoapi-tools/ttsearch/tomtom"
)

func strPtr(s string) *string { return &s }

func sampleResults() []tomtom.Result {
	return []tomtom.Result{
		{
			ID:              "pad-1",
			StreetNumber:    strPtr("1"),
			Municipality:    strPtr("Amsterdam"),
			CountryCode:     "NL",
			Country:         "Netherlands",
			FreeformAddress: "Dam 1, Amsterdam",
		},
		{
			ID:              "str-1",
			Municipality:    strPtr("Rotterdam"),
			CountryCode:     "NL",
			Country:         "Netherlands",
			FreeformAddress: "Coolsingel, Rotterdam",
		},
		{
			ID:              "str-2",
			CountryCode:     "NL",
			Country:         "Netherlands",
			FreeformAddress: "Kalverstraat, Amsterdam",
		},
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{name: "empty", expression: ""},
		{name: "whitespace only", expression: "   "},
		{name: "syntax error", expression: "Municipality =="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expression)
			require.Error(t, err)
			var compErr *CompilationError
			assert.ErrorAs(t, err, &compErr)
		})
	}
}

func TestNonBooleanExpressionDropsEverything(t *testing.T) {
	// Undefined variables defer the boolean check to evaluation time; a
	// filter that fails to evaluate keeps nothing.
	keep, err := Compile(`Municipality`)
	require.NoError(t, err)
	assert.Empty(t, Apply(sampleResults(), keep))
}

func TestFilterByMunicipality(t *testing.T) {
	keep, err := Compile(`Municipality == "Amsterdam"`)
	require.NoError(t, err)

	filtered := Apply(sampleResults(), keep)
	require.Len(t, filtered, 1)
	assert.Equal(t, "pad-1", filtered[0].ID)
}

func TestFilterDistinguishesAbsentFields(t *testing.T) {
	keep, err := Compile(`!HasMunicipality`)
	require.NoError(t, err)

	filtered := Apply(sampleResults(), keep)
	require.Len(t, filtered, 1)
	assert.Equal(t, "str-2", filtered[0].ID)
}

func TestFilterStringHelpers(t *testing.T) {
	keep, err := Compile(`FreeformAddress contains "Kalverstraat"`)
	require.NoError(t, err)

	filtered := Apply(sampleResults(), keep)
	require.Len(t, filtered, 1)
	assert.Equal(t, "str-2", filtered[0].ID)
}

func TestApplyPreservesOrder(t *testing.T) {
	keep, err := Compile(`CountryCode == "NL"`)
	require.NoError(t, err)

	filtered := Apply(sampleResults(), keep)
	require.Len(t, filtered, 3)
	assert.Equal(t, "pad-1", filtered[0].ID)
	assert.Equal(t, "str-1", filtered[1].ID)
	assert.Equal(t, "str-2", filtered[2].ID)
}

func TestApplyNilFilterKeepsEverything(t *testing.T) {
	results := sampleResults()
	assert.Equal(t, results, Apply(results, nil))
}
