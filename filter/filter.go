// Package filter compiles boolean expressions over address results using the
// expr language, so CLI users can narrow search output without re-querying.
package filter

import (
	"strings"

	"github.com/expr-lang/expr"

	"github.com/geoapi-tools/ttsearch/tomtom"
)

// Filter reports whether an address result should be kept.
type Filter func(tomtom.Result) bool

// Compile turns an expression like `Municipality == "Amsterdam"` into a
// Filter. Optional result fields are exposed as plain strings (empty when
// absent) plus Has* booleans to distinguish absent from empty.
func Compile(expression string) (Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return func(result tomtom.Result) bool {
		output, err := expr.Run(program, buildEnv(result))
		if err != nil {
			return false
		}
		keep, ok := output.(bool)
		return ok && keep
	}, nil
}

// Apply keeps the results matching the filter, preserving upstream order
func Apply(results []tomtom.Result, keep Filter) []tomtom.Result {
	if keep == nil {
		return results
	}
	filtered := make([]tomtom.Result, 0, len(results))
	for _, result := range results {
		if keep(result) {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// buildEnv flattens a result into the expression environment
func buildEnv(result tomtom.Result) map[string]any {
	return map[string]any{
		"ID":              result.ID,
		"CountryCode":     result.CountryCode,
		"Country":         result.Country,
		"FreeformAddress": result.FreeformAddress,
		"StreetNumber":    deref(result.StreetNumber),
		"Municipality":    deref(result.Municipality),
		"HasStreetNumber": result.StreetNumber != nil,
		"HasMunicipality": result.Municipality != nil,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
