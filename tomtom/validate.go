package tomtom

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// schemaValidator checks decoded responses against the struct tags in
// types.go. One instance is enough; the validator caches struct metadata.
var schemaValidator = validator.New(validator.WithRequiredStructEnabled())

// decodeSearchResponse parses and validates a raw response body. Any decode
// or shape failure comes back as a ValidationError.
func decodeSearchResponse(body []byte) (*searchResponse, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ValidationError{Err: err}
	}

	if err := schemaValidator.Struct(&resp); err != nil {
		return nil, &ValidationError{Err: err}
	}

	return &resp, nil
}
