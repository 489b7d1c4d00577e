package tomtom

// searchResponse mirrors the documented shape of the fuzzy search endpoint:
// a summary block plus an array of result records discriminated by type.
type searchResponse struct {
	Summary searchSummary  `json:"summary" validate:"required"`
	Results []searchResult `json:"results" validate:"dive"`
}

// searchSummary contains result metadata returned with every response
type searchSummary struct {
	Query        string `json:"query"`
	QueryType    string `json:"queryType"`
	NumResults   int    `json:"numResults"`
	TotalResults int    `json:"totalResults"`
	Offset       int    `json:"offset"`
	QueryTime    int    `json:"queryTime"`
}

// searchResult is a single raw record from the results array
type searchResult struct {
	Type     string        `json:"type" validate:"required"`
	ID       string        `json:"id" validate:"required"`
	Score    float64       `json:"score"`
	Address  searchAddress `json:"address" validate:"required"`
	Position *position     `json:"position"`
}

// searchAddress is the address group of a result record. Fields that the API
// omits for some result types are pointers so absence survives decoding.
type searchAddress struct {
	StreetNumber    *string `json:"streetNumber"`
	StreetName      *string `json:"streetName"`
	Municipality    *string `json:"municipality"`
	PostalCode      *string `json:"postalCode"`
	CountryCode     string  `json:"countryCode" validate:"required"`
	Country         string  `json:"country" validate:"required"`
	FreeformAddress string  `json:"freeformAddress" validate:"required"`
}

type position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Result is one address match in upstream order. Optional fields are nil when
// the API did not return them, which is distinct from an empty string.
type Result struct {
	ID              string  `json:"id"`
	StreetNumber    *string `json:"streetNumber,omitempty"`
	CountryCode     string  `json:"countryCode"`
	Country         string  `json:"country"`
	FreeformAddress string  `json:"freeformAddress"`
	Municipality    *string `json:"municipality,omitempty"`
}

// toResult extracts the stable output shape from a raw result record
func toResult(raw searchResult) Result {
	return Result{
		ID:              raw.ID,
		StreetNumber:    raw.Address.StreetNumber,
		CountryCode:     raw.Address.CountryCode,
		Country:         raw.Address.Country,
		FreeformAddress: raw.Address.FreeformAddress,
		Municipality:    raw.Address.Municipality,
	}
}
