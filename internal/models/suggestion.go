package models

// Suggestion is one entry of the autocomplete list.
type Suggestion struct {
	Label  string  `json:"label" validate:"max=200"`
	Value  string  `json:"value"`
	Rating float64 `json:"rating"`
}

// SuggestResponse is the payload of the JSON API city search.
type SuggestResponse struct {
	Term    string       `json:"term"`
	Matches []Suggestion `json:"matches"`
	Peds    int          `json:"peds"`
}
