package usecases

import (
	"sort"
	"strings"
)

// suggestedRates is the reference daily rental rate per location.
var suggestedRates = map[string]float64{
	"Springfield, IL": 145,
	"Chicago, IL":     185,
	"Oak Park, IL":    165,
	"Naperville, IL":  170,
	"Peoria, IL":      140,
}

type PriceSuggestion struct {
	Location    string  `json:"location"`
	PricePerDay float64 `json:"pricePerDay"`
}

// PriceSuggestions lists every known location, sorted by name.
func PriceSuggestions() []PriceSuggestion {
	out := make([]PriceSuggestion, 0, len(suggestedRates))
	for loc, price := range suggestedRates {
		out = append(out, PriceSuggestion{Location: loc, PricePerDay: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// SuggestedPrice matches location case-insensitively, ignoring surrounding spaces.
func SuggestedPrice(location string) (PriceSuggestion, bool) {
	want := strings.TrimSpace(location)
	for loc, price := range suggestedRates {
		if strings.EqualFold(loc, want) {
			return PriceSuggestion{Location: loc, PricePerDay: price}, true
		}
	}
	return PriceSuggestion{}, false
}
