package domain

// ParsedListing is the flat record the extractor produces from one
// publi24 page. Pointer fields are nil when the source markup did not
// carry the value or it could not be coerced to a number.
type ParsedListing struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Images      []string `json:"images"`

	Price    *float64 `json:"price"`
	Currency string   `json:"currency"`

	LocationRegion   string `json:"location_region"`
	LocationLocality string `json:"location_locality"`

	UsableAreaSqm *float64 `json:"usable_area_sqm"`
	YearBuilt     *int     `json:"year_built"`

	// Features is the flattened additionalProperty list, e.g.
	// {"Etaj": "Parter", "Numar camere": "3"}.
	Features map[string]string `json:"features"`
}

// HasLocationText reports whether there is enough address text to
// attempt geocoding.
func (p *ParsedListing) HasLocationText() bool {
	return p.LocationLocality != "" && p.LocationRegion != ""
}
