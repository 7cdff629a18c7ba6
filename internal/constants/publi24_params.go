package constants

// publi24.ro site parameters.
const (
	// ListingPathSegment marks listing detail pages in anchor hrefs.
	ListingPathSegment = "/anunt/"

	// ListingSuffix is the extension every detail page URL carries.
	ListingSuffix = ".html"

	// PageQueryParam drives search result pagination (?pag=N).
	PageQueryParam = "pag"
)

// Feature keys as publi24 spells them inside the JSON-LD
// additionalProperty list.
const (
	FeatureFloor = "Etaj"
	FeatureRooms = "Numar camere"
)

// GeocodeCountry anchors every geocoding query.
const GeocodeCountry = "Romania"
