package publi24

import (
	"strings"

	"github.com/David070920/estimareimob/internal/constants"
)

// IsListingHref reports whether an anchor href points at a listing
// detail page.
func IsListingHref(href string) bool {
	return strings.Contains(href, constants.ListingPathSegment) &&
		strings.HasSuffix(href, constants.ListingSuffix)
}

// AbsoluteListingURL turns a qualifying href into an absolute URL.
// Root-relative hrefs get the site domain, schemeless ones a domain
// plus slash, absolute ones pass through unchanged.
func AbsoluteListingURL(siteDomain, href string) string {
	switch {
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return siteDomain + href
	default:
		return siteDomain + "/" + href
	}
}
