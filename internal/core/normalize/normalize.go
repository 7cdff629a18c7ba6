// Package normalize turns raw publi24 text into typed model features.
// Everything here is pure: no I/O, nil on anything unparseable.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/David070920/estimareimob/internal/constants"
	"github.com/David070920/estimareimob/internal/core/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	signedIntRe = regexp.MustCompile(`-?\d+`)
	digitsRe    = regexp.MustCompile(`\d+`)
	roomsRe     = regexp.MustCompile(`(?i)(\d+)\s*camere?`)
	priceNumRe  = regexp.MustCompile(`[\d.]+`)
	// "vila" needs a word boundary: it is a substring of "intravilan",
	// which shows up in nearly every land listing.
	vilaRe = regexp.MustCompile(`\bvila\b`)
)

// FoldDiacritics strips combining marks so Romanian text matches its
// ASCII keywords ("Mansardă" -> "Mansarda").
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Floor maps the "Etaj" feature to a floor number. Ground floor is 0,
// basement -1, attic the AtticFloor sentinel; otherwise the first
// signed integer in the text wins.
func Floor(features map[string]string) *int {
	raw, ok := features[constants.FeatureFloor]
	if !ok {
		return nil
	}
	s := strings.ToLower(FoldDiacritics(strings.TrimSpace(raw)))
	if s == "" {
		return nil
	}

	switch {
	case strings.Contains(s, "parter"):
		return intPtr(0)
	case strings.Contains(s, "demisol"):
		return intPtr(-1)
	case strings.Contains(s, "mansarda"):
		return intPtr(domain.AtticFloor)
	}

	if m := signedIntRe.FindString(s); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			return &v
		}
	}
	return nil
}

// TotalRooms resolves the room count with a fixed source priority: the
// "Numar camere" feature, then the title, then the description.
func TotalRooms(features map[string]string, title, description string) *int {
	if raw, ok := features[constants.FeatureRooms]; ok {
		if m := digitsRe.FindString(raw); m != "" {
			if v, err := strconv.Atoi(m); err == nil {
				return &v
			}
		}
	}

	for _, text := range []string{title, description} {
		if m := roomsRe.FindStringSubmatch(text); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return &v
			}
		}
	}
	return nil
}

// PropertyType derives the canonical type from keywords in the title
// and the listing URL. Apartment wins over house wins over land.
func PropertyType(title, listingURL string) string {
	haystack := strings.ToLower(FoldDiacritics(title)) + " " + strings.ToLower(FoldDiacritics(listingURL))

	switch {
	case strings.Contains(haystack, "apartament"):
		return domain.PropertyTypeApartment
	case strings.Contains(haystack, "casa"), vilaRe.MatchString(haystack):
		return domain.PropertyTypeHouse
	case strings.Contains(haystack, "teren"):
		return domain.PropertyTypeLand
	default:
		return domain.PropertyTypeUnknown
	}
}

// PriceFromText parses Romanian-formatted price text ("100.000,50 EUR").
// Dots are thousands separators unless a comma is present too; the
// comma is the decimal mark.
func PriceFromText(raw string) *float64 {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "EUR", "")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.TrimSpace(s)

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	default:
		s = strings.ReplaceAll(s, ".", "")
	}

	m := priceNumRe.FindString(s)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

// BuildYear drops implausible construction years instead of persisting
// scraping artifacts.
func BuildYear(year *int) *int {
	if year == nil {
		return nil
	}
	if *year < 1900 || *year > time.Now().Year()+1 {
		return nil
	}
	return year
}

func intPtr(v int) *int { return &v }
