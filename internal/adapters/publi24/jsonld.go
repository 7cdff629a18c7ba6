package publi24

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/David070920/estimareimob/internal/core/domain"
)

// publi24 serves JSON-LD with raw newlines inside string literals and
// the occasional trailing comma, so parsing is clean -> strict parse ->
// repair -> retry.
var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

var jsonldCleaner = strings.NewReplacer("\r", "", "\n", "", "\t", "")

func parseJSONLD(raw string) (interface{}, error) {
	cleaned := strings.TrimSpace(jsonldCleaner.Replace(raw))

	var parsed interface{}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		return parsed, nil
	}

	repaired := trailingCommaRe.ReplaceAllString(cleaned, "$1")
	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// selectListingObject picks the first Product-with-offers object across
// the page's JSON-LD blocks, in document order. Malformed blocks are
// skipped, not fatal.
func selectListingObject(blocks []string) (map[string]interface{}, error) {
	if len(blocks) == 0 {
		return nil, domain.ErrNoStructuredData
	}

	for _, raw := range blocks {
		parsed, err := parseJSONLD(raw)
		if err != nil {
			continue
		}
		if product := findProductObject(parsed); product != nil {
			return product, nil
		}
	}

	return nil, fmt.Errorf("%w: no Product object with offers in %d blocks",
		domain.ErrExtraction, len(blocks))
}

func findProductObject(parsed interface{}) map[string]interface{} {
	switch v := parsed.(type) {
	case map[string]interface{}:
		if isProductWithOffers(v) {
			return v
		}
		// Several entities bundled under @graph.
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				if obj, ok := item.(map[string]interface{}); ok && isProductWithOffers(obj) {
					return obj
				}
			}
		}
	case []interface{}:
		for _, item := range v {
			if obj, ok := item.(map[string]interface{}); ok {
				if found := findProductObject(obj); found != nil {
					return found
				}
			}
		}
	}
	return nil
}

func isProductWithOffers(obj map[string]interface{}) bool {
	objType, _ := obj["@type"].(string)
	if objType != "Product" {
		return false
	}
	_, hasOffers := obj["offers"]
	return hasOffers
}
