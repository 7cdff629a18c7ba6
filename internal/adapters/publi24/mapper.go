package publi24

import (
	"strconv"
	"strings"

	"github.com/David070920/estimareimob/internal/core/domain"
	"github.com/David070920/estimareimob/internal/core/normalize"
)

// mapListing projects the Product JSON-LD object into a flat
// ParsedListing. The blocks are loosely typed in the wild (scalars vs
// objects vs lists for the same field), so every accessor tolerates
// shape drift and yields the zero value instead of failing.
func mapListing(product map[string]interface{}) *domain.ParsedListing {
	record := &domain.ParsedListing{
		Title:       stringValue(product["name"]),
		Description: stringValue(product["description"]),
		URL:         stringValue(product["url"]),
		Images:      imageURLs(product["image"]),
		Features:    map[string]string{},
	}

	offers := firstObject(product["offers"])
	if offers == nil {
		return record
	}

	record.Price = floatValue(offers["price"])
	record.Currency = stringValue(offers["priceCurrency"])

	if place := firstObject(offers["availableAtOrFrom"]); place != nil {
		if address, ok := place["address"].(map[string]interface{}); ok {
			record.LocationRegion = stringValue(address["addressRegion"])
			record.LocationLocality = stringValue(address["addressLocality"])
		}
	}

	item, ok := offers["itemOffered"].(map[string]interface{})
	if !ok {
		return record
	}

	if floorSize, ok := item["floorSize"].(map[string]interface{}); ok {
		record.UsableAreaSqm = floatValue(floorSize["value"])
	}

	// yearBuilt shows up both as a scalar and as {"value": ...}.
	yearRaw := item["yearBuilt"]
	if obj, ok := yearRaw.(map[string]interface{}); ok {
		yearRaw = obj["value"]
	}
	record.YearBuilt = intValue(yearRaw)

	record.Features = flattenAdditionalProperties(item["additionalProperty"])

	return record
}

// imageURLs normalizes the image field: a single URL string, a single
// {"contentUrl": ...} object, or a mixed list of both.
func imageURLs(raw interface{}) []string {
	var images []string

	appendOne := func(item interface{}) {
		switch v := item.(type) {
		case string:
			images = append(images, v)
		case map[string]interface{}:
			if url, ok := v["contentUrl"].(string); ok {
				images = append(images, url)
			}
		}
	}

	if list, ok := raw.([]interface{}); ok {
		for _, item := range list {
			appendOne(item)
		}
	} else {
		appendOne(raw)
	}
	return images
}

// flattenAdditionalProperties turns [{"name": "Etaj", "value": "3"}, ...]
// into a plain map. Pairs missing either side are skipped.
func flattenAdditionalProperties(raw interface{}) map[string]string {
	features := map[string]string{}
	list, ok := raw.([]interface{})
	if !ok {
		return features
	}

	for _, item := range list {
		prop, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name := stringValue(prop["name"])
		value := coerceString(prop["value"])
		if name == "" || value == "" {
			continue
		}
		features[name] = value
	}
	return features
}

// firstObject unwraps a value that may be an object or a list of
// objects; lists yield their first object element.
func firstObject(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v
	case []interface{}:
		if len(v) > 0 {
			if obj, ok := v[0].(map[string]interface{}); ok {
				return obj
			}
		}
	}
	return nil
}

func stringValue(raw interface{}) string {
	s, _ := raw.(string)
	return s
}

// coerceString renders scalar feature values as text.
func coerceString(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// floatValue reads a number that may arrive as a JSON number or as a
// string, with Romanian price formatting as the last resort.
func floatValue(raw interface{}) *float64 {
	switch v := raw.(type) {
	case float64:
		return &v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return &parsed
		}
		return normalize.PriceFromText(trimmed)
	default:
		return nil
	}
}

// intValue reads an integer that may arrive as a float ("1990.0") or a
// numeric string.
func intValue(raw interface{}) *int {
	f := floatValue(raw)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
