// Package contracts guards the extractor -> pipeline boundary with a
// JSON schema, so malformed records are rejected before they reach the
// database.
package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/David070920/estimareimob/internal/core/domain"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/parsed-listing/v1.json
var schemaFS embed.FS

const parsedListingSchemaURL = "schemas/parsed-listing/v1.json"

var parsedListingSchema *jsonschema.Schema

func init() {
	raw, err := schemaFS.Open(parsedListingSchemaURL)
	if err != nil {
		log.Fatalf("failed to open embedded schema %s: %v", parsedListingSchemaURL, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(parsedListingSchemaURL, raw); err != nil {
		log.Fatalf("failed to add schema resource %s: %v", parsedListingSchemaURL, err)
	}

	parsedListingSchema, err = compiler.Compile(parsedListingSchemaURL)
	if err != nil {
		log.Fatalf("failed to compile schema %s: %v", parsedListingSchemaURL, err)
	}
}

// ValidateParsedListing checks a record against the ParsedListing
// schema.
func ValidateParsedListing(record *domain.ParsedListing) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for validation: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("record is not valid JSON: %w", err)
	}

	if err := parsedListingSchema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
