package contracts

import (
	"testing"

	"github.com/David070920/estimareimob/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func validRecord() *domain.ParsedListing {
	price := 85000.0
	area := 72.5
	year := 1984
	return &domain.ParsedListing{
		Title:            "Apartament 3 camere",
		Description:      "Apartament spatios",
		URL:              "https://www.publi24.ro/anunt/a/1.html",
		Images:           []string{"https://img.publi24.ro/1.jpg"},
		Price:            &price,
		Currency:         "EUR",
		LocationRegion:   "Bucuresti",
		LocationLocality: "Sectorul 1",
		UsableAreaSqm:    &area,
		YearBuilt:        &year,
		Features:         map[string]string{"Etaj": "3"},
	}
}

func TestValidateParsedListing_Valid(t *testing.T) {
	assert.NoError(t, ValidateParsedListing(validRecord()))
}

func TestValidateParsedListing_MinimalRecord(t *testing.T) {
	record := &domain.ParsedListing{URL: "https://www.publi24.ro/anunt/a/1.html"}
	assert.NoError(t, ValidateParsedListing(record))
}

func TestValidateParsedListing_MissingURL(t *testing.T) {
	record := validRecord()
	record.URL = ""
	assert.Error(t, ValidateParsedListing(record))
}

func TestValidateParsedListing_NegativePrice(t *testing.T) {
	record := validRecord()
	price := -1.0
	record.Price = &price
	assert.Error(t, ValidateParsedListing(record))
}

func TestValidateParsedListing_ZeroArea(t *testing.T) {
	record := validRecord()
	area := 0.0
	record.UsableAreaSqm = &area
	assert.Error(t, ValidateParsedListing(record))
}
