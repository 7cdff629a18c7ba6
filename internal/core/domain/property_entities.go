package domain

import "time"

// Canonical property types produced by the normalizer.
const (
	PropertyTypeApartment = "apartment"
	PropertyTypeHouse     = "house"
	PropertyTypeLand      = "land"
	PropertyTypeUnknown   = "unknown"
)

// Listing statuses.
const (
	ListingStatusActive   = "active"
	ListingStatusInactive = "inactive"
)

// AtticFloor is the sentinel stored for "mansarda" floors.
// TODO: replace with a dedicated is_attic flag once the training
// pipeline can consume it; 99 leaks into the floor feature as-is.
const AtticFloor = 99

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}

// Property is the physical asset row. One property may accumulate
// several listings over time.
type Property struct {
	ID            int64
	Type          string
	BuildYear     *int
	UsableAreaSqm *float64
	Floor         *int
	TotalRooms    *int
	Location      *GeoPoint
	CreatedAt     time.Time
}

// Listing is one observation of a property on the market.
type Listing struct {
	ID              int64
	PropertyID      int64
	AskingPriceEUR  float64
	ListingURL      string
	DescriptionText string
	Status          string
	ScrapedAt       time.Time
}

// IngestStats summarizes one pipeline run.
type IngestStats struct {
	Total         int
	Saved         int
	Duplicates    int
	Failed        int
	GeocodeMisses int
}
