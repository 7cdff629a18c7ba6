package postgres

import (
	"strconv"

	"github.com/David070920/estimareimob/internal/core/domain"
	"github.com/mmcloughlin/geohash"
)

const geohashPrecision = 5

// pointWKT renders a GeoPoint as WKT, longitude first.
func pointWKT(p domain.GeoPoint) string {
	return "POINT(" +
		strconv.FormatFloat(p.Longitude, 'f', -1, 64) + " " +
		strconv.FormatFloat(p.Latitude, 'f', -1, 64) + ")"
}

// pointGeohash buckets a GeoPoint to the precision used for grouping
// nearby properties.
func pointGeohash(p domain.GeoPoint) string {
	return geohash.EncodeWithPrecision(p.Latitude, p.Longitude, geohashPrecision)
}
