package domain

// FeatureColumns is the serving contract shared with the price model.
// Order is load-bearing: the model consumes positional vectors, so new
// columns go at the end and nothing gets reordered.
var FeatureColumns = []string{
	"usable_area_sqm",
	"build_year",
	"floor",
	"total_rooms",
	"latitude",
	"longitude",
}

// FeatureVector holds the model inputs for one property. Nil means the
// value is missing and left to downstream imputation.
type FeatureVector struct {
	UsableAreaSqm *float64
	BuildYear     *float64
	Floor         *float64
	TotalRooms    *float64
	Latitude      *float64
	Longitude     *float64
}

// BuildFeatureVector projects a property into the fixed-order vector.
func BuildFeatureVector(p *Property) FeatureVector {
	v := FeatureVector{
		UsableAreaSqm: p.UsableAreaSqm,
		BuildYear:     intAsFloat(p.BuildYear),
		Floor:         intAsFloat(p.Floor),
		TotalRooms:    intAsFloat(p.TotalRooms),
	}
	if p.Location != nil {
		lat, lon := p.Location.Latitude, p.Location.Longitude
		v.Latitude, v.Longitude = &lat, &lon
	}
	return v
}

// Values returns the vector in FeatureColumns order.
func (v FeatureVector) Values() []*float64 {
	return []*float64{
		v.UsableAreaSqm,
		v.BuildYear,
		v.Floor,
		v.TotalRooms,
		v.Latitude,
		v.Longitude,
	}
}

func intAsFloat(n *int) *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}
