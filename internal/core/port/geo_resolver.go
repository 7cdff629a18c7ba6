package port

import (
	"context"

	"github.com/David070920/estimareimob/internal/core/domain"
)

// GeoResolverPort resolves locality text to coordinates. Implementations
// wrap misses and service failures in domain.ErrGeocodeMiss; the caller
// proceeds without coordinates either way.
type GeoResolverPort interface {
	Resolve(ctx context.Context, locality, region string) (*domain.GeoPoint, error)
}
