package port

import (
	"context"

	"github.com/David070920/estimareimob/internal/core/domain"
)

// ListingRepositoryPort is the persistence boundary of the pipeline.
type ListingRepositoryPort interface {
	// ListingURLExists reports whether a listing with this URL was
	// already ingested. The pipeline's idempotency key.
	ListingURLExists(ctx context.Context, listingURL string) (bool, error)

	// CreatePropertyWithListing inserts the property and its listing in
	// one transaction. On any failure neither row survives. The
	// generated ids are written back into the entities.
	CreatePropertyWithListing(ctx context.Context, property *domain.Property, listing *domain.Listing) error
}
