package usecases_port

import (
	"context"

	"github.com/David070920/estimareimob/internal/core/domain"
)

// IngestListingsPort runs the full pipeline over a batch of listing
// URLs: extract, normalize, geocode, persist. One URL failing never
// stops the batch.
type IngestListingsPort interface {
	Execute(ctx context.Context, listingURLs []string) (*domain.IngestStats, error)
}
