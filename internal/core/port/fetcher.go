package port

import (
	"context"

	"github.com/David070920/estimareimob/internal/core/domain"
)

// SearchFetcherPort fetches one page of search results and returns the
// absolute URLs of the listings found on it.
type SearchFetcherPort interface {
	FetchListingURLs(ctx context.Context, pageNumber int) ([]string, error)
}

// ListingExtractorPort fetches a single listing page and extracts the
// structured record embedded in it.
type ListingExtractorPort interface {
	ExtractListing(ctx context.Context, listingURL string) (*domain.ParsedListing, error)
}
