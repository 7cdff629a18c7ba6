package usecases_port

import "context"

// DiscoverListingsPort walks the paginated search results and persists
// the deduplicated set of listing URLs. Returns how many unique URLs
// were collected.
type DiscoverListingsPort interface {
	Execute(ctx context.Context) (int, error)
}
