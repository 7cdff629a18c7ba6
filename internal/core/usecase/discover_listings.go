package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/David070920/estimareimob/internal/contextkeys"
	"github.com/David070920/estimareimob/internal/core/port"
)

// DiscoverListingsUseCase walks the paginated search results, collects
// unique listing URLs and hands them to the URL store, sorted, as the
// input batch for the ingestion run.
type DiscoverListingsUseCase struct {
	fetcher  port.SearchFetcherPort
	urlStore port.URLStorePort
	maxPages int
}

func NewDiscoverListingsUseCase(fetcher port.SearchFetcherPort, urlStore port.URLStorePort, maxPages int) (*DiscoverListingsUseCase, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("DiscoverListingsUseCase: fetcher cannot be nil")
	}
	if urlStore == nil {
		return nil, fmt.Errorf("DiscoverListingsUseCase: urlStore cannot be nil")
	}
	if maxPages <= 0 {
		return nil, fmt.Errorf("DiscoverListingsUseCase: maxPages must be positive, got %d", maxPages)
	}
	return &DiscoverListingsUseCase{
		fetcher:  fetcher,
		urlStore: urlStore,
		maxPages: maxPages,
	}, nil
}

// Execute crawls up to maxPages search pages. A failing page is logged
// and skipped; the crawl itself only fails when the collected set
// cannot be saved.
func (uc *DiscoverListingsUseCase) Execute(ctx context.Context) (int, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"usecase": "DiscoverListings",
	})

	unique := make(map[string]struct{})

	for page := 1; page <= uc.maxPages; page++ {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		urls, err := uc.fetcher.FetchListingURLs(ctx, page)
		if err != nil {
			logger.Warn("Search page fetch failed, skipping", port.Fields{
				"page":  page,
				"error": err.Error(),
			})
			continue
		}

		newOnPage := 0
		for _, u := range urls {
			if _, ok := unique[u]; !ok {
				unique[u] = struct{}{}
				newOnPage++
			}
		}

		logger.Info("Search page processed", port.Fields{
			"page":          page,
			"found_on_page": len(urls),
			"new_urls":      newOnPage,
			"total_unique":  len(unique),
		})
	}

	if len(unique) == 0 {
		logger.Warn("No listing URLs discovered, output left untouched", nil)
		return 0, nil
	}

	sorted := make([]string, 0, len(unique))
	for u := range unique {
		sorted = append(sorted, u)
	}
	sort.Strings(sorted)

	if err := uc.urlStore.SaveURLs(sorted); err != nil {
		return 0, fmt.Errorf("failed to save discovered urls: %w", err)
	}

	logger.Info("Discovery finished", port.Fields{"total_unique": len(sorted)})
	return len(sorted), nil
}
