package publi24

import (
	"context"
	"fmt"
	"time"

	"github.com/David070920/estimareimob/internal/contextkeys"
	"github.com/David070920/estimareimob/internal/core/domain"
	"github.com/David070920/estimareimob/internal/core/port"
	"github.com/gocolly/colly/v2"
)

// SearchFetcherAdapter walks publi24 search result pages and harvests
// listing URLs from the anchors.
type SearchFetcherAdapter struct {
	// parent collector; clones share its limit rules
	collector *colly.Collector
	baseURL   string
	domain    string
}

type SearchFetcherConfig struct {
	BaseURL        string
	Domain         string
	UserAgent      string
	RequestTimeout time.Duration
	// DelayMin/DelayMax bound the randomized pause between page fetches.
	DelayMin time.Duration
	DelayMax time.Duration
}

func NewSearchFetcherAdapter(cfg SearchFetcherConfig) (*SearchFetcherAdapter, error) {
	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(cfg.RequestTimeout)

	// Inherited by every clone.
	err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*publi24.ro*",
		Parallelism: 1,
		Delay:       cfg.DelayMin,
		RandomDelay: cfg.DelayMax - cfg.DelayMin,
	})
	if err != nil {
		return nil, fmt.Errorf("SearchFetcherAdapter: failed to set limit rule: %w", err)
	}

	return &SearchFetcherAdapter{
		collector: c,
		baseURL:   cfg.BaseURL,
		domain:    cfg.Domain,
	}, nil
}

// FetchListingURLs fetches one search page and returns the absolute
// listing URLs found on it, deduplicated within the page.
func (a *SearchFetcherAdapter) FetchListingURLs(ctx context.Context, pageNumber int) ([]string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SearchFetcherAdapter(FetchListingURLs)",
		"page":      pageNumber,
	})

	collector := a.collector.Clone()

	var found []string
	seen := make(map[string]struct{})
	var fetchErr error

	collector.OnRequest(func(r *colly.Request) {
		logger.Debug("Fetching search page", port.Fields{"url": r.URL.String()})
	})

	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if !IsListingHref(href) {
			return
		}
		absolute := AbsoluteListingURL(a.domain, href)
		if _, ok := seen[absolute]; ok {
			return
		}
		seen[absolute] = struct{}{}
		found = append(found, absolute)
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("%w: search page %d (status %d): %v",
			domain.ErrNetwork, pageNumber, r.StatusCode, err)
	})

	target := fmt.Sprintf("%s?pag=%d", a.baseURL, pageNumber)
	if err := collector.Visit(target); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("%w: search page %d: %v", domain.ErrNetwork, pageNumber, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}

	logger.Debug("Search page fetched", port.Fields{"links_found": len(found)})
	return found, nil
}
