package publi24

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/David070920/estimareimob/internal/contextkeys"
	"github.com/David070920/estimareimob/internal/core/domain"
	"github.com/David070920/estimareimob/internal/core/port"
	"github.com/gocolly/colly/v2"
)

// ListingFetcherAdapter fetches listing detail pages and extracts the
// JSON-LD record publi24 embeds in them.
type ListingFetcherAdapter struct {
	collector *colly.Collector
	debugFile string
}

type ListingFetcherConfig struct {
	UserAgent      string
	RequestTimeout time.Duration
	// Delay is the fixed pause between listing page fetches.
	Delay time.Duration
	// DebugFile receives the raw HTML of the last fetched page, for
	// inspecting captchas and bot walls. Empty disables the dump.
	DebugFile string
}

func NewListingFetcherAdapter(cfg ListingFetcherConfig) (*ListingFetcherAdapter, error) {
	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(cfg.RequestTimeout)

	err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*publi24.ro*",
		Parallelism: 1,
		Delay:       cfg.Delay,
	})
	if err != nil {
		return nil, fmt.Errorf("ListingFetcherAdapter: failed to set limit rule: %w", err)
	}

	return &ListingFetcherAdapter{
		collector: c,
		debugFile: cfg.DebugFile,
	}, nil
}

// ExtractListing fetches one listing page, picks the Product JSON-LD
// block out of it and projects it into a ParsedListing.
func (a *ListingFetcherAdapter) ExtractListing(ctx context.Context, listingURL string) (*domain.ParsedListing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ListingFetcherAdapter(ExtractListing)",
		"url":       listingURL,
	})

	collector := a.collector.Clone()

	var blocks []string
	var fetchErr error

	collector.OnHTML(`script[type="application/ld+json"]`, func(e *colly.HTMLElement) {
		blocks = append(blocks, e.Text)
	})

	collector.OnResponse(func(r *colly.Response) {
		if a.debugFile == "" {
			return
		}
		if err := os.WriteFile(a.debugFile, r.Body, 0o644); err != nil {
			logger.Warn("Failed to write debug HTML dump", port.Fields{
				"file":  a.debugFile,
				"error": err.Error(),
			})
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("%w: listing page (status %d): %v",
			domain.ErrNetwork, r.StatusCode, err)
	})

	if err := collector.Visit(listingURL); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("%w: listing page: %v", domain.ErrNetwork, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}

	product, err := selectListingObject(blocks)
	if err != nil {
		return nil, err
	}

	record := mapListing(product)
	if record.URL == "" {
		// Some blocks omit the canonical url; fall back to what we fetched.
		record.URL = listingURL
	}

	logger.Debug("Listing extracted", port.Fields{
		"title":    record.Title,
		"features": len(record.Features),
	})
	return record, nil
}
