package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/David070920/estimareimob/internal/contextkeys"
	"github.com/David070920/estimareimob/internal/contracts"
	"github.com/David070920/estimareimob/internal/core/domain"
	"github.com/David070920/estimareimob/internal/core/normalize"
	"github.com/David070920/estimareimob/internal/core/port"
)

// IngestListingsUseCase is the pipeline orchestrator: for every listing
// URL it extracts the record, normalizes the fields, geocodes the
// locality and persists property + listing atomically. One bad URL
// never stops the batch.
type IngestListingsUseCase struct {
	extractor  port.ListingExtractorPort
	geocoder   port.GeoResolverPort
	repository port.ListingRepositoryPort
	events     port.IngestEventPublisherPort
	delay      time.Duration

	// injectable for tests
	sleep func(time.Duration)
	now   func() time.Time
}

func NewIngestListingsUseCase(
	extractor port.ListingExtractorPort,
	geocoder port.GeoResolverPort,
	repository port.ListingRepositoryPort,
	events port.IngestEventPublisherPort,
	delay time.Duration,
) (*IngestListingsUseCase, error) {
	if extractor == nil {
		return nil, fmt.Errorf("IngestListingsUseCase: extractor cannot be nil")
	}
	if geocoder == nil {
		return nil, fmt.Errorf("IngestListingsUseCase: geocoder cannot be nil")
	}
	if repository == nil {
		return nil, fmt.Errorf("IngestListingsUseCase: repository cannot be nil")
	}
	if events == nil {
		events = &port.NoopIngestEventPublisher{}
	}
	return &IngestListingsUseCase{
		extractor:  extractor,
		geocoder:   geocoder,
		repository: repository,
		events:     events,
		delay:      delay,
		sleep:      time.Sleep,
		now:        time.Now,
	}, nil
}

// Execute processes the batch strictly sequentially, pausing for the
// configured delay after every URL regardless of outcome.
func (uc *IngestListingsUseCase) Execute(ctx context.Context, listingURLs []string) (*domain.IngestStats, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"usecase": "IngestListings",
	})

	stats := &domain.IngestStats{Total: len(listingURLs)}

	for index, listingURL := range listingURLs {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		urlLogger := logger.WithFields(port.Fields{
			"url":   listingURL,
			"index": index + 1,
		})
		urlCtx := contextkeys.ContextWithLogger(ctx, urlLogger)

		uc.processURL(urlCtx, listingURL, stats)

		uc.sleep(uc.delay)
	}

	logger.Info("Ingestion run finished", port.Fields{
		"total":          stats.Total,
		"saved":          stats.Saved,
		"duplicates":     stats.Duplicates,
		"failed":         stats.Failed,
		"geocode_misses": stats.GeocodeMisses,
	})
	return stats, nil
}

func (uc *IngestListingsUseCase) processURL(ctx context.Context, listingURL string, stats *domain.IngestStats) {
	logger := contextkeys.LoggerFromContext(ctx)

	exists, err := uc.repository.ListingURLExists(ctx, listingURL)
	if err != nil {
		stats.Failed++
		logger.Error("Duplicate check failed", err, nil)
		return
	}
	if exists {
		stats.Duplicates++
		logger.Info("Listing already ingested, skipping", nil)
		return
	}

	record, err := uc.extractor.ExtractListing(ctx, listingURL)
	if err != nil {
		stats.Failed++
		switch {
		case errors.Is(err, domain.ErrNetwork):
			logger.Error("Listing page fetch failed", err, nil)
		case errors.Is(err, domain.ErrNoStructuredData):
			logger.Error("Listing page has no structured data", err, nil)
		default:
			logger.Error("Listing extraction failed", err, nil)
		}
		return
	}

	if err := contracts.ValidateParsedListing(record); err != nil {
		stats.Failed++
		logger.Error("Record failed schema validation", err, nil)
		return
	}

	property, listing := uc.buildEntities(listingURL, record)

	if record.HasLocationText() {
		point, err := uc.geocoder.Resolve(ctx, record.LocationLocality, record.LocationRegion)
		if err != nil {
			stats.GeocodeMisses++
			logger.Warn("Geocoding miss, storing without coordinates", port.Fields{
				"locality": record.LocationLocality,
				"region":   record.LocationRegion,
				"error":    err.Error(),
			})
		} else {
			property.Location = point
		}
	}

	if err := uc.repository.CreatePropertyWithListing(ctx, property, listing); err != nil {
		stats.Failed++
		logger.Error("Persistence failed", err, nil)
		return
	}
	stats.Saved++

	logger.Info("Listing ingested", port.Fields{
		"property_id": property.ID,
		"listing_id":  listing.ID,
		"type":        property.Type,
	})

	if err := uc.events.PublishListingIngested(ctx, listing.ID, listing.ListingURL); err != nil {
		logger.Warn("Failed to publish ingest event", port.Fields{"error": err.Error()})
	}
}

// buildEntities runs the normalizer over the parsed record and shapes
// the database entities.
func (uc *IngestListingsUseCase) buildEntities(listingURL string, record *domain.ParsedListing) (*domain.Property, *domain.Listing) {
	property := &domain.Property{
		Type:          normalize.PropertyType(record.Title, record.URL),
		BuildYear:     normalize.BuildYear(record.YearBuilt),
		UsableAreaSqm: record.UsableAreaSqm,
		Floor:         normalize.Floor(record.Features),
		TotalRooms:    normalize.TotalRooms(record.Features, record.Title, record.Description),
	}

	// Column is NOT NULL; a listing without a price is stored as 0 and
	// filtered out by the training query.
	price := 0.0
	if record.Price != nil {
		price = *record.Price
	}

	listing := &domain.Listing{
		AskingPriceEUR:  price,
		ListingURL:      listingURL,
		DescriptionText: record.Description,
		Status:          domain.ListingStatusActive,
		ScrapedAt:       uc.now().UTC(),
	}
	return property, listing
}
