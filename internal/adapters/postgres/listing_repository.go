package postgres

import (
	"context"
	"fmt"

	"github.com/David070920/estimareimob/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListingRepositoryAdapter implements ListingRepositoryPort for
// PostgreSQL/PostGIS.
type ListingRepositoryAdapter struct {
	pool *pgxpool.Pool
}

func NewListingRepositoryAdapter(pool *pgxpool.Pool) (*ListingRepositoryAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ListingRepositoryAdapter{pool: pool}, nil
}

func (a *ListingRepositoryAdapter) ListingURLExists(ctx context.Context, listingURL string) (bool, error) {
	var exists bool
	err := a.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM listings WHERE listing_url = $1)`,
		listingURL,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking listing url: %v", domain.ErrPersist, err)
	}
	return exists, nil
}

// CreatePropertyWithListing writes the property and its listing in one
// transaction. On any failure the whole write rolls back, so no
// orphaned property rows survive a failed listing insert.
func (a *ListingRepositoryAdapter) CreatePropertyWithListing(ctx context.Context, property *domain.Property, listing *domain.Listing) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", domain.ErrPersist, err)
	}
	defer tx.Rollback(ctx)

	var locationWKT, hash *string
	if property.Location != nil {
		wkt := pointWKT(*property.Location)
		gh := pointGeohash(*property.Location)
		locationWKT, hash = &wkt, &gh
	}

	sqlProperty := `
		INSERT INTO properties (
			type, build_year, usable_area_sqm, floor, total_rooms, location, geohash
		) VALUES (
			$1, $2, $3, $4, $5, ST_GeomFromText($6, 4326), $7
		)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, sqlProperty,
		property.Type, property.BuildYear, property.UsableAreaSqm,
		property.Floor, property.TotalRooms, locationWKT, hash,
	).Scan(&property.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to insert property: %v", domain.ErrPersist, err)
	}

	listing.PropertyID = property.ID

	sqlListing := `
		INSERT INTO listings (
			property_id, asking_price_eur, listing_url, description_text, status, scraped_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, sqlListing,
		listing.PropertyID, listing.AskingPriceEUR, listing.ListingURL,
		listing.DescriptionText, listing.Status, listing.ScrapedAt,
	).Scan(&listing.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to insert listing: %v", domain.ErrPersist, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", domain.ErrPersist, err)
	}
	return nil
}
