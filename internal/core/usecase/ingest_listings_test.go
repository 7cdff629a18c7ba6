package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/David070920/estimareimob/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	records map[string]*domain.ParsedListing
	errs    map[string]error
}

func (f *fakeExtractor) ExtractListing(ctx context.Context, listingURL string) (*domain.ParsedListing, error) {
	if err, ok := f.errs[listingURL]; ok {
		return nil, err
	}
	if rec, ok := f.records[listingURL]; ok {
		return rec, nil
	}
	return nil, fmt.Errorf("%w: unexpected url %s", domain.ErrExtraction, listingURL)
}

type fakeGeocoder struct {
	point *domain.GeoPoint
	err   error
	calls int
}

func (f *fakeGeocoder) Resolve(ctx context.Context, locality, region string) (*domain.GeoPoint, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.point, nil
}

type savedPair struct {
	property *domain.Property
	listing  *domain.Listing
}

type fakeRepository struct {
	existing  map[string]bool
	saved     []savedPair
	createErr error
	existsErr error
	nextID    int64
}

func (f *fakeRepository) ListingURLExists(ctx context.Context, listingURL string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[listingURL], nil
}

func (f *fakeRepository) CreatePropertyWithListing(ctx context.Context, property *domain.Property, listing *domain.Listing) error {
	if f.createErr != nil {
		// Transaction rolled back: nothing recorded.
		return f.createErr
	}
	f.nextID++
	property.ID = f.nextID
	listing.ID = f.nextID
	listing.PropertyID = property.ID
	f.saved = append(f.saved, savedPair{property: property, listing: listing})
	if f.existing == nil {
		f.existing = map[string]bool{}
	}
	f.existing[listing.ListingURL] = true
	return nil
}

type fakeEventPublisher struct {
	published []int64
	err       error
}

func (f *fakeEventPublisher) PublishListingIngested(ctx context.Context, listingID int64, listingURL string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, listingID)
	return nil
}

func (f *fakeEventPublisher) Close() error { return nil }

func testRecord(url string) *domain.ParsedListing {
	price := 85000.0
	area := 72.5
	year := 1984
	return &domain.ParsedListing{
		Title:            "Apartament 3 camere Aviatiei",
		Description:      "Apartament spatios",
		URL:              url,
		Price:            &price,
		Currency:         "EUR",
		LocationRegion:   "Bucuresti",
		LocationLocality: "Sectorul 1",
		UsableAreaSqm:    &area,
		YearBuilt:        &year,
		Features:         map[string]string{"Etaj": "3", "Numar camere": "3"},
	}
}

func newTestUseCase(t *testing.T, extractor *fakeExtractor, geocoder *fakeGeocoder, repo *fakeRepository, events *fakeEventPublisher) *IngestListingsUseCase {
	t.Helper()
	uc, err := NewIngestListingsUseCase(extractor, geocoder, repo, events, 0)
	require.NoError(t, err)
	uc.sleep = func(time.Duration) {}
	return uc
}

func TestIngestListings_HappyPath(t *testing.T) {
	url := "https://www.publi24.ro/anunt/apartament-aviatiei/abc.html"
	extractor := &fakeExtractor{records: map[string]*domain.ParsedListing{url: testRecord(url)}}
	geocoder := &fakeGeocoder{point: &domain.GeoPoint{Longitude: 26.1, Latitude: 44.4}}
	repo := &fakeRepository{existing: map[string]bool{}}
	events := &fakeEventPublisher{}

	uc := newTestUseCase(t, extractor, geocoder, repo, events)
	stats, err := uc.Execute(context.Background(), []string{url})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Saved)
	assert.Zero(t, stats.Failed)
	assert.Zero(t, stats.Duplicates)
	assert.Zero(t, stats.GeocodeMisses)

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	assert.Equal(t, domain.PropertyTypeApartment, saved.property.Type)
	require.NotNil(t, saved.property.Floor)
	assert.Equal(t, 3, *saved.property.Floor)
	require.NotNil(t, saved.property.TotalRooms)
	assert.Equal(t, 3, *saved.property.TotalRooms)
	require.NotNil(t, saved.property.Location)
	assert.Equal(t, 44.4, saved.property.Location.Latitude)

	assert.Equal(t, 85000.0, saved.listing.AskingPriceEUR)
	assert.Equal(t, url, saved.listing.ListingURL)
	assert.Equal(t, domain.ListingStatusActive, saved.listing.Status)
	assert.Equal(t, saved.property.ID, saved.listing.PropertyID)

	assert.Equal(t, []int64{saved.listing.ID}, events.published)
}

func TestIngestListings_DuplicateIsSkippedBeforeFetch(t *testing.T) {
	url := "https://www.publi24.ro/anunt/a/1.html"
	extractor := &fakeExtractor{errs: map[string]error{
		url: fmt.Errorf("%w: should never be fetched", domain.ErrNetwork),
	}}
	repo := &fakeRepository{existing: map[string]bool{url: true}}

	uc := newTestUseCase(t, extractor, &fakeGeocoder{}, repo, &fakeEventPublisher{})
	stats, err := uc.Execute(context.Background(), []string{url})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Duplicates)
	assert.Zero(t, stats.Failed, "duplicate must short-circuit before the extractor runs")
	assert.Empty(t, repo.saved)
}

func TestIngestListings_SecondRunIsIdempotent(t *testing.T) {
	urls := []string{
		"https://www.publi24.ro/anunt/a/1.html",
		"https://www.publi24.ro/anunt/b/2.html",
	}
	extractor := &fakeExtractor{records: map[string]*domain.ParsedListing{
		urls[0]: testRecord(urls[0]),
		urls[1]: testRecord(urls[1]),
	}}
	repo := &fakeRepository{existing: map[string]bool{}}

	uc := newTestUseCase(t, extractor, &fakeGeocoder{point: &domain.GeoPoint{}}, repo, &fakeEventPublisher{})

	first, err := uc.Execute(context.Background(), urls)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Saved)

	second, err := uc.Execute(context.Background(), urls)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Duplicates)
	assert.Zero(t, second.Saved)
	assert.Len(t, repo.saved, 2, "second run must create no new rows")
}

func TestIngestListings_ExtractionFailureContinuesBatch(t *testing.T) {
	badURL := "https://www.publi24.ro/anunt/bad/1.html"
	goodURL := "https://www.publi24.ro/anunt/good/2.html"
	extractor := &fakeExtractor{
		records: map[string]*domain.ParsedListing{goodURL: testRecord(goodURL)},
		errs:    map[string]error{badURL: domain.ErrNoStructuredData},
	}
	repo := &fakeRepository{existing: map[string]bool{}}

	uc := newTestUseCase(t, extractor, &fakeGeocoder{point: &domain.GeoPoint{}}, repo, &fakeEventPublisher{})
	stats, err := uc.Execute(context.Background(), []string{badURL, goodURL})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Saved)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, goodURL, repo.saved[0].listing.ListingURL)
}

func TestIngestListings_GeocodeMissStoresWithoutCoordinates(t *testing.T) {
	url := "https://www.publi24.ro/anunt/a/1.html"
	extractor := &fakeExtractor{records: map[string]*domain.ParsedListing{url: testRecord(url)}}
	geocoder := &fakeGeocoder{err: fmt.Errorf("%w: no results", domain.ErrGeocodeMiss)}
	repo := &fakeRepository{existing: map[string]bool{}}

	uc := newTestUseCase(t, extractor, geocoder, repo, &fakeEventPublisher{})
	stats, err := uc.Execute(context.Background(), []string{url})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Saved)
	assert.Equal(t, 1, stats.GeocodeMisses)
	require.Len(t, repo.saved, 1)
	assert.Nil(t, repo.saved[0].property.Location)
}

func TestIngestListings_NoLocationTextSkipsGeocoder(t *testing.T) {
	url := "https://www.publi24.ro/anunt/a/1.html"
	record := testRecord(url)
	record.LocationLocality = ""
	extractor := &fakeExtractor{records: map[string]*domain.ParsedListing{url: record}}
	geocoder := &fakeGeocoder{point: &domain.GeoPoint{}}
	repo := &fakeRepository{existing: map[string]bool{}}

	uc := newTestUseCase(t, extractor, geocoder, repo, &fakeEventPublisher{})
	stats, err := uc.Execute(context.Background(), []string{url})
	require.NoError(t, err)

	assert.Zero(t, geocoder.calls)
	assert.Equal(t, 1, stats.Saved)
	assert.Nil(t, repo.saved[0].property.Location)
}

func TestIngestListings_PersistFailureLeavesNothingBehind(t *testing.T) {
	url := "https://www.publi24.ro/anunt/a/1.html"
	extractor := &fakeExtractor{records: map[string]*domain.ParsedListing{url: testRecord(url)}}
	repo := &fakeRepository{
		existing:  map[string]bool{},
		createErr: fmt.Errorf("%w: listing insert failed", domain.ErrPersist),
	}
	events := &fakeEventPublisher{}

	uc := newTestUseCase(t, extractor, &fakeGeocoder{point: &domain.GeoPoint{}}, repo, events)
	stats, err := uc.Execute(context.Background(), []string{url})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Failed)
	assert.Zero(t, stats.Saved)
	assert.Empty(t, repo.saved, "rolled-back write must not leave a property behind")
	assert.Empty(t, events.published, "no event for a failed write")
}

func TestIngestListings_MissingPriceStoredAsZero(t *testing.T) {
	url := "https://www.publi24.ro/anunt/a/1.html"
	record := testRecord(url)
	record.Price = nil
	extractor := &fakeExtractor{records: map[string]*domain.ParsedListing{url: record}}
	repo := &fakeRepository{existing: map[string]bool{}}

	uc := newTestUseCase(t, extractor, &fakeGeocoder{point: &domain.GeoPoint{}}, repo, &fakeEventPublisher{})
	_, err := uc.Execute(context.Background(), []string{url})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Zero(t, repo.saved[0].listing.AskingPriceEUR)
}

func TestIngestListings_SchemaViolationCountsAsFailure(t *testing.T) {
	url := "https://www.publi24.ro/anunt/a/1.html"
	record := testRecord(url)
	record.URL = "" // violates the record contract
	extractor := &fakeExtractor{records: map[string]*domain.ParsedListing{url: record}}
	repo := &fakeRepository{existing: map[string]bool{}}

	uc := newTestUseCase(t, extractor, &fakeGeocoder{}, repo, &fakeEventPublisher{})
	stats, err := uc.Execute(context.Background(), []string{url})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Failed)
	assert.Empty(t, repo.saved)
}

func TestIngestListings_DelayAppliedAfterEveryURL(t *testing.T) {
	urls := []string{
		"https://www.publi24.ro/anunt/a/1.html",
		"https://www.publi24.ro/anunt/b/2.html",
	}
	extractor := &fakeExtractor{records: map[string]*domain.ParsedListing{
		urls[0]: testRecord(urls[0]),
		urls[1]: testRecord(urls[1]),
	}}
	repo := &fakeRepository{existing: map[string]bool{urls[1]: true}}

	uc, err := NewIngestListingsUseCase(extractor, &fakeGeocoder{point: &domain.GeoPoint{}}, repo, &fakeEventPublisher{}, 250*time.Millisecond)
	require.NoError(t, err)

	var sleeps []time.Duration
	uc.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

	_, err = uc.Execute(context.Background(), urls)
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, sleeps,
		"delay applies after saved and duplicate outcomes alike")
}

func TestIngestListings_EventPublishFailureIsNotFatal(t *testing.T) {
	url := "https://www.publi24.ro/anunt/a/1.html"
	extractor := &fakeExtractor{records: map[string]*domain.ParsedListing{url: testRecord(url)}}
	repo := &fakeRepository{existing: map[string]bool{}}
	events := &fakeEventPublisher{err: fmt.Errorf("broker unavailable")}

	uc := newTestUseCase(t, extractor, &fakeGeocoder{point: &domain.GeoPoint{}}, repo, events)
	stats, err := uc.Execute(context.Background(), []string{url})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Saved)
}

func TestNewIngestListingsUseCase_NilEventsGetsNoop(t *testing.T) {
	extractor := &fakeExtractor{}
	repo := &fakeRepository{}

	uc, err := NewIngestListingsUseCase(extractor, &fakeGeocoder{}, repo, nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, uc.events)
}
