package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearchFetcher struct {
	pages     map[int][]string
	failPages map[int]bool
	calls     []int
}

func (f *fakeSearchFetcher) FetchListingURLs(ctx context.Context, pageNumber int) ([]string, error) {
	f.calls = append(f.calls, pageNumber)
	if f.failPages[pageNumber] {
		return nil, fmt.Errorf("boom on page %d", pageNumber)
	}
	return f.pages[pageNumber], nil
}

type fakeURLStore struct {
	saved   [][]string
	saveErr error
}

func (f *fakeURLStore) SaveURLs(urls []string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, urls)
	return nil
}

func (f *fakeURLStore) LoadURLs() ([]string, error) { return nil, nil }

func TestDiscoverListings_DeduplicatesAcrossPagesAndSorts(t *testing.T) {
	fetcher := &fakeSearchFetcher{pages: map[int][]string{
		1: {
			"https://www.publi24.ro/anunt/b/2.html",
			"https://www.publi24.ro/anunt/a/1.html",
		},
		2: {
			// Promoted listing repeated on the second page.
			"https://www.publi24.ro/anunt/a/1.html",
			"https://www.publi24.ro/anunt/c/3.html",
		},
	}}
	store := &fakeURLStore{}

	uc, err := NewDiscoverListingsUseCase(fetcher, store, 2)
	require.NoError(t, err)

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.Len(t, store.saved, 1)
	assert.Equal(t, []string{
		"https://www.publi24.ro/anunt/a/1.html",
		"https://www.publi24.ro/anunt/b/2.html",
		"https://www.publi24.ro/anunt/c/3.html",
	}, store.saved[0])
}

func TestDiscoverListings_FailingPageIsSkipped(t *testing.T) {
	fetcher := &fakeSearchFetcher{
		pages: map[int][]string{
			1: {"https://www.publi24.ro/anunt/a/1.html"},
			3: {"https://www.publi24.ro/anunt/c/3.html"},
		},
		failPages: map[int]bool{2: true},
	}
	store := &fakeURLStore{}

	uc, err := NewDiscoverListingsUseCase(fetcher, store, 3)
	require.NoError(t, err)

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []int{1, 2, 3}, fetcher.calls, "failure on page 2 must not stop the crawl")
}

func TestDiscoverListings_NothingFoundWritesNothing(t *testing.T) {
	fetcher := &fakeSearchFetcher{pages: map[int][]string{}}
	store := &fakeURLStore{}

	uc, err := NewDiscoverListingsUseCase(fetcher, store, 2)
	require.NoError(t, err)

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, store.saved)
}

func TestDiscoverListings_SaveFailureSurfaces(t *testing.T) {
	fetcher := &fakeSearchFetcher{pages: map[int][]string{
		1: {"https://www.publi24.ro/anunt/a/1.html"},
	}}
	store := &fakeURLStore{saveErr: fmt.Errorf("disk full")}

	uc, err := NewDiscoverListingsUseCase(fetcher, store, 1)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background())
	assert.ErrorContains(t, err, "disk full")
}

func TestDiscoverListings_CancelledContextStops(t *testing.T) {
	fetcher := &fakeSearchFetcher{pages: map[int][]string{}}
	store := &fakeURLStore{}

	uc, err := NewDiscoverListingsUseCase(fetcher, store, 100)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = uc.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fetcher.calls)
}

func TestNewDiscoverListingsUseCase_Validation(t *testing.T) {
	store := &fakeURLStore{}
	fetcher := &fakeSearchFetcher{}

	_, err := NewDiscoverListingsUseCase(nil, store, 1)
	assert.Error(t, err)

	_, err = NewDiscoverListingsUseCase(fetcher, nil, 1)
	assert.Error(t, err)

	_, err = NewDiscoverListingsUseCase(fetcher, store, 0)
	assert.Error(t, err)
}
