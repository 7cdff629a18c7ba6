// Package geocoding resolves locality text to coordinates through the
// public Nominatim instance.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/David070920/estimareimob/internal/constants"
	"github.com/David070920/estimareimob/internal/contextkeys"
	"github.com/David070920/estimareimob/internal/core/domain"
	"github.com/David070920/estimareimob/internal/core/port"
)

const nominatimEndpoint = "https://nominatim.openstreetmap.org/search"

// NominatimAdapter implements GeoResolverPort against the public
// Nominatim API. The usage policy caps us at roughly one request per
// second, so every call passes through a rate gate first.
type NominatimAdapter struct {
	client    *http.Client
	endpoint  string
	userAgent string
	delay     time.Duration

	mu       sync.Mutex
	lastCall time.Time

	// injectable for tests
	now   func() time.Time
	sleep func(time.Duration)
}

type NominatimConfig struct {
	UserAgent string
	Delay     time.Duration
	Timeout   time.Duration
}

func NewNominatimAdapter(cfg NominatimConfig) *NominatimAdapter {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &NominatimAdapter{
		client:    &http.Client{Timeout: timeout},
		endpoint:  nominatimEndpoint,
		userAgent: cfg.UserAgent,
		delay:     cfg.Delay,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve geocodes "<locality>, <region>, Romania". Misses and service
// failures both come back wrapped in domain.ErrGeocodeMiss; the caller
// is expected to proceed without coordinates.
func (a *NominatimAdapter) Resolve(ctx context.Context, locality, region string) (*domain.GeoPoint, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "NominatimAdapter(Resolve)",
	})

	a.waitForRateGate()

	query := fmt.Sprintf("%s, %s, %s", locality, region, constants.GeocodeCountry)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", domain.ErrGeocodeMiss, err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", a.userAgent)

	logger.Debug("Geocoding query", port.Fields{"query": query})

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", domain.ErrGeocodeMiss, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrGeocodeMiss, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrGeocodeMiss, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no results for %q", domain.ErrGeocodeMiss, query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad latitude %q", domain.ErrGeocodeMiss, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad longitude %q", domain.ErrGeocodeMiss, results[0].Lon)
	}

	return &domain.GeoPoint{Longitude: lon, Latitude: lat}, nil
}

// waitForRateGate blocks until the configured delay since the previous
// call has elapsed. The gate advances on every attempt, successful or
// not.
func (a *NominatimAdapter) waitForRateGate() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.delay > 0 && !a.lastCall.IsZero() {
		if elapsed := a.now().Sub(a.lastCall); elapsed < a.delay {
			a.sleep(a.delay - elapsed)
		}
	}
	a.lastCall = a.now()
}
