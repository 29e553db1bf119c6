package geocoding_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelrouter-go/internal/adapters/geocoding"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/shared"
	"github.com/andrescamacho/fuelrouter-go/internal/infrastructure/config"
)

const nominatimHit = `[{"lat":"36.15398","lon":"-95.99277","address":{"country_code":"us"}}]`

func newTestClient(t *testing.T, serverURL string) *geocoding.Client {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	cfg := &config.GeocodingConfig{
		BaseURL:    serverURL,
		UserAgent:  "fuelrouter-test/1.0",
		Timeout:    2 * time.Second,
		RetryCount: 2,
		CacheTTL:   time.Minute,
		RateLimit:  config.RateLimitConfig{Requests: 1000, Burst: 1000},
	}
	return geocoding.NewClientWithClock(cfg, logger, shared.NewMockClock(time.Time{}))
}

func TestGeocode_ResolvesLocation(t *testing.T) {
	// Arrange
	var gotUserAgent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent.Store(r.Header.Get("User-Agent"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "us", r.URL.Query().Get("countrycodes"))
		w.Write([]byte(nominatimHit))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	// Act
	result, err := client.Geocode(context.Background(), "Tulsa, OK", "us")

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 36.15398, result.Point.Latitude, 1e-9)
	assert.InDelta(t, -95.99277, result.Point.Longitude, 1e-9)
	assert.Equal(t, "us", result.CountryCode)
	assert.Equal(t, "fuelrouter-test/1.0", gotUserAgent.Load())
}

func TestGeocode_CachesResolvedLocations(t *testing.T) {
	// Arrange
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(nominatimHit))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	// Act - same query twice, case-insensitive
	_, err := client.Geocode(context.Background(), "Tulsa, OK", "us")
	require.NoError(t, err)
	result, err := client.Geocode(context.Background(), "TULSA, ok", "us")

	// Assert - second call is served from cache
	require.NoError(t, err)
	assert.InDelta(t, 36.15398, result.Point.Latitude, 1e-9)
	assert.Equal(t, int64(1), requests.Load())
}

func TestGeocode_RetriesTransientFailures(t *testing.T) {
	// Arrange - first attempt fails, second succeeds
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(nominatimHit))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	// Act
	result, err := client.Geocode(context.Background(), "Tulsa, OK", "us")

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 36.15398, result.Point.Latitude, 1e-9)
	assert.Equal(t, int64(2), requests.Load())
}

func TestGeocode_ExhaustedRetriesReturnExternalServiceError(t *testing.T) {
	// Arrange - always fails
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	// Act
	_, err := client.Geocode(context.Background(), "Tulsa, OK", "us")

	// Assert - initial attempt plus two retries
	var svcErr *shared.ExternalServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, int64(3), requests.Load())
}

func TestGeocode_EmptyResultIsInvalidLocation(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	// Act
	_, err := client.Geocode(context.Background(), "Nowhereville Fake Address 00000", "us")

	// Assert
	var invalid *shared.InvalidLocationError
	require.ErrorAs(t, err, &invalid)
}

func TestGeocode_CountryMismatchIsNotRetried(t *testing.T) {
	// Arrange - Toronto resolves outside the requested country
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`[{"lat":"43.65348","lon":"-79.38393","address":{"country_code":"ca"}}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	// Act
	_, err := client.Geocode(context.Background(), "Toronto, ON", "us")

	// Assert
	var invalid *shared.InvalidLocationError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "USA")
	assert.Equal(t, int64(1), requests.Load())
}
