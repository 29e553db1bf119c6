package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/fuelrouter-go/internal/domain/geo"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/planning"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/shared"
	"github.com/andrescamacho/fuelrouter-go/internal/infrastructure/cache"
	"github.com/andrescamacho/fuelrouter-go/internal/infrastructure/config"
)

const backoffBase = 300 * time.Millisecond

// Client resolves free-form addresses against a Nominatim-compatible /search
// endpoint, with caching, linear-backoff retries and a politeness rate limit.
type Client struct {
	baseURL    string
	userAgent  string
	retryCount int
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.TTLCache[planning.GeocodedLocation]
	clock      shared.Clock
	logger     *logrus.Logger
}

// NewClient creates a geocoding client from config
func NewClient(cfg *config.GeocodingConfig, logger *logrus.Logger) *Client {
	return NewClientWithClock(cfg, logger, shared.NewRealClock())
}

// NewClientWithClock creates a geocoding client with a custom clock.
// If clock is nil, uses RealClock.
func NewClientWithClock(cfg *config.GeocodingConfig, logger *logrus.Logger, clock shared.Clock) *Client {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		retryCount: cfg.RetryCount,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit.Requests), cfg.RateLimit.Burst),
		cache:      cache.New[planning.GeocodedLocation](cfg.CacheTTL),
		clock:      clock,
		logger:     logger,
	}
}

// Geocode resolves query to a coordinate, requiring the result to lie in
// countryCode when the response carries one. InvalidLocationError is never
// retried; transport failures are retried with linear backoff and surface as
// ExternalServiceError once retries are exhausted.
func (c *Client) Geocode(ctx context.Context, query, countryCode string) (*planning.GeocodedLocation, error) {
	cacheKey := cache.Key(strings.ToLower(query) + "|" + countryCode)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return &cached, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")
	if countryCode != "" {
		params.Set("countrycodes", countryCode)
	}
	endpoint := c.baseURL + "/search?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		result, err := c.fetch(ctx, endpoint, countryCode)
		if err == nil {
			c.cache.Set(cacheKey, *result)
			return result, nil
		}

		var invalid *shared.InvalidLocationError
		if errors.As(err, &invalid) {
			return nil, err
		}

		lastErr = err
		if attempt < c.retryCount {
			c.logger.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"error":   err.Error(),
			}).Warn("geocoding request failed, retrying")
			c.clock.Sleep(backoffBase * time.Duration(attempt+1))
		}
	}

	return nil, shared.NewExternalServiceError("geocoding request failed", lastErr)
}

func (c *Client) fetch(ctx context.Context, endpoint, expectedCountry string) (*planning.GeocodedLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read geocoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding returned status %d", resp.StatusCode)
	}

	return parseResult(body, expectedCountry)
}

func parseResult(body []byte, expectedCountry string) (*planning.GeocodedLocation, error) {
	var payload []struct {
		Lat     string `json:"lat"`
		Lon     string `json:"lon"`
		Address struct {
			CountryCode string `json:"country_code"`
		} `json:"address"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return nil, shared.NewInvalidLocationError("location could not be resolved")
	}

	first := payload[0]
	latitude, latErr := strconv.ParseFloat(first.Lat, 64)
	longitude, lonErr := strconv.ParseFloat(first.Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, shared.NewInvalidLocationError("invalid geocoding response")
	}

	countryCode := strings.ToLower(first.Address.CountryCode)
	if expectedCountry != "" && countryCode != "" && countryCode != strings.ToLower(expectedCountry) {
		return nil, shared.NewInvalidLocationError("location must be within the USA")
	}

	return &planning.GeocodedLocation{
		Point:       geo.Point{Latitude: latitude, Longitude: longitude},
		CountryCode: countryCode,
	}, nil
}
