package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/andrescamacho/fuelrouter-go/internal/domain/geo"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/planning"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/shared"
	"github.com/andrescamacho/fuelrouter-go/internal/infrastructure/cache"
	"github.com/andrescamacho/fuelrouter-go/internal/infrastructure/config"
)

const (
	metersToMiles = 0.000621371
	backoffBase   = 300 * time.Millisecond
)

// Client fetches driving routes from an OSRM-compatible /route/v1/driving
// endpoint. Responses keep the engine's (lon, lat) axis order.
type Client struct {
	baseURL    string
	retryCount int
	httpClient *http.Client
	cache      *cache.TTLCache[planning.RouteData]
	clock      shared.Clock
	logger     *logrus.Logger
}

// NewClient creates an OSRM client from config
func NewClient(cfg *config.OSRMConfig, logger *logrus.Logger) *Client {
	return NewClientWithClock(cfg, logger, shared.NewRealClock())
}

// NewClientWithClock creates an OSRM client with a custom clock.
// If clock is nil, uses RealClock.
func NewClientWithClock(cfg *config.OSRMConfig, logger *logrus.Logger, clock shared.Clock) *Client {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		retryCount: cfg.RetryCount,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache.New[planning.RouteData](cfg.CacheTTL),
		clock:      clock,
		logger:     logger,
	}
}

// RouteThrough fetches the driving route visiting waypoints in order. The
// current planner only passes start and finish, but any list of two or more
// waypoints is accepted to support later through-routing.
func (c *Client) RouteThrough(ctx context.Context, waypoints []geo.Point) (*planning.RouteData, error) {
	if len(waypoints) < 2 {
		return nil, shared.NewNoRouteFoundError("at least two waypoints are required")
	}

	cacheKey := cache.Key(waypointKey(waypoints))
	if cached, ok := c.cache.Get(cacheKey); ok {
		return &cached, nil
	}

	coords := make([]string, len(waypoints))
	for i, wp := range waypoints {
		coords[i] = fmt.Sprintf("%.6f,%.6f", wp.Longitude, wp.Latitude)
	}
	endpoint := fmt.Sprintf(
		"%s/route/v1/driving/%s?overview=full&geometries=geojson&steps=false&annotations=false",
		c.baseURL,
		strings.Join(coords, ";"),
	)

	var lastErr error
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		route, err := c.fetch(ctx, endpoint)
		if err == nil {
			c.cache.Set(cacheKey, *route)
			return route, nil
		}

		var noRoute *shared.NoRouteFoundError
		if errors.As(err, &noRoute) {
			return nil, err
		}

		lastErr = err
		if attempt < c.retryCount {
			c.logger.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"error":   err.Error(),
			}).Warn("routing request failed, retrying")
			c.clock.Sleep(backoffBase * time.Duration(attempt+1))
		}
	}

	return nil, shared.NewExternalServiceError("routing request failed", lastErr)
}

func waypointKey(waypoints []geo.Point) string {
	parts := make([]string, len(waypoints))
	for i, wp := range waypoints {
		parts[i] = fmt.Sprintf("%.5f:%.5f", wp.Latitude, wp.Longitude)
	}
	return strings.Join(parts, "|")
}

func (c *Client) fetch(ctx context.Context, endpoint string) (*planning.RouteData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read routing response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing returned status %d", resp.StatusCode)
	}

	return parseResponse(body)
}

func parseResponse(body []byte) (*planning.RouteData, error) {
	var payload struct {
		Code   string `json:"code"`
		Routes []struct {
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"routes"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode routing response: %w", err)
	}

	if payload.Code != "Ok" || len(payload.Routes) == 0 {
		return nil, shared.NewNoRouteFoundError("could not compute route")
	}

	first := payload.Routes[0]
	if len(first.Geometry.Coordinates) < 2 {
		return nil, shared.NewNoRouteFoundError("route geometry unavailable")
	}

	coordinates := make([][2]float64, len(first.Geometry.Coordinates))
	for i, coord := range first.Geometry.Coordinates {
		if len(coord) < 2 {
			return nil, shared.NewNoRouteFoundError("route geometry unavailable")
		}
		coordinates[i] = [2]float64{coord[0], coord[1]}
	}

	return &planning.RouteData{
		Coordinates:     coordinates,
		DistanceMiles:   first.Distance * metersToMiles,
		DurationSeconds: first.Duration,
	}, nil
}
