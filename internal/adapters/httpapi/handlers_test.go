package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelrouter-go/internal/adapters/httpapi"
	appplanning "github.com/andrescamacho/fuelrouter-go/internal/application/planning"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/shared"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/station"
	"github.com/andrescamacho/fuelrouter-go/internal/infrastructure/config"
)

type stubPlanner struct {
	resp *appplanning.PlanResponse
	err  error
}

func (s *stubPlanner) Plan(context.Context, *appplanning.PlanRequest) (*appplanning.PlanResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type stubStationCounts struct {
	station.Repository

	total    int64
	geocoded int64
}

func (s *stubStationCounts) CountAll(context.Context) (int64, error)      { return s.total, nil }
func (s *stubStationCounts) CountGeocoded(context.Context) (int64, error) { return s.geocoded, nil }

func newTestRouter(planner httpapi.Planner) http.Handler {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	handler := httpapi.NewHandler(planner, &stubStationCounts{total: 8000, geocoded: 7200}, logger)
	return httpapi.NewRouter(handler, &config.ServerConfig{Address: ":0"}, logger)
}

func postPlan(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/route-plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Error struct {
			Code    string          `json:"code"`
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

const validBody = `{"start_location": "Tulsa, OK", "finish_location": "Oklahoma City, OK"}`

func TestPlanRoute_HappyPath(t *testing.T) {
	// Arrange
	planner := &stubPlanner{resp: &appplanning.PlanResponse{
		OptimizerUsed: "baseline",
		Stops:         []appplanning.FuelStopResponse{},
		Summary:       appplanning.SummaryResponse{DistanceMiles: 106.422},
	}}
	router := newTestRouter(planner)

	// Act
	rec := postPlan(t, router, validBody)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp appplanning.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "baseline", resp.OptimizerUsed)
	assert.Equal(t, 106.422, resp.Summary.DistanceMiles)
}

func TestPlanRoute_RejectsUnknownFields(t *testing.T) {
	// Arrange
	router := newTestRouter(&stubPlanner{})

	// Act
	rec := postPlan(t, router, `{"start_location": "Tulsa, OK", "finish_location": "OKC", "vehicle": "truck"}`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeErrorCode(t, rec))
}

func TestPlanRoute_RejectsMalformedJSON(t *testing.T) {
	// Arrange
	router := newTestRouter(&stubPlanner{})

	// Act
	rec := postPlan(t, router, `{"start_location": `)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeErrorCode(t, rec))
}

func TestPlanRoute_ValidationErrorsCarryFieldDetails(t *testing.T) {
	// Arrange
	router := newTestRouter(&stubPlanner{})

	// Act
	rec := postPlan(t, router, `{"start_location": "Tulsa, OK", "finish_location": "OK", "start_fuel_percent": 150}`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "validation_error", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Details, "finish_location")
	assert.Contains(t, envelope.Error.Details, "start_fuel_percent")
}

func TestPlanRoute_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid location",
			err:        shared.NewInvalidLocationError("location could not be resolved"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_location",
		},
		{
			name:       "no feasible plan",
			err:        shared.NewNoFeasibleFuelPlanError("route contains a gap longer than the vehicle range"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "no_feasible_plan",
		},
		{
			name:       "no route",
			err:        shared.NewNoRouteFoundError("could not compute route"),
			wantStatus: http.StatusBadGateway,
			wantCode:   "no_route",
		},
		{
			name:       "upstream failure",
			err:        shared.NewExternalServiceError("routing request failed", nil),
			wantStatus: http.StatusBadGateway,
			wantCode:   "upstream_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router := newTestRouter(&stubPlanner{err: tt.err})

			// Act
			rec := postPlan(t, router, validBody)

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeErrorCode(t, rec))
		})
	}
}

func TestHealth_ReportsCatalogCoverage(t *testing.T) {
	// Arrange
	router := newTestRouter(&stubPlanner{})

	// Act
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status   string `json:"status"`
		Stations struct {
			Total    int64 `json:"total"`
			Geocoded int64 `json:"geocoded"`
		} `json:"stations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(8000), resp.Stations.Total)
	assert.Equal(t, int64(7200), resp.Stations.Geocoded)
}
