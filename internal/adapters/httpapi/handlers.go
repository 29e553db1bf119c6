package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	appplanning "github.com/andrescamacho/fuelrouter-go/internal/application/planning"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/station"
)

// Planner is the application service the API exposes.
type Planner interface {
	Plan(ctx context.Context, req *appplanning.PlanRequest) (*appplanning.PlanResponse, error)
}

// Handler serves the route-planning API.
type Handler struct {
	planner  Planner
	stations station.Repository
	logger   *logrus.Logger
}

// NewHandler creates the API handler.
func NewHandler(planner Planner, stations station.Repository, logger *logrus.Logger) *Handler {
	return &Handler{planner: planner, stations: stations, logger: logger}
}

// PlanRoute handles POST /api/v1/route-plan.
func (h *Handler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	var req appplanning.PlanRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidJSON, "request body is not valid JSON: "+err.Error(), nil)
		return
	}

	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	resp, err := h.planner.Plan(r.Context(), &req)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"start":  req.StartLocation,
			"finish": req.FinishLocation,
			"error":  err.Error(),
		}).Warn("plan request failed")
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type healthStations struct {
	Total    int64 `json:"total"`
	Geocoded int64 `json:"geocoded"`
}

type healthResponse struct {
	Status   string         `json:"status"`
	Stations healthStations `json:"stations"`
}

// Health handles GET /api/v1/health with catalog coverage counts.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	total, err := h.stations.CountAll(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, codeUpstreamError, "station catalog unavailable", nil)
		return
	}
	geocoded, err := h.stations.CountGeocoded(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, codeUpstreamError, "station catalog unavailable", nil)
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Stations: healthStations{Total: total, Geocoded: geocoded},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
