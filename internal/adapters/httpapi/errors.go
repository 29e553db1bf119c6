package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	appplanning "github.com/andrescamacho/fuelrouter-go/internal/application/planning"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/shared"
)

// Stable error codes exposed to API clients.
const (
	codeValidationError = "validation_error"
	codeInvalidJSON     = "invalid_json"
	codeInvalidLocation = "invalid_location"
	codeNoFeasiblePlan  = "no_feasible_plan"
	codeNoRoute         = "no_route"
	codeUpstreamError   = "upstream_error"
)

type errorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// writeDomainError maps a domain error kind to its HTTP status and code.
// Unknown errors are reported as upstream failures without leaking internals.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *appplanning.RequestValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, codeValidationError, "request validation failed", validationErr.Details)
		return
	}

	var invalidLocation *shared.InvalidLocationError
	if errors.As(err, &invalidLocation) {
		writeError(w, http.StatusBadRequest, codeInvalidLocation, invalidLocation.Error(), nil)
		return
	}

	var noFeasiblePlan *shared.NoFeasibleFuelPlanError
	if errors.As(err, &noFeasiblePlan) {
		writeError(w, http.StatusUnprocessableEntity, codeNoFeasiblePlan, noFeasiblePlan.Error(), nil)
		return
	}

	var noRoute *shared.NoRouteFoundError
	if errors.As(err, &noRoute) {
		writeError(w, http.StatusBadGateway, codeNoRoute, noRoute.Error(), nil)
		return
	}

	var externalService *shared.ExternalServiceError
	if errors.As(err, &externalService) {
		writeError(w, http.StatusBadGateway, codeUpstreamError, externalService.Error(), nil)
		return
	}

	writeError(w, http.StatusBadGateway, codeUpstreamError, "unexpected internal failure", nil)
}
