package shared

import "fmt"

// DomainError is the base error type for all route-planning errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// InvalidLocationError indicates an input location could not be resolved
// or resolved outside the USA. Never retried.
type InvalidLocationError struct {
	*DomainError
}

func NewInvalidLocationError(message string) *InvalidLocationError {
	return &InvalidLocationError{DomainError: &DomainError{Message: message}}
}

// NoRouteFoundError indicates the routing engine refused the request or
// returned degenerate geometry.
type NoRouteFoundError struct {
	*DomainError
}

func NewNoRouteFoundError(message string) *NoRouteFoundError {
	return &NoRouteFoundError{DomainError: &DomainError{Message: message}}
}

// NoFeasibleFuelPlanError indicates the route cannot be traversed within the
// vehicle's fuel constraints.
type NoFeasibleFuelPlanError struct {
	*DomainError
}

func NewNoFeasibleFuelPlanError(message string) *NoFeasibleFuelPlanError {
	return &NoFeasibleFuelPlanError{DomainError: &DomainError{Message: message}}
}

// ExternalServiceError indicates an upstream API call failed after retries
// were exhausted.
type ExternalServiceError struct {
	*DomainError
	Cause error
}

func NewExternalServiceError(message string, cause error) *ExternalServiceError {
	return &ExternalServiceError{
		DomainError: &DomainError{Message: message},
		Cause:       cause,
	}
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}

// ValidationError carries a per-field constraint violation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
