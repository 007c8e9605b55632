package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals malformed pipeline input (fail-fast, before any I/O).
	ErrValidation = errors.New("validation failed")
	// ErrNoSpotsFound signals that no tourist spots matched the keywords.
	ErrNoSpotsFound = errors.New("no spots found")
	// ErrGenerationProviderError signals a text-generation provider failure.
	// Never surfaces past the content generator: it triggers the deterministic fallback.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrImageProviderError signals a location-image lookup failure.
	ErrImageProviderError = errors.New("image provider error")
	// ErrRoutePersistFailed signals that a generated route could not be saved.
	ErrRoutePersistFailed = errors.New("route persist failed")
	// ErrRouteNotFound signals a missing route.
	ErrRouteNotFound = errors.New("route not found")
	// ErrSpotNotFound signals a missing tourist spot.
	ErrSpotNotFound = errors.New("spot not found")
)

// KeyPrefix namespaces all redis keys written by this service.
const KeyPrefix = "tourii:"

// ValidationError wraps ErrValidation with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a field-level validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
