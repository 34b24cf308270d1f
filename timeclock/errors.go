/*
errors.go - Centralized error types for the balance engine

PURPOSE:
  All engine error types in one place. Missing punches are NOT errors -
  they are an expected mid-shift state and come back as an incomplete
  Worked value. Errors here cover the unexpected cases only:
  configuration problems and malformed data that claims to be set.

ERROR CATEGORIES:
  1. Configuration errors - unknown work model, invalid model definition
  2. Data errors - malformed punch time, duplicate punch per slot

USAGE:
  Callers branch with errors.Is():

    if errors.Is(err, timeclock.ErrModelNotFound) {
        // "unknown work schedule, contact admin" - never substitute a
        // default model for a pay-relevant calculation
    }

SEE ALSO:
  - engine.go: Raises these errors
  - catalog.go: ErrModelNotFound from Lookup
*/
package timeclock

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrModelNotFound is returned when a record references a work model
	// absent from the catalog. The caller must supply a valid model; the
	// engine never guesses a default.
	ErrModelNotFound = errors.New("work model not found")

	// ErrModelMismatch is returned when a record is computed against a
	// model whose id differs from the record's work-model id.
	ErrModelMismatch = errors.New("record does not reference this work model")

	// ErrMalformedTime is returned when a punch claims to be set but its
	// value is not a valid HH:MM time.
	ErrMalformedTime = errors.New("malformed clock time")

	// ErrInvalidModel is returned when a work-model definition violates
	// the slot-structure invariants.
	ErrInvalidModel = errors.New("invalid work model definition")

	// ErrDuplicatePunch is returned by stores when a second punch is
	// registered for the same slot on the same day.
	ErrDuplicatePunch = errors.New("duplicate punch for slot")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ModelNotFoundError identifies the missing catalog entry.
type ModelNotFoundError struct {
	ID WorkModelID
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("work model %q not found in catalog", e.ID)
}

func (e *ModelNotFoundError) Unwrap() error { return ErrModelNotFound }

// MalformedTimeError reports the offending punch and raw value.
type MalformedTimeError struct {
	PunchType PunchType
	Value     string
}

func (e *MalformedTimeError) Error() string {
	if e.PunchType == "" {
		return fmt.Sprintf("malformed clock time %q", e.Value)
	}
	return fmt.Sprintf("malformed clock time %q for punch %s", e.Value, e.PunchType)
}

func (e *MalformedTimeError) Unwrap() error { return ErrMalformedTime }

// InvalidModelError explains which invariant a model definition breaks.
type InvalidModelError struct {
	ID     WorkModelID
	Detail string
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("invalid work model %q: %s", e.ID, e.Detail)
}

func (e *InvalidModelError) Unwrap() error { return ErrInvalidModel }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing catalog entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrModelNotFound)
}

// IsClientError returns true if the error is due to invalid input data
// rather than an engine or configuration fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMalformedTime) ||
		errors.Is(err, ErrDuplicatePunch) ||
		errors.Is(err, ErrInvalidModel)
}
