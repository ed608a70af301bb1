package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/pageza/dietplan/backend/internal/models"
)

// ErrNoChoices is returned when the completion API answers 200 without any
// generated choice.
var ErrNoChoices = errors.New("no choices in completion API response")

// ErrNoContent is returned when the first choice carries no text.
var ErrNoContent = errors.New("no message content in completion API response")

// ValidationError means the client's input was missing or malformed.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// UpstreamError carries a non-success answer from the completion API. The
// status code is relayed to the caller unchanged.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Failed to fetch from completion API: %s", e.Body)
}

// ComplianceError means the generated plan contained a term denied for the
// requested diet. The plan itself is discarded.
type ComplianceError struct {
	Diet models.DietType
	Term string
}

func (e *ComplianceError) Error() string {
	return fmt.Sprintf("Generated diet contains non-%s items. Please try again.", e.Diet.Label())
}

// TimeoutError means the completion API did not answer within the configured
// bound.
type TimeoutError struct {
	Timeout time.Duration
	Cause   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Completion API request timed out after %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
