package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pageza/dietplan/backend/internal/service"
)

// statusFor maps a pipeline error onto the HTTP status and message returned
// to the caller.
func statusFor(err error) (int, string) {
	var (
		validationErr *service.ValidationError
		complianceErr *service.ComplianceError
		upstreamErr   *service.UpstreamError
		timeoutErr    *service.TimeoutError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &complianceErr):
		return http.StatusBadRequest, complianceErr.Error()
	case errors.As(err, &upstreamErr):
		return upstreamErr.StatusCode, upstreamErr.Error()
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout, timeoutErr.Error()
	default:
		return http.StatusInternalServerError, fmt.Sprintf("An error occurred: %v", err)
	}
}
