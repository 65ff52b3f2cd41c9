// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/modules/pricing"
	"cabdispatch/internal/modules/ride"
	"cabdispatch/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID accepts short ids made of letters, digits, '-' and '_'.
func isValidID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// StatusFor maps dispatcher errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, location.ErrUnknownNode),
		errors.Is(err, fleet.ErrUnknownLocation),
		errors.Is(err, fleet.ErrUnknownVehicle),
		errors.Is(err, fleet.ErrUnknownDriver),
		errors.Is(err, ride.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, location.ErrInvalidWeight),
		errors.Is(err, location.ErrBadName),
		errors.Is(err, fleet.ErrBadRequest),
		errors.Is(err, ride.ErrBadRequest),
		errors.Is(err, pricing.ErrInvalidDistance):
		return http.StatusBadRequest
	case errors.Is(err, location.ErrNodeInUse),
		errors.Is(err, location.ErrDuplicateName),
		errors.Is(err, fleet.ErrDriverExists),
		errors.Is(err, fleet.ErrDriverAlreadyAssigned),
		errors.Is(err, ride.ErrDriverResting),
		errors.Is(err, ride.ErrVehicleUnavailable),
		errors.Is(err, ride.ErrDriverMismatch),
		errors.Is(err, ride.ErrNoRoute),
		errors.Is(err, service.ErrNoCandidates):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeDispatchError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		writeError(c, status, "internal error")
		return
	}
	writeError(c, status, err.Error())
}
