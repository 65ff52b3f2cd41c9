// README: Ride handlers for candidates, hails, commits, and reports.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/service"
	"cabdispatch/internal/types"
)

type RideHandler struct {
	dispatch *service.Dispatcher
}

func NewRideHandler(d *service.Dispatcher) *RideHandler {
	return &RideHandler{dispatch: d}
}

type requestRideReq struct {
	CustomerID string `json:"customer_id"`
	Pickup     string `json:"pickup"`
	Dropoff    string `json:"dropoff"`
}

type commitReq struct {
	CustomerID string `json:"customer_id"`
	DriverID   string `json:"driver_id"`
	VehicleID  int64  `json:"vehicle_id"`
	Pickup     string `json:"pickup"`
	Dropoff    string `json:"dropoff"`
}

func (h *RideHandler) Candidates(c *gin.Context) {
	pickup := c.Query("pickup")
	if pickup == "" {
		writeError(c, http.StatusBadRequest, "missing pickup")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"candidates": h.dispatch.FindCandidates(pickup)})
}

func (h *RideHandler) Request(c *gin.Context) {
	var req requestRideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.CustomerID) || req.Pickup == "" || req.Dropoff == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	ev, err := h.dispatch.RequestRide(c.Request.Context(), types.ID(req.CustomerID), req.Pickup, req.Dropoff)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, ev)
}

func (h *RideHandler) Commit(c *gin.Context) {
	var req commitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.CustomerID) {
		writeError(c, http.StatusBadRequest, "invalid customer id")
		return
	}
	ev, err := h.dispatch.Commit(c.Request.Context(), service.CommitRequest{
		CustomerID: types.ID(req.CustomerID),
		DriverID:   types.ID(req.DriverID),
		VehicleID:  fleet.VehicleID(req.VehicleID),
		Pickup:     req.Pickup,
		Dropoff:    req.Dropoff,
	})
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, ev)
}

func (h *RideHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"rides": h.dispatch.Rides()})
}

func (h *RideHandler) CustomerHistory(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"rides": h.dispatch.CustomerHistory(types.ID(c.Param("id")))})
}

func (h *RideHandler) Fleet(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.dispatch.FleetSummary())
}

func (h *RideHandler) Commission(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"total_commission": h.dispatch.CommissionTotal()})
}
