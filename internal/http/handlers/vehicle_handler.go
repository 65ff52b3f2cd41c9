// README: Vehicle handlers for registration, relocation, and rebalancing.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/service"
	"cabdispatch/internal/types"
)

type VehicleHandler struct {
	dispatch *service.Dispatcher
}

func NewVehicleHandler(d *service.Dispatcher) *VehicleHandler {
	return &VehicleHandler{dispatch: d}
}

type registerVehicleReq struct {
	DriverID string `json:"driver_id"`
	Location string `json:"location"`
}

type relocateReq struct {
	Location string `json:"location"`
}

func vehicleID(c *gin.Context) (fleet.VehicleID, bool) {
	n, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || n <= 0 {
		writeError(c, http.StatusBadRequest, "invalid vehicle id")
		return 0, false
	}
	return fleet.VehicleID(n), true
}

func (h *VehicleHandler) Register(c *gin.Context) {
	var req registerVehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.DriverID == "" || req.Location == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	v, err := h.dispatch.RegisterVehicle(types.ID(req.DriverID), req.Location)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, v)
}

func (h *VehicleHandler) Relocate(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}
	var req relocateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Location == "" {
		writeError(c, http.StatusBadRequest, "missing location")
		return
	}
	v, err := h.dispatch.RelocateVehicle(id, req.Location)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *VehicleHandler) Remove(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}
	if err := h.dispatch.RemoveVehicle(id); err != nil {
		writeDispatchError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *VehicleHandler) ListAt(c *gin.Context) {
	vs, err := h.dispatch.VehiclesAt(c.Param("name"))
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"vehicles": vs})
}

func (h *VehicleHandler) Rebalance(c *gin.Context) {
	moves, err := h.dispatch.Rebalance(c.Param("name"))
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"moves": moves})
}

func (h *VehicleHandler) RebalanceAll(c *gin.Context) {
	moves, err := h.dispatch.RebalanceAll()
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"moves": moves})
}
