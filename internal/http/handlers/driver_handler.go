// README: Driver handlers for onboarding, removal, rest flags, and summaries.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdispatch/internal/service"
	"cabdispatch/internal/types"
)

type DriverHandler struct {
	dispatch *service.Dispatcher
}

func NewDriverHandler(d *service.Dispatcher) *DriverHandler {
	return &DriverHandler{dispatch: d}
}

type onboardReq struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Onboard adds a driver and, when a location is given, the driver's vehicle.
func (h *DriverHandler) Onboard(c *gin.Context) {
	var req onboardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.ID) {
		writeError(c, http.StatusBadRequest, "invalid driver id")
		return
	}
	id := types.ID(req.ID)
	resp := map[string]any{"id": id, "name": req.Name}
	if req.Location == "" {
		if err := h.dispatch.OnboardDriver(id, req.Name); err != nil {
			writeDispatchError(c, err)
			return
		}
		writeJSON(c, http.StatusCreated, resp)
		return
	}
	v, err := h.dispatch.OnboardDriverWithVehicle(id, req.Name, req.Location)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	resp["vehicle"] = v
	writeJSON(c, http.StatusCreated, resp)
}

func (h *DriverHandler) Remove(c *gin.Context) {
	if err := h.dispatch.RemoveDriver(types.ID(c.Param("id"))); err != nil {
		writeDispatchError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DriverHandler) Summary(c *gin.Context) {
	s, err := h.dispatch.DriverSummary(types.ID(c.Param("id")))
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, s)
}

func (h *DriverHandler) Rest(c *gin.Context) {
	if err := h.dispatch.MarkResting(types.ID(c.Param("id"))); err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"resting": true})
}

func (h *DriverHandler) ClearRest(c *gin.Context) {
	if err := h.dispatch.ClearRest(types.ID(c.Param("id"))); err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"resting": false})
}

func (h *DriverHandler) ClearAllRest(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"cleared": h.dispatch.ClearAllRest()})
}
