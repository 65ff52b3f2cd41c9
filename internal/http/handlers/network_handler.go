// README: Network handlers for locations, roads, and routes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdispatch/internal/service"
)

type NetworkHandler struct {
	dispatch *service.Dispatcher
}

func NewNetworkHandler(d *service.Dispatcher) *NetworkHandler {
	return &NetworkHandler{dispatch: d}
}

type locationReq struct {
	Name string `json:"name"`
}

type roadReq struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
}

func (h *NetworkHandler) ListLocations(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"locations": h.dispatch.Locations()})
}

func (h *NetworkHandler) CreateLocation(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	loc, err := h.dispatch.AddLocation(req.Name)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, loc)
}

func (h *NetworkHandler) RenameLocation(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	loc, err := h.dispatch.RenameLocation(c.Param("name"), req.Name)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, loc)
}

func (h *NetworkHandler) DeleteLocation(c *gin.Context) {
	if err := h.dispatch.RemoveLocation(c.Param("name")); err != nil {
		writeDispatchError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NetworkHandler) ListRoads(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"roads": h.dispatch.Roads()})
}

func (h *NetworkHandler) CreateRoad(c *gin.Context) {
	var req roadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.From == "" || req.To == "" {
		writeError(c, http.StatusBadRequest, "missing from/to")
		return
	}
	if err := h.dispatch.Connect(req.From, req.To, req.Distance); err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, service.RoadView{From: req.From, To: req.To, Distance: req.Distance})
}

func (h *NetworkHandler) Route(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		writeError(c, http.StatusBadRequest, "missing from/to")
		return
	}
	route, err := h.dispatch.Route(c.Request.Context(), from, to)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, route)
}
