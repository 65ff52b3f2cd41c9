// README: End-to-end HTTP tests through the gin router and an in-memory dispatcher.
package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	dispatchhttp "cabdispatch/internal/http"
	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/pricing"
	"cabdispatch/internal/service"
)

func buildTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	d, err := service.NewDispatcher(service.Options{Rate: pricing.DefaultRate(), Keep: fleet.DefaultKeep, Chooser: fleet.FirstChooser})
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	return dispatchhttp.NewRouter(d)
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

// seedNetwork builds A -2- B -3- C with driver d1 parked at A.
func seedNetwork(t *testing.T, r *gin.Engine) {
	t.Helper()
	for _, n := range []string{"A", "B", "C"} {
		mustStatus(t, doRequest(r, http.MethodPost, "/api/locations", map[string]any{"name": n}), http.StatusCreated)
	}
	mustStatus(t, doRequest(r, http.MethodPost, "/api/roads", map[string]any{"from": "A", "to": "B", "distance": 2}), http.StatusCreated)
	mustStatus(t, doRequest(r, http.MethodPost, "/api/roads", map[string]any{"from": "B", "to": "C", "distance": 3}), http.StatusCreated)
	mustStatus(t, doRequest(r, http.MethodPost, "/api/drivers", map[string]any{"id": "d1", "name": "Asha", "location": "A"}), http.StatusCreated)
}

func TestHealth(t *testing.T) {
	r := buildTestRouter(t)
	w := doRequest(r, http.MethodGet, "/health", nil)
	mustStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestRouteEndpoint(t *testing.T) {
	r := buildTestRouter(t)
	seedNetwork(t, r)

	w := doRequest(r, http.MethodGet, "/api/routes?from=a&to=c", nil)
	mustStatus(t, w, http.StatusOK)
	var route service.RouteView
	decode(t, w, &route)
	if route.Distance != 5 || len(route.Path) != 3 || route.Estimate.Amount != 50 {
		t.Fatalf("unexpected route %+v", route)
	}

	mustStatus(t, doRequest(r, http.MethodGet, "/api/routes?from=A&to=Z", nil), http.StatusNotFound)
	mustStatus(t, doRequest(r, http.MethodGet, "/api/routes?from=A", nil), http.StatusBadRequest)
}

func TestRoadValidation(t *testing.T) {
	r := buildTestRouter(t)
	seedNetwork(t, r)
	mustStatus(t, doRequest(r, http.MethodPost, "/api/roads", map[string]any{"from": "A", "to": "C", "distance": 0}), http.StatusBadRequest)
	mustStatus(t, doRequest(r, http.MethodPost, "/api/roads", map[string]any{"from": "A", "to": "Q", "distance": 1}), http.StatusNotFound)
}

func TestRideFlow(t *testing.T) {
	r := buildTestRouter(t)
	seedNetwork(t, r)

	w := doRequest(r, http.MethodGet, "/api/candidates?pickup=B", nil)
	mustStatus(t, w, http.StatusOK)
	var cands struct {
		Candidates []service.CandidateView `json:"candidates"`
	}
	decode(t, w, &cands)
	if len(cands.Candidates) != 1 || cands.Candidates[0].DistanceToPickup != 2 {
		t.Fatalf("unexpected candidates %+v", cands)
	}

	w = doRequest(r, http.MethodPost, "/api/rides", map[string]any{"customer_id": "c1", "pickup": "B", "dropoff": "C"})
	mustStatus(t, w, http.StatusCreated)
	var ride struct {
		RideID   int64   `json:"ride_id"`
		DriverID string  `json:"driver_id"`
		Fare     float64 `json:"fare"`
	}
	decode(t, w, &ride)
	if ride.RideID != 1 || ride.DriverID != "d1" || ride.Fare != 30 {
		t.Fatalf("unexpected ride %+v", ride)
	}

	// d1 now rests, so a second hail has nobody to send.
	mustStatus(t, doRequest(r, http.MethodPost, "/api/rides", map[string]any{"customer_id": "c2", "pickup": "C", "dropoff": "A"}), http.StatusConflict)

	w = doRequest(r, http.MethodGet, "/api/locations/C/vehicles", nil)
	mustStatus(t, w, http.StatusOK)
	var at struct {
		Vehicles []service.VehicleView `json:"vehicles"`
	}
	decode(t, w, &at)
	if len(at.Vehicles) != 1 || at.Vehicles[0].DriverID != "d1" {
		t.Fatalf("unexpected vehicles %+v", at)
	}

	mustStatus(t, doRequest(r, http.MethodDelete, "/api/drivers/d1/rest", nil), http.StatusOK)
	w = doRequest(r, http.MethodPost, "/api/rides/commit", map[string]any{
		"customer_id": "c2", "driver_id": "d1", "vehicle_id": 1, "pickup": "C", "dropoff": "A",
	})
	mustStatus(t, w, http.StatusCreated)

	w = doRequest(r, http.MethodGet, "/api/customers/c1/rides", nil)
	mustStatus(t, w, http.StatusOK)
	var hist struct {
		Rides []map[string]any `json:"rides"`
	}
	decode(t, w, &hist)
	if len(hist.Rides) != 1 {
		t.Fatalf("unexpected history %+v", hist)
	}

	w = doRequest(r, http.MethodGet, "/api/commission", nil)
	mustStatus(t, w, http.StatusOK)
	var comm struct {
		Total float64 `json:"total_commission"`
	}
	decode(t, w, &comm)
	// 30 * 0.3 + 50 * 0.3
	if comm.Total < 23.999 || comm.Total > 24.001 {
		t.Fatalf("total commission = %v", comm.Total)
	}

	w = doRequest(r, http.MethodGet, "/api/drivers/d1/summary", nil)
	mustStatus(t, w, http.StatusOK)
	var sum service.DriverSummary
	decode(t, w, &sum)
	if sum.TotalTrips != 2 || !sum.Resting || len(sum.Rides) != 2 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestCommitErrors(t *testing.T) {
	r := buildTestRouter(t)
	seedNetwork(t, r)

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing customer", map[string]any{"driver_id": "d1", "vehicle_id": 1, "pickup": "A", "dropoff": "B"}, http.StatusBadRequest},
		{"unknown vehicle", map[string]any{"customer_id": "c1", "driver_id": "d1", "vehicle_id": 9, "pickup": "A", "dropoff": "B"}, http.StatusNotFound},
		{"unknown driver", map[string]any{"customer_id": "c1", "driver_id": "zz", "vehicle_id": 1, "pickup": "A", "dropoff": "B"}, http.StatusNotFound},
		{"unknown dropoff", map[string]any{"customer_id": "c1", "driver_id": "d1", "vehicle_id": 1, "pickup": "A", "dropoff": "Q"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mustStatus(t, doRequest(r, http.MethodPost, "/api/rides/commit", tc.body), tc.want)
		})
	}
}

func TestFleetAdministration(t *testing.T) {
	r := buildTestRouter(t)
	seedNetwork(t, r)

	mustStatus(t, doRequest(r, http.MethodPost, "/api/drivers", map[string]any{"id": "d1"}), http.StatusConflict)
	mustStatus(t, doRequest(r, http.MethodPost, "/api/drivers", map[string]any{"id": "bad id!"}), http.StatusBadRequest)

	for _, id := range []string{"d2", "d3"} {
		mustStatus(t, doRequest(r, http.MethodPost, "/api/drivers", map[string]any{"id": id}), http.StatusCreated)
		mustStatus(t, doRequest(r, http.MethodPost, "/api/vehicles", map[string]any{"driver_id": id, "location": "A"}), http.StatusCreated)
	}
	mustStatus(t, doRequest(r, http.MethodPost, "/api/vehicles", map[string]any{"driver_id": "d2", "location": "B"}), http.StatusConflict)

	w := doRequest(r, http.MethodPost, "/api/locations/A/rebalance", nil)
	mustStatus(t, w, http.StatusOK)
	var moves struct {
		Moves []service.MoveView `json:"moves"`
	}
	decode(t, w, &moves)
	if len(moves.Moves) != 1 || moves.Moves[0].To != "B" {
		t.Fatalf("unexpected moves %+v", moves)
	}

	mustStatus(t, doRequest(r, http.MethodPut, "/api/vehicles/1/location", map[string]any{"location": "C"}), http.StatusOK)
	mustStatus(t, doRequest(r, http.MethodPut, "/api/vehicles/x/location", map[string]any{"location": "C"}), http.StatusBadRequest)
	mustStatus(t, doRequest(r, http.MethodDelete, "/api/locations/C", nil), http.StatusConflict)
	mustStatus(t, doRequest(r, http.MethodDelete, "/api/vehicles/1", nil), http.StatusNoContent)
	mustStatus(t, doRequest(r, http.MethodDelete, "/api/drivers/d3", nil), http.StatusNoContent)
	mustStatus(t, doRequest(r, http.MethodDelete, "/api/drivers/d3", nil), http.StatusNotFound)

	w = doRequest(r, http.MethodGet, "/api/fleet", nil)
	mustStatus(t, w, http.StatusOK)
	var fs service.FleetSummary
	decode(t, w, &fs)
	if len(fs.Drivers) != 2 {
		t.Fatalf("unexpected fleet %+v", fs)
	}

	mustStatus(t, doRequest(r, http.MethodPatch, "/api/locations/B", map[string]any{"name": "central"}), http.StatusOK)
	mustStatus(t, doRequest(r, http.MethodGet, "/api/locations/CENTRAL/vehicles", nil), http.StatusOK)
	mustStatus(t, doRequest(r, http.MethodDelete, "/api/rest", nil), http.StatusOK)
}

func TestOnboardUnknownLocationLeavesNoDriver(t *testing.T) {
	r := buildTestRouter(t)
	seedNetwork(t, r)

	body := map[string]any{"id": "d9", "name": "Meera", "location": "nowhere"}
	mustStatus(t, doRequest(r, http.MethodPost, "/api/drivers", body), http.StatusNotFound)
	mustStatus(t, doRequest(r, http.MethodPost, "/api/drivers", body), http.StatusNotFound)
	mustStatus(t, doRequest(r, http.MethodGet, "/api/drivers/d9/summary", nil), http.StatusNotFound)

	body["location"] = "B"
	w := doRequest(r, http.MethodPost, "/api/drivers", body)
	mustStatus(t, w, http.StatusCreated)
	var created struct {
		Vehicle service.VehicleView `json:"vehicle"`
	}
	decode(t, w, &created)
	if created.Vehicle.Location != "B" || created.Vehicle.DriverID != "d9" {
		t.Fatalf("unexpected vehicle %+v", created.Vehicle)
	}
}
