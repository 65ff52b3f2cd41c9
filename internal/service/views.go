// README: Name-addressed views returned by the dispatcher.
package service

import (
	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/ride"
	"cabdispatch/internal/types"
)

type LocationView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RoadView struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
}

type RouteView struct {
	From     string      `json:"from"`
	To       string      `json:"to"`
	Distance float64     `json:"distance"`
	Path     []string    `json:"path"`
	Estimate types.Money `json:"estimate"`
}

type VehicleView struct {
	ID        fleet.VehicleID `json:"id"`
	DriverID  types.ID        `json:"driver_id"`
	Location  string          `json:"location"`
	Available bool            `json:"available"`
}

type CandidateView struct {
	VehicleID        fleet.VehicleID `json:"vehicle_id"`
	DriverID         types.ID        `json:"driver_id"`
	Location         string          `json:"location"`
	DistanceToPickup float64         `json:"distance_to_pickup"`
	DriverTrips      int             `json:"driver_trips"`
}

type MoveView struct {
	VehicleID fleet.VehicleID `json:"vehicle_id"`
	From      string          `json:"from"`
	To        string          `json:"to"`
}

type DriverSummary struct {
	ID            types.ID     `json:"id"`
	Name          string       `json:"name"`
	TotalTrips    int          `json:"total_trips"`
	TotalFare     float64      `json:"total_fare"`
	TotalEarnings float64      `json:"total_earnings"`
	Commission    float64      `json:"commission"`
	Resting       bool         `json:"resting"`
	Vehicle       *VehicleView `json:"vehicle,omitempty"`
	Rides         []ride.Event `json:"rides"`
}

type FleetSummary struct {
	Drivers         []DriverSummary `json:"drivers"`
	Rides           int             `json:"rides"`
	TotalFare       float64         `json:"total_fare"`
	TotalCommission float64         `json:"total_commission"`
}

// CommitRequest names an explicit assignment chosen by the caller.
type CommitRequest struct {
	CustomerID types.ID        `json:"customer_id"`
	DriverID   types.ID        `json:"driver_id"`
	VehicleID  fleet.VehicleID `json:"vehicle_id"`
	Pickup     string          `json:"pickup"`
	Dropoff    string          `json:"dropoff"`
}
