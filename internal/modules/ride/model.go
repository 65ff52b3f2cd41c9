// README: Ride aggregate, commit command, and errors.
package ride

import (
	"errors"
	"time"

	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/types"
)

type RideID int64

// Ride is an immutable record of one committed trip.
type Ride struct {
	ID          RideID            `json:"id"`
	CustomerID  types.ID          `json:"customer_id"`
	DriverID    types.ID          `json:"driver_id"`
	VehicleID   fleet.VehicleID   `json:"vehicle_id"`
	Source      location.NodeID   `json:"source"`
	Destination location.NodeID   `json:"destination"`
	Path        []location.NodeID `json:"path"`
	Distance    float64           `json:"distance"`
	Fare        float64           `json:"fare"`
	Commission  float64           `json:"commission"`
	CreatedAt   time.Time         `json:"created_at"`
}

// DriverShare is what the driver keeps after commission.
func (r *Ride) DriverShare() float64 {
	return r.Fare - r.Commission
}

type CommitCommand struct {
	CustomerID  types.ID
	DriverID    types.ID
	VehicleID   fleet.VehicleID
	Source      location.NodeID
	Destination location.NodeID
}

var (
	ErrBadRequest         = errors.New("bad request")
	ErrNoRoute            = errors.New("no route between locations")
	ErrDriverResting      = errors.New("driver is resting")
	ErrVehicleUnavailable = errors.New("vehicle unavailable")
	ErrDriverMismatch     = errors.New("vehicle is not driven by this driver")
	ErrNotFound           = errors.New("ride not found")
)
