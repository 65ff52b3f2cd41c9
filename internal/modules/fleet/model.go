// README: Fleet model (drivers, vehicles) and errors.
package fleet

import (
	"errors"

	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/types"
)

type VehicleID int64

type Vehicle struct {
	ID        VehicleID
	DriverID  types.ID
	Location  location.NodeID
	Available bool
}

type Driver struct {
	ID            types.ID
	Name          string
	TotalTrips    int
	TotalFare     float64
	TotalEarnings float64
}

// Move records one vehicle relocation made by the rebalancer.
type Move struct {
	VehicleID VehicleID
	From      location.NodeID
	To        location.NodeID
}

var (
	ErrUnknownVehicle        = errors.New("unknown vehicle")
	ErrUnknownDriver         = errors.New("unknown driver")
	ErrUnknownLocation       = errors.New("unknown location")
	ErrDriverExists          = errors.New("driver already exists")
	ErrDriverAlreadyAssigned = errors.New("driver already has a vehicle")
	ErrBadRequest            = errors.New("bad request")
)
