// README: Dispatch candidates ranked for a pickup location.
package matching

import (
	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/types"
)

// Candidate is one eligible vehicle for a pickup.
type Candidate struct {
	VehicleID        fleet.VehicleID `json:"vehicle_id"`
	DriverID         types.ID        `json:"driver_id"`
	Location         location.NodeID `json:"location"`
	DistanceToPickup float64         `json:"distance_to_pickup"`
	DriverTrips      int             `json:"driver_trips"`
}
