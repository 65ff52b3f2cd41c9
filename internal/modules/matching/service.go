// README: Selector ranks available vehicles by distance to the pickup and driver load.
package matching

import (
	"sort"

	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/types"
)

type Fleet interface {
	Vehicles() []fleet.Vehicle
	Driver(id types.ID) (fleet.Driver, bool)
}

type RestLedger interface {
	IsResting(id types.ID) bool
}

// Router reports shortest distances from a node to every node it reaches.
type Router interface {
	DistancesFrom(src location.NodeID) map[location.NodeID]float64
}

type Selector struct {
	fleet  Fleet
	rest   RestLedger
	router Router
}

func NewSelector(f Fleet, rest RestLedger, router Router) *Selector {
	return &Selector{fleet: f, rest: rest, router: router}
}

// FindCandidates returns available, non-resting vehicles that can reach
// pickup, nearest first and then least-used driver first. Equal keys keep
// registration order. An unknown pickup yields no candidates.
func (s *Selector) FindCandidates(pickup location.NodeID) []Candidate {
	// Roads are undirected, so distances from the pickup equal distances to it.
	dist := s.router.DistancesFrom(pickup)
	if len(dist) == 0 {
		return []Candidate{}
	}

	out := []Candidate{}
	for _, v := range s.fleet.Vehicles() {
		if !v.Available || s.rest.IsResting(v.DriverID) {
			continue
		}
		d, ok := dist[v.Location]
		if !ok {
			continue
		}
		trips := 0
		if drv, ok := s.fleet.Driver(v.DriverID); ok {
			trips = drv.TotalTrips
		}
		out = append(out, Candidate{
			VehicleID:        v.ID,
			DriverID:         v.DriverID,
			Location:         v.Location,
			DistanceToPickup: d,
			DriverTrips:      trips,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceToPickup != out[j].DistanceToPickup {
			return out[i].DistanceToPickup < out[j].DistanceToPickup
		}
		return out[i].DriverTrips < out[j].DriverTrips
	})
	return out
}
