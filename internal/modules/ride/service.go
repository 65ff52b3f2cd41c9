// README: Ride service validates and commits assignments.
package ride

import (
	"time"

	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/modules/pricing"
	"cabdispatch/internal/types"
)

type Fleet interface {
	Vehicle(id fleet.VehicleID) (fleet.Vehicle, bool)
	Driver(id types.ID) (fleet.Driver, bool)
	Relocate(id fleet.VehicleID, to location.NodeID) error
	SetAvailability(id fleet.VehicleID, available bool) error
	RecordTrip(id types.ID, fare, earnings float64) error
}

type RestLedger interface {
	IsResting(id types.ID) bool
	MarkResting(id types.ID)
}

type Router interface {
	HasNode(id location.NodeID) bool
	ShortestPath(a, b location.NodeID) location.Path
}

type Pricing interface {
	Quote(distance float64) (pricing.Quote, error)
}

type Service struct {
	ledger  *Ledger
	fleet   Fleet
	rest    RestLedger
	router  Router
	pricing Pricing
	now     func() time.Time
}

func NewService(ledger *Ledger, f Fleet, rest RestLedger, router Router, p Pricing) *Service {
	return &Service{ledger: ledger, fleet: f, rest: rest, router: router, pricing: p, now: time.Now}
}

func (s *Service) Ledger() *Ledger { return s.ledger }

// Commit books the vehicle for the trip. Every precondition is checked
// before any state changes, so a failed commit leaves no trace.
func (s *Service) Commit(cmd CommitCommand) (*Ride, error) {
	if cmd.CustomerID == "" {
		return nil, ErrBadRequest
	}
	v, ok := s.fleet.Vehicle(cmd.VehicleID)
	if !ok {
		return nil, fleet.ErrUnknownVehicle
	}
	if _, ok := s.fleet.Driver(cmd.DriverID); !ok {
		return nil, fleet.ErrUnknownDriver
	}
	if v.DriverID != cmd.DriverID {
		return nil, ErrDriverMismatch
	}
	if !v.Available {
		return nil, ErrVehicleUnavailable
	}
	if s.rest.IsResting(cmd.DriverID) {
		return nil, ErrDriverResting
	}
	if !s.router.HasNode(cmd.Source) || !s.router.HasNode(cmd.Destination) {
		return nil, location.ErrUnknownNode
	}
	path := s.router.ShortestPath(cmd.Source, cmd.Destination)
	if path.Unreachable() {
		return nil, ErrNoRoute
	}
	quote, err := s.pricing.Quote(path.Distance)
	if err != nil {
		return nil, err
	}

	r := &Ride{
		CustomerID:  cmd.CustomerID,
		DriverID:    cmd.DriverID,
		VehicleID:   cmd.VehicleID,
		Source:      cmd.Source,
		Destination: cmd.Destination,
		Path:        path.Nodes,
		Distance:    path.Distance,
		Fare:        quote.Fare,
		Commission:  quote.Commission,
		CreatedAt:   s.now().UTC(),
	}

	// Preconditions above guarantee these succeed.
	if err := s.fleet.Relocate(cmd.VehicleID, cmd.Destination); err != nil {
		return nil, err
	}
	if err := s.fleet.SetAvailability(cmd.VehicleID, true); err != nil {
		return nil, err
	}
	if err := s.fleet.RecordTrip(cmd.DriverID, quote.Fare, quote.DriverShare); err != nil {
		return nil, err
	}
	s.rest.MarkResting(cmd.DriverID)
	s.ledger.append(r)
	return r.clone(), nil
}
