// README: Dispatcher candidate search, commits, and hails.
package service

import (
	"context"

	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/modules/ride"
	"cabdispatch/internal/types"
)

// FindCandidates ranks vehicles for pickup. An unknown pickup yields none.
func (d *Dispatcher) FindCandidates(pickup string) []CandidateView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	loc, ok := d.graph.Lookup(pickup)
	if !ok {
		return []CandidateView{}
	}
	return d.candidates(loc)
}

func (d *Dispatcher) candidates(pickup location.NodeID) []CandidateView {
	cs := d.selector.FindCandidates(pickup)
	out := make([]CandidateView, len(cs))
	for i, c := range cs {
		out[i] = CandidateView{
			VehicleID:        c.VehicleID,
			DriverID:         c.DriverID,
			Location:         d.graph.Name(c.Location),
			DistanceToPickup: c.DistanceToPickup,
			DriverTrips:      c.DriverTrips,
		}
	}
	return out
}

// Commit books an explicit assignment.
func (d *Dispatcher) Commit(ctx context.Context, req CommitRequest) (ride.Event, error) {
	ev, err := d.commit(req)
	if err != nil {
		return ride.Event{}, err
	}
	d.publish(ctx, ev)
	return ev, nil
}

func (d *Dispatcher) commit(req CommitRequest) (ride.Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	// Unknown names map to an id the graph never issues, so the ride service
	// reports them in its own precondition order.
	src, _ := d.graph.Lookup(req.Pickup)
	dst, _ := d.graph.Lookup(req.Dropoff)
	r, err := d.rides.Commit(ride.CommitCommand{
		CustomerID:  req.CustomerID,
		DriverID:    req.DriverID,
		VehicleID:   req.VehicleID,
		Source:      src,
		Destination: dst,
	})
	if err != nil {
		return ride.Event{}, err
	}
	return d.event(r), nil
}

// RequestRide hails the best candidate for pickup and commits it in one step.
func (d *Dispatcher) RequestRide(ctx context.Context, customer types.ID, pickup, dropoff string) (ride.Event, error) {
	ev, err := d.hail(customer, pickup, dropoff)
	if err != nil {
		return ride.Event{}, err
	}
	d.publish(ctx, ev)
	return ev, nil
}

func (d *Dispatcher) hail(customer types.ID, pickup, dropoff string) (ride.Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if customer == "" {
		return ride.Event{}, ride.ErrBadRequest
	}
	src, err := d.resolve(pickup)
	if err != nil {
		return ride.Event{}, err
	}
	dst, err := d.resolve(dropoff)
	if err != nil {
		return ride.Event{}, err
	}
	cs := d.selector.FindCandidates(src)
	if len(cs) == 0 {
		return ride.Event{}, ErrNoCandidates
	}
	best := cs[0]
	r, err := d.rides.Commit(ride.CommitCommand{
		CustomerID:  customer,
		DriverID:    best.DriverID,
		VehicleID:   best.VehicleID,
		Source:      src,
		Destination: dst,
	})
	if err != nil {
		return ride.Event{}, err
	}
	return d.event(r), nil
}
