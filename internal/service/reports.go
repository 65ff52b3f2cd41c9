// README: Read-only reporting projections over the ride ledger and fleet.
package service

import (
	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/ride"
	"cabdispatch/internal/types"
)

func (d *Dispatcher) Rides() []ride.Event {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.events(d.ledger.All())
}

func (d *Dispatcher) CustomerHistory(id types.ID) []ride.Event {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.events(d.ledger.ByCustomer(id))
}

func (d *Dispatcher) DriverSummary(id types.ID) (DriverSummary, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	drv, ok := d.fleet.Driver(id)
	if !ok {
		return DriverSummary{}, fleet.ErrUnknownDriver
	}
	return d.summary(drv), nil
}

// FleetSummary reports every driver in onboarding order with platform totals.
func (d *Dispatcher) FleetSummary() FleetSummary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := FleetSummary{
		Drivers:         []DriverSummary{},
		Rides:           d.ledger.Count(),
		TotalCommission: d.ledger.TotalCommission(),
	}
	for _, r := range d.ledger.All() {
		out.TotalFare += r.Fare
	}
	for _, drv := range d.fleet.Drivers() {
		out.Drivers = append(out.Drivers, d.summary(drv))
	}
	return out
}

func (d *Dispatcher) CommissionTotal() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ledger.TotalCommission()
}

func (d *Dispatcher) summary(drv fleet.Driver) DriverSummary {
	s := DriverSummary{
		ID:            drv.ID,
		Name:          drv.Name,
		TotalTrips:    drv.TotalTrips,
		TotalFare:     drv.TotalFare,
		TotalEarnings: drv.TotalEarnings,
		Commission:    drv.TotalFare - drv.TotalEarnings,
		Resting:       d.rest.IsResting(drv.ID),
		Rides:         d.events(d.ledger.ByDriver(drv.ID)),
	}
	if v, ok := d.fleet.VehicleOf(drv.ID); ok {
		view := d.vehicleView(v)
		s.Vehicle = &view
	}
	return s
}

func (d *Dispatcher) events(rs []*ride.Ride) []ride.Event {
	out := make([]ride.Event, len(rs))
	for i, r := range rs {
		out[i] = d.event(r)
	}
	return out
}
