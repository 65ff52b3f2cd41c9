// README: Dispatcher operations on drivers, vehicles, rest flags, and rebalancing.
package service

import (
	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/types"
)

func (d *Dispatcher) OnboardDriver(id types.ID, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fleet.AddDriver(id, name)
}

// OnboardDriverWithVehicle adds the driver and registers the driver's vehicle
// at the named location as one step. Nothing is added if either part fails.
func (d *Dispatcher) OnboardDriverWithVehicle(id types.ID, name, at string) (VehicleView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, err := d.resolve(at)
	if err != nil {
		return VehicleView{}, err
	}
	if err := d.fleet.AddDriver(id, name); err != nil {
		return VehicleView{}, err
	}
	vid, err := d.fleet.RegisterVehicle(id, loc)
	if err != nil {
		_ = d.fleet.RemoveDriver(id)
		return VehicleView{}, err
	}
	v, _ := d.fleet.Vehicle(vid)
	return d.vehicleView(v), nil
}

// RemoveDriver drops the driver, the driver's vehicle, and any rest flag.
// Ride history is kept.
func (d *Dispatcher) RemoveDriver(id types.ID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fleet.RemoveDriver(id); err != nil {
		return err
	}
	d.rest.ClearRest(id)
	return nil
}

func (d *Dispatcher) RegisterVehicle(driverID types.ID, at string) (VehicleView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, err := d.resolve(at)
	if err != nil {
		return VehicleView{}, err
	}
	id, err := d.fleet.RegisterVehicle(driverID, loc)
	if err != nil {
		return VehicleView{}, err
	}
	v, _ := d.fleet.Vehicle(id)
	return d.vehicleView(v), nil
}

func (d *Dispatcher) RelocateVehicle(id fleet.VehicleID, to string) (VehicleView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, err := d.resolve(to)
	if err != nil {
		return VehicleView{}, err
	}
	if err := d.fleet.Relocate(id, loc); err != nil {
		return VehicleView{}, err
	}
	v, _ := d.fleet.Vehicle(id)
	return d.vehicleView(v), nil
}

func (d *Dispatcher) RemoveVehicle(id fleet.VehicleID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fleet.Remove(id)
}

func (d *Dispatcher) VehiclesAt(at string) ([]VehicleView, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	loc, err := d.resolve(at)
	if err != nil {
		return nil, err
	}
	ids := d.fleet.VehiclesAt(loc)
	out := make([]VehicleView, 0, len(ids))
	for _, id := range ids {
		v, _ := d.fleet.Vehicle(id)
		out = append(out, d.vehicleView(v))
	}
	return out, nil
}

func (d *Dispatcher) MarkResting(id types.ID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.fleet.Driver(id); !ok {
		return fleet.ErrUnknownDriver
	}
	d.rest.MarkResting(id)
	return nil
}

func (d *Dispatcher) ClearRest(id types.ID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.fleet.Driver(id); !ok {
		return fleet.ErrUnknownDriver
	}
	d.rest.ClearRest(id)
	return nil
}

// ClearAllRest returns every driver to duty and reports how many were resting.
func (d *Dispatcher) ClearAllRest() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rest.ClearAll()
}

func (d *Dispatcher) Rebalance(at string) ([]MoveView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, err := d.resolve(at)
	if err != nil {
		return nil, err
	}
	moves, err := d.rebalancer.Rebalance(loc)
	return d.moveViews(moves), err
}

func (d *Dispatcher) RebalanceAll() ([]MoveView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	moves, err := d.rebalancer.RebalanceAll()
	return d.moveViews(moves), err
}

func (d *Dispatcher) moveViews(moves []fleet.Move) []MoveView {
	out := make([]MoveView, len(moves))
	for i, m := range moves {
		out[i] = MoveView{VehicleID: m.VehicleID, From: d.graph.Name(m.From), To: d.graph.Name(m.To)}
	}
	return out
}
