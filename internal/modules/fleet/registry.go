// README: Fleet registry tracks drivers, vehicles, and the location index.
package fleet

import (
	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/types"
)

// Locations is the subset of the network the registry validates against.
type Locations interface {
	HasNode(id location.NodeID) bool
	NodeIDs() []location.NodeID
}

type Registry struct {
	locations   Locations
	drivers     map[types.ID]*Driver
	driverOrder []types.ID
	vehicles    map[VehicleID]*Vehicle
	order       []VehicleID
	byLocation  map[location.NodeID][]VehicleID
	byDriver    map[types.ID]VehicleID
	nextID      VehicleID
}

func NewRegistry(locations Locations) *Registry {
	return &Registry{
		locations:  locations,
		drivers:    make(map[types.ID]*Driver),
		vehicles:   make(map[VehicleID]*Vehicle),
		byLocation: make(map[location.NodeID][]VehicleID),
		byDriver:   make(map[types.ID]VehicleID),
		nextID:     1,
	}
}

// ---------------------------------------------------------------------------
// Drivers
// ---------------------------------------------------------------------------

func (r *Registry) AddDriver(id types.ID, name string) error {
	if id == "" {
		return ErrBadRequest
	}
	if _, ok := r.drivers[id]; ok {
		return ErrDriverExists
	}
	r.drivers[id] = &Driver{ID: id, Name: name}
	r.driverOrder = append(r.driverOrder, id)
	return nil
}

func (r *Registry) Driver(id types.ID) (Driver, bool) {
	d, ok := r.drivers[id]
	if !ok {
		return Driver{}, false
	}
	return *d, true
}

// Drivers returns drivers in onboarding order.
func (r *Registry) Drivers() []Driver {
	out := make([]Driver, 0, len(r.driverOrder))
	for _, id := range r.driverOrder {
		out = append(out, *r.drivers[id])
	}
	return out
}

// RemoveDriver deletes the driver together with the driver's vehicle.
func (r *Registry) RemoveDriver(id types.ID) error {
	if _, ok := r.drivers[id]; !ok {
		return ErrUnknownDriver
	}
	if vid, ok := r.byDriver[id]; ok {
		if err := r.Remove(vid); err != nil {
			return err
		}
	}
	delete(r.drivers, id)
	r.driverOrder = removeID(r.driverOrder, id)
	return nil
}

// RecordTrip adds one completed trip to the driver's totals.
func (r *Registry) RecordTrip(id types.ID, fare, earnings float64) error {
	d, ok := r.drivers[id]
	if !ok {
		return ErrUnknownDriver
	}
	d.TotalTrips++
	d.TotalFare += fare
	d.TotalEarnings += earnings
	return nil
}

// ---------------------------------------------------------------------------
// Vehicles
// ---------------------------------------------------------------------------

func (r *Registry) RegisterVehicle(driverID types.ID, at location.NodeID) (VehicleID, error) {
	if _, ok := r.drivers[driverID]; !ok {
		return 0, ErrUnknownDriver
	}
	if !r.locations.HasNode(at) {
		return 0, ErrUnknownLocation
	}
	if _, ok := r.byDriver[driverID]; ok {
		return 0, ErrDriverAlreadyAssigned
	}
	id := r.nextID
	r.nextID++
	r.vehicles[id] = &Vehicle{ID: id, DriverID: driverID, Location: at, Available: true}
	r.order = append(r.order, id)
	r.byLocation[at] = append(r.byLocation[at], id)
	r.byDriver[driverID] = id
	return id, nil
}

func (r *Registry) Vehicle(id VehicleID) (Vehicle, bool) {
	v, ok := r.vehicles[id]
	if !ok {
		return Vehicle{}, false
	}
	return *v, true
}

// VehicleOf returns the vehicle linked to driverID.
func (r *Registry) VehicleOf(driverID types.ID) (Vehicle, bool) {
	id, ok := r.byDriver[driverID]
	if !ok {
		return Vehicle{}, false
	}
	return r.Vehicle(id)
}

// Vehicles returns every vehicle in registration order.
func (r *Registry) Vehicles() []Vehicle {
	out := make([]Vehicle, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.vehicles[id])
	}
	return out
}

// Relocate moves a vehicle and keeps the location index in step.
func (r *Registry) Relocate(id VehicleID, to location.NodeID) error {
	v, ok := r.vehicles[id]
	if !ok {
		return ErrUnknownVehicle
	}
	if !r.locations.HasNode(to) {
		return ErrUnknownLocation
	}
	if v.Location == to {
		return nil
	}
	r.unindex(v.Location, id)
	v.Location = to
	r.byLocation[to] = append(r.byLocation[to], id)
	return nil
}

func (r *Registry) SetAvailability(id VehicleID, available bool) error {
	v, ok := r.vehicles[id]
	if !ok {
		return ErrUnknownVehicle
	}
	v.Available = available
	return nil
}

// VehiclesAt returns the vehicles at loc in arrival order.
func (r *Registry) VehiclesAt(loc location.NodeID) []VehicleID {
	ids := r.byLocation[loc]
	out := make([]VehicleID, len(ids))
	copy(out, ids)
	return out
}

// Occupied reports whether any vehicle is parked at loc.
func (r *Registry) Occupied(loc location.NodeID) bool {
	return len(r.byLocation[loc]) > 0
}

// Remove deletes the vehicle. The linked driver is kept.
func (r *Registry) Remove(id VehicleID) error {
	v, ok := r.vehicles[id]
	if !ok {
		return ErrUnknownVehicle
	}
	r.unindex(v.Location, id)
	delete(r.byDriver, v.DriverID)
	delete(r.vehicles, id)
	for i, x := range r.order {
		if x == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Registry) unindex(loc location.NodeID, id VehicleID) {
	ids := r.byLocation[loc]
	for i, x := range ids {
		if x == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(r.byLocation, loc)
		return
	}
	r.byLocation[loc] = ids
}

func removeID(ids []types.ID, id types.ID) []types.ID {
	for i, x := range ids {
		if x == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
