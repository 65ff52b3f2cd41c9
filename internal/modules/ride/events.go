// README: Ride events forwarded to outbound sinks after a commit.
package ride

import (
	"context"
	"errors"
	"time"

	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/types"
)

// Event is the wire form of a committed ride, with locations by name.
type Event struct {
	RideID      RideID    `json:"ride_id"`
	CustomerID  types.ID  `json:"customer_id"`
	DriverID    types.ID  `json:"driver_id"`
	VehicleID   int64     `json:"vehicle_id"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Path        []string  `json:"path"`
	Distance    float64   `json:"distance"`
	Fare        float64   `json:"fare"`
	Commission  float64   `json:"commission"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewEvent(r *Ride, name func(location.NodeID) string) Event {
	path := make([]string, len(r.Path))
	for i, id := range r.Path {
		path[i] = name(id)
	}
	return Event{
		RideID:      r.ID,
		CustomerID:  r.CustomerID,
		DriverID:    r.DriverID,
		VehicleID:   int64(r.VehicleID),
		Source:      name(r.Source),
		Destination: name(r.Destination),
		Path:        path,
		Distance:    r.Distance,
		Fare:        r.Fare,
		Commission:  r.Commission,
		CreatedAt:   r.CreatedAt,
	}
}

// Sink receives committed rides. Sinks mirror the ledger and are never read back.
type Sink interface {
	Record(ctx context.Context, e Event) error
}

// Sinks fans an event out to every sink and joins the failures.
type Sinks []Sink

func (s Sinks) Record(ctx context.Context, e Event) error {
	var errs []error
	for _, sink := range s {
		if err := sink.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
