// README: Ride ledger keeps one canonical ride table and three id indexes.
package ride

import (
	"slices"

	"cabdispatch/internal/types"
)

type Ledger struct {
	rides      map[RideID]*Ride
	all        []RideID
	byCustomer map[types.ID][]RideID
	byDriver   map[types.ID][]RideID
	nextID     RideID
}

func NewLedger() *Ledger {
	return &Ledger{
		rides:      make(map[RideID]*Ride),
		byCustomer: make(map[types.ID][]RideID),
		byDriver:   make(map[types.ID][]RideID),
		nextID:     1,
	}
}

// append assigns the next id and indexes a private copy of r.
func (l *Ledger) append(r *Ride) {
	r.ID = l.nextID
	l.nextID++
	l.rides[r.ID] = r.clone()
	l.all = append(l.all, r.ID)
	l.byCustomer[r.CustomerID] = append(l.byCustomer[r.CustomerID], r.ID)
	l.byDriver[r.DriverID] = append(l.byDriver[r.DriverID], r.ID)
}

func (l *Ledger) Get(id RideID) (*Ride, error) {
	r, ok := l.rides[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.clone(), nil
}

// All returns every ride in commit order.
func (l *Ledger) All() []*Ride { return l.resolve(l.all) }

func (l *Ledger) ByCustomer(id types.ID) []*Ride { return l.resolve(l.byCustomer[id]) }

func (l *Ledger) ByDriver(id types.ID) []*Ride { return l.resolve(l.byDriver[id]) }

func (l *Ledger) Count() int { return len(l.all) }

func (l *Ledger) TotalCommission() float64 {
	total := 0.0
	for _, id := range l.all {
		total += l.rides[id].Commission
	}
	return total
}

func (l *Ledger) resolve(ids []RideID) []*Ride {
	out := make([]*Ride, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.rides[id].clone())
	}
	return out
}

// clone copies r including its path.
func (r *Ride) clone() *Ride {
	cp := *r
	cp.Path = slices.Clone(r.Path)
	return &cp
}
