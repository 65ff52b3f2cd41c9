// README: Dispatcher wires the network, fleet, rest ledger, selector, and ride ledger behind one lock.
package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/modules/matching"
	"cabdispatch/internal/modules/pricing"
	"cabdispatch/internal/modules/rest"
	"cabdispatch/internal/modules/ride"
)

var ErrNoCandidates = errors.New("no available vehicle can reach the pickup")

// Options configures a Dispatcher. A zero Rate means pricing.DefaultRate and
// a zero Keep means fleet.DefaultKeep.
type Options struct {
	Rate    pricing.Rate
	Keep    int
	Chooser fleet.Chooser
	Sinks   []ride.Sink
}

// Dispatcher is safe for concurrent use. Mutations hold the write lock for
// their whole duration; queries take the read lock. Sinks run after unlock.
type Dispatcher struct {
	mu sync.RWMutex

	graph      *location.Graph
	fleet      *fleet.Registry
	rest       *rest.Ledger
	pricing    *pricing.Service
	selector   *matching.Selector
	rides      *ride.Service
	ledger     *ride.Ledger
	rebalancer *fleet.Rebalancer

	sinks ride.Sinks
}

func NewDispatcher(opts Options) (*Dispatcher, error) {
	if opts.Rate == (pricing.Rate{}) {
		opts.Rate = pricing.DefaultRate()
	}
	if opts.Keep == 0 {
		opts.Keep = fleet.DefaultKeep
	}
	p, err := pricing.NewService(opts.Rate)
	if err != nil {
		return nil, err
	}
	g := location.NewGraph()
	reg := fleet.NewRegistry(g)
	rl := rest.NewLedger()
	ledger := ride.NewLedger()
	return &Dispatcher{
		graph:      g,
		fleet:      reg,
		rest:       rl,
		pricing:    p,
		selector:   matching.NewSelector(reg, rl, g),
		rides:      ride.NewService(ledger, reg, rl, g, p),
		ledger:     ledger,
		rebalancer: fleet.NewRebalancer(reg, opts.Keep, opts.Chooser),
		sinks:      ride.Sinks(opts.Sinks),
	}, nil
}

// AddSink registers an outbound sink for rides committed from now on.
func (d *Dispatcher) AddSink(s ride.Sink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sinks = append(d.sinks, s)
}

func (d *Dispatcher) publish(ctx context.Context, e ride.Event) {
	d.mu.RLock()
	sinks := d.sinks
	d.mu.RUnlock()
	if len(sinks) == 0 {
		return
	}
	if err := sinks.Record(ctx, e); err != nil {
		log.Printf("ride %d: sink error: %v", e.RideID, err)
	}
}

func (d *Dispatcher) resolve(name string) (location.NodeID, error) {
	id, ok := d.graph.Lookup(name)
	if !ok {
		return 0, location.ErrUnknownNode
	}
	return id, nil
}

func (d *Dispatcher) names(ids []location.NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = d.graph.Name(id)
	}
	return out
}

func (d *Dispatcher) event(r *ride.Ride) ride.Event {
	return ride.NewEvent(r, d.graph.Name)
}

func (d *Dispatcher) vehicleView(v fleet.Vehicle) VehicleView {
	return VehicleView{ID: v.ID, DriverID: v.DriverID, Location: d.graph.Name(v.Location), Available: v.Available}
}

// ---------------------------------------------------------------------------
// Network
// ---------------------------------------------------------------------------

func (d *Dispatcher) AddLocation(name string) (LocationView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, err := d.graph.AddNode(name)
	if err != nil {
		return LocationView{}, err
	}
	return LocationView{ID: int64(id), Name: d.graph.Name(id)}, nil
}

func (d *Dispatcher) RenameLocation(name, newName string) (LocationView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, err := d.resolve(name)
	if err != nil {
		return LocationView{}, err
	}
	if err := d.graph.Rename(id, newName); err != nil {
		return LocationView{}, err
	}
	return LocationView{ID: int64(id), Name: d.graph.Name(id)}, nil
}

// RemoveLocation deletes a location no road or vehicle references.
func (d *Dispatcher) RemoveLocation(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, err := d.resolve(name)
	if err != nil {
		return err
	}
	if d.fleet.Occupied(id) {
		return location.ErrNodeInUse
	}
	return d.graph.RemoveNode(id)
}

func (d *Dispatcher) Locations() []LocationView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	nodes := d.graph.Nodes()
	out := make([]LocationView, len(nodes))
	for i, n := range nodes {
		out[i] = LocationView{ID: int64(n.ID), Name: n.Name}
	}
	return out
}

func (d *Dispatcher) Connect(from, to string, distance float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, err := d.resolve(from)
	if err != nil {
		return err
	}
	b, err := d.resolve(to)
	if err != nil {
		return err
	}
	return d.graph.AddEdge(a, b, distance)
}

func (d *Dispatcher) Roads() []RoadView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	edges := d.graph.Edges()
	out := make([]RoadView, len(edges))
	for i, e := range edges {
		out[i] = RoadView{From: d.graph.Name(e.A), To: d.graph.Name(e.B), Distance: e.Weight}
	}
	return out
}

// Route returns the shortest path with a fare estimate. Unreachable pairs
// yield ride.ErrNoRoute.
func (d *Dispatcher) Route(ctx context.Context, from, to string) (RouteView, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, err := d.resolve(from)
	if err != nil {
		return RouteView{}, err
	}
	b, err := d.resolve(to)
	if err != nil {
		return RouteView{}, err
	}
	p := d.graph.ShortestPath(a, b)
	if p.Unreachable() {
		return RouteView{}, ride.ErrNoRoute
	}
	est, err := d.pricing.Estimate(ctx, p.Distance)
	if err != nil {
		return RouteView{}, err
	}
	return RouteView{
		From:     d.graph.Name(a),
		To:       d.graph.Name(b),
		Distance: p.Distance,
		Path:     d.names(p.Nodes),
		Estimate: est,
	}, nil
}
