// README: Load-shedding rebalancer for overcrowded locations.
package fleet

import (
	"math/rand"

	"cabdispatch/internal/modules/location"
)

// DefaultKeep is how many vehicles stay at a location when it is rebalanced.
const DefaultKeep = 2

// Chooser picks a target among candidates. candidates is never empty.
type Chooser func(candidates []location.NodeID) location.NodeID

// NewRandomChooser returns a Chooser drawing uniformly from a seeded source.
func NewRandomChooser(seed int64) Chooser {
	rng := rand.New(rand.NewSource(seed))
	return func(candidates []location.NodeID) location.NodeID {
		return candidates[rng.Intn(len(candidates))]
	}
}

// FirstChooser always picks the first candidate.
func FirstChooser(candidates []location.NodeID) location.NodeID {
	return candidates[0]
}

type Rebalancer struct {
	registry *Registry
	keep     int
	choose   Chooser
}

func NewRebalancer(registry *Registry, keep int, choose Chooser) *Rebalancer {
	if keep < 0 {
		keep = DefaultKeep
	}
	if choose == nil {
		choose = FirstChooser
	}
	return &Rebalancer{registry: registry, keep: keep, choose: choose}
}

// Rebalance keeps the first keep vehicles at loc and sends each remaining
// vehicle to an independently chosen other location.
func (b *Rebalancer) Rebalance(loc location.NodeID) ([]Move, error) {
	if !b.registry.locations.HasNode(loc) {
		return nil, ErrUnknownLocation
	}
	here := b.registry.VehiclesAt(loc)
	if len(here) <= b.keep {
		return nil, nil
	}
	targets := b.targets(loc)
	if len(targets) == 0 {
		return nil, nil
	}

	var moves []Move
	for _, id := range here[b.keep:] {
		to := b.choose(targets)
		if err := b.registry.Relocate(id, to); err != nil {
			return moves, err
		}
		moves = append(moves, Move{VehicleID: id, From: loc, To: to})
	}
	return moves, nil
}

// RebalanceAll runs Rebalance once per location, in network order.
func (b *Rebalancer) RebalanceAll() ([]Move, error) {
	var all []Move
	for _, loc := range b.registry.locations.NodeIDs() {
		moves, err := b.Rebalance(loc)
		all = append(all, moves...)
		if err != nil {
			return all, err
		}
	}
	return all, nil
}

func (b *Rebalancer) targets(exclude location.NodeID) []location.NodeID {
	var out []location.NodeID
	for _, id := range b.registry.locations.NodeIDs() {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}
