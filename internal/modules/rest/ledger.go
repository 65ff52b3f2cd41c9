// README: Driver rest ledger; resting drivers are ineligible for dispatch until cleared.
package rest

import (
	"sort"

	"cabdispatch/internal/types"
)

// Ledger holds the set of resting drivers. Rest never expires on its own.
type Ledger struct {
	resting map[types.ID]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{resting: make(map[types.ID]struct{})}
}

func (l *Ledger) MarkResting(driverID types.ID) {
	l.resting[driverID] = struct{}{}
}

func (l *Ledger) ClearRest(driverID types.ID) {
	delete(l.resting, driverID)
}

func (l *Ledger) IsResting(driverID types.ID) bool {
	_, ok := l.resting[driverID]
	return ok
}

// ClearAll ends rest for every driver and returns how many were cleared.
func (l *Ledger) ClearAll() int {
	n := len(l.resting)
	l.resting = make(map[types.ID]struct{})
	return n
}

// Resting returns the resting driver ids in lexical order.
func (l *Ledger) Resting() []types.ID {
	out := make([]types.ID, 0, len(l.resting))
	for id := range l.resting {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
