// README: Location network model (nodes, road edges, paths) and errors.
package location

import (
	"errors"
	"math"
)

// NodeID is the opaque identity of a location node.
type NodeID int64

type Node struct {
	ID   NodeID
	Name string
}

// Edge is an undirected road segment. Seq is the insertion sequence and is
// shared by both adjacency entries.
type Edge struct {
	Seq    int
	A      NodeID
	B      NodeID
	Weight float64
}

// Path is the result of a shortest-path query. An unreachable result has an
// infinite distance and no nodes.
type Path struct {
	Distance float64
	Nodes    []NodeID
}

func (p Path) Unreachable() bool {
	return math.IsInf(p.Distance, 1)
}

func unreachable() Path {
	return Path{Distance: math.Inf(1)}
}

var (
	ErrUnknownNode   = errors.New("unknown location")
	ErrInvalidWeight = errors.New("edge weight must be positive")
	ErrDuplicateName = errors.New("location name already exists")
	ErrBadName       = errors.New("location name is empty")
	ErrNodeInUse     = errors.New("location is referenced by roads or vehicles")
)
