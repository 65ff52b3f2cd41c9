// README: Weighted undirected multigraph of named locations.
package location

import (
	"fmt"
	"math"
	"strings"
)

type halfEdge struct {
	to     NodeID
	weight float64
	seq    int
}

// Graph is not safe for concurrent use; callers serialize access.
type Graph struct {
	nodes  map[NodeID]*Node
	byName map[string]NodeID
	order  []NodeID
	adj    map[NodeID][]halfEdge
	edges  []Edge
	nextID NodeID
}

func NewGraph() *Graph {
	return &Graph{
		nodes:  make(map[NodeID]*Node),
		byName: make(map[string]NodeID),
		adj:    make(map[NodeID][]halfEdge),
		nextID: 1,
	}
}

// NormalizeName returns the canonical form under which names are stored and
// compared.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// AddNode inserts a node with no edges. Adding an existing name returns the
// existing id.
func (g *Graph) AddNode(name string) (NodeID, error) {
	key := NormalizeName(name)
	if key == "" {
		return 0, ErrBadName
	}
	if id, ok := g.byName[key]; ok {
		return id, nil
	}
	id := g.nextID
	g.nextID++
	g.nodes[id] = &Node{ID: id, Name: key}
	g.byName[key] = id
	g.order = append(g.order, id)
	return id, nil
}

// AddEdge inserts symmetric adjacency entries. Parallel edges are kept.
func (g *Graph) AddEdge(a, b NodeID, weight float64) error {
	if !(weight > 0) || math.IsInf(weight, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	if !g.HasNode(a) || !g.HasNode(b) {
		return ErrUnknownNode
	}
	seq := len(g.edges)
	g.edges = append(g.edges, Edge{Seq: seq, A: a, B: b, Weight: weight})
	g.adj[a] = append(g.adj[a], halfEdge{to: b, weight: weight, seq: seq})
	if a != b {
		g.adj[b] = append(g.adj[b], halfEdge{to: a, weight: weight, seq: seq})
	}
	return nil
}

func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

func (g *Graph) Lookup(name string) (NodeID, bool) {
	id, ok := g.byName[NormalizeName(name)]
	return id, ok
}

// Name returns the display name of id, or "" when unknown.
func (g *Graph) Name(id NodeID) string {
	if n, ok := g.nodes[id]; ok {
		return n.Name
	}
	return ""
}

// NodeIDs returns node ids in insertion order.
func (g *Graph) NodeIDs() []NodeID {
	out := make([]NodeID, len(g.order))
	copy(out, g.order)
	return out
}

func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.nodes[id])
	}
	return out
}

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

func (g *Graph) Neighbors(id NodeID) []Edge {
	var out []Edge
	for _, h := range g.adj[id] {
		out = append(out, Edge{Seq: h.seq, A: id, B: h.to, Weight: h.weight})
	}
	return out
}

func (g *Graph) Rename(id NodeID, name string) error {
	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	key := NormalizeName(name)
	if key == "" {
		return ErrBadName
	}
	if key == n.Name {
		return nil
	}
	if _, taken := g.byName[key]; taken {
		return ErrDuplicateName
	}
	delete(g.byName, n.Name)
	n.Name = key
	g.byName[key] = id
	return nil
}

// RemoveNode deletes a node with no incident edges. Vehicle references are
// checked by the caller.
func (g *Graph) RemoveNode(id NodeID) error {
	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if len(g.adj[id]) > 0 {
		return ErrNodeInUse
	}
	delete(g.nodes, id)
	delete(g.byName, n.Name)
	delete(g.adj, id)
	for i, v := range g.order {
		if v == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return nil
}
