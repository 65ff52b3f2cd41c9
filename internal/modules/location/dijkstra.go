// README: Shortest-path search over the location graph (Dijkstra, binary heap).
package location

import "container/heap"

type frontierEntry struct {
	node NodeID
	dist float64
	seq  int
}

// frontier orders entries by cumulative distance, then by push sequence so
// that equal-distance ties resolve in insertion order.
type frontier []frontierEntry

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(frontierEntry))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	*f = old[:n-1]
	return x
}

// search runs Dijkstra from src. When target is known the search stops as
// soon as target is settled.
func (g *Graph) search(src NodeID, target NodeID, stopAtTarget bool) (map[NodeID]float64, map[NodeID]NodeID) {
	dist := map[NodeID]float64{src: 0}
	prev := make(map[NodeID]NodeID)
	settled := make(map[NodeID]bool)

	pq := &frontier{}
	pushed := 0
	heap.Push(pq, frontierEntry{node: src, dist: 0, seq: pushed})
	pushed++

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(frontierEntry)
		if settled[cur.node] {
			continue
		}
		settled[cur.node] = true
		if stopAtTarget && cur.node == target {
			break
		}
		for _, e := range g.adj[cur.node] {
			if settled[e.to] {
				continue
			}
			alt := cur.dist + e.weight
			if d, ok := dist[e.to]; ok && alt >= d {
				continue
			}
			dist[e.to] = alt
			prev[e.to] = cur.node
			heap.Push(pq, frontierEntry{node: e.to, dist: alt, seq: pushed})
			pushed++
		}
	}
	return dist, prev
}

// ShortestPath returns the minimum-weight path from a to b. Unknown nodes and
// disconnected pairs yield an unreachable Path.
func (g *Graph) ShortestPath(a, b NodeID) Path {
	if !g.HasNode(a) || !g.HasNode(b) {
		return unreachable()
	}
	if a == b {
		return Path{Distance: 0, Nodes: []NodeID{a}}
	}

	dist, prev := g.search(a, b, true)
	d, ok := dist[b]
	if !ok {
		return unreachable()
	}

	var rev []NodeID
	for at := b; ; at = prev[at] {
		rev = append(rev, at)
		if at == a {
			break
		}
	}
	nodes := make([]NodeID, len(rev))
	for i, id := range rev {
		nodes[len(rev)-1-i] = id
	}
	return Path{Distance: d, Nodes: nodes}
}

// DistancesFrom returns the shortest distance from src to every reachable
// node, src included. Edges are undirected, so the same values hold for
// paths ending at src.
func (g *Graph) DistancesFrom(src NodeID) map[NodeID]float64 {
	if !g.HasNode(src) {
		return map[NodeID]float64{}
	}
	dist, _ := g.search(src, 0, false)
	return dist
}
