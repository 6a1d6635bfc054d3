package flow

// BellmanFordResult holds shortest-path distances and parent pointers
// from a single source, plus whether a negative cycle was detected.
type BellmanFordResult struct {
	Distances        map[int64]int64
	Parent           map[int64]int64
	HasNegativeCycle bool
}

// BellmanFord computes shortest paths from source over reduced costs
// (cost(u,v) + potentials[u] - potentials[v]), iterating nodes and edges
// in deterministic sorted/insertion order so repeated solves on the same
// input agree (spec.md §5, §8 property 6). Pass a nil or all-zero
// potentials map to run plain Bellman-Ford.
func BellmanFord(g *ResidualGraph, source int64, potentials map[int64]int64) *BellmanFordResult {
	nodes := g.GetSortedNodes()
	n := len(nodes)

	dist := make(map[int64]int64, n)
	parent := make(map[int64]int64, n)
	for _, node := range nodes {
		dist[node] = Infinity
		parent[node] = -1
	}
	dist[source] = 0

	pot := func(node int64) int64 {
		if potentials == nil {
			return 0
		}
		return potentials[node]
	}

	for i := 0; i < n-1; i++ {
		updated := false
		for _, u := range nodes {
			if dist[u] >= Infinity {
				continue
			}
			for _, edge := range g.GetNeighborsList(u) {
				if edge.Capacity <= 0 {
					continue
				}
				v := edge.To
				reduced := edge.Cost + pot(u) - pot(v)
				newDist := dist[u] + reduced
				if newDist < dist[v] {
					dist[v] = newDist
					parent[v] = u
					updated = true
				}
			}
		}
		if !updated {
			break
		}
	}

	hasNegativeCycle := false
	for _, u := range nodes {
		if dist[u] >= Infinity {
			continue
		}
		for _, edge := range g.GetNeighborsList(u) {
			if edge.Capacity <= 0 {
				continue
			}
			v := edge.To
			reduced := edge.Cost + pot(u) - pot(v)
			if dist[u]+reduced < dist[v] {
				hasNegativeCycle = true
				break
			}
		}
		if hasNegativeCycle {
			break
		}
	}

	return &BellmanFordResult{Distances: dist, Parent: parent, HasNegativeCycle: hasNegativeCycle}
}
