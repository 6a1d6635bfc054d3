package flow

// ReconstructPath builds a path from source to sink by following parent
// pointers backward and reversing. parent[source] must be -1, and
// parent[v] == -1 for any other node means sink is unreachable.
func ReconstructPath(parent map[int64]int64, source, sink int64) []int64 {
	if _, ok := parent[sink]; !ok {
		return nil
	}

	var reversed []int64
	cur := sink
	for {
		reversed = append(reversed, cur)
		if cur == source {
			break
		}
		next, ok := parent[cur]
		if !ok || next == -1 {
			if cur != source {
				return nil
			}
			break
		}
		cur = next
	}

	path := make([]int64, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path
}

// FindMinCapacityOnPath returns the bottleneck residual capacity along
// path, or 0 if the path has fewer than two nodes or traverses a
// nonexistent edge.
func FindMinCapacityOnPath(g *ResidualGraph, path []int64) int64 {
	if len(path) < 2 {
		return 0
	}

	minCapacity := Infinity
	for i := 0; i < len(path)-1; i++ {
		edge := g.GetEdge(path[i], path[i+1])
		if edge == nil {
			return 0
		}
		if edge.Capacity < minCapacity {
			minCapacity = edge.Capacity
		}
	}

	if minCapacity == Infinity {
		return 0
	}
	return minCapacity
}

// AugmentPath pushes units of flow along every edge of path, updating
// residual capacities in place. Callers must ensure units does not
// exceed FindMinCapacityOnPath(g, path).
func AugmentPath(g *ResidualGraph, path []int64, units int64) {
	for i := 0; i < len(path)-1; i++ {
		g.UpdateFlow(path[i], path[i+1], units)
	}
}
