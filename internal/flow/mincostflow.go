package flow

import "github.com/Print-In-Progress/edconnect-algorithms/pkg/apperror"

// MinCostFlowResult is the outcome of a successive-shortest-path solve.
type MinCostFlowResult struct {
	// Flow is the total units pushed from source to sink.
	Flow int64
	// Cost is the total cost of that flow (sum of flow*cost per edge).
	Cost int64
	// Iterations counts augmenting paths found.
	Iterations int
}

// MinCostMaxFlow pushes up to requiredFlow units of flow from source to
// sink at minimum total cost, using the successive shortest path method
// with node potentials. Bellman-Ford is run over the reduced costs for
// every augmenting path, so the negative-cost edges the builders add
// (preferred-slot rewards, aggregator chain bonuses) and the
// negative-cost backward edges are handled without assuming reduced
// costs are nonnegative. Pass Infinity for requiredFlow to find the
// true min-cost max-flow (spec.md §4.2).
//
// Returns apperror.ErrNegativeCycle if the initial graph contains a
// negative-cost cycle reachable from source, which would make the
// min-cost flow problem unbounded.
func MinCostMaxFlow(g *ResidualGraph, source, sink int64, requiredFlow int64) (*MinCostFlowResult, error) {
	result := &MinCostFlowResult{}

	first := BellmanFord(g, source, nil)
	if first.HasNegativeCycle {
		return nil, apperror.ErrNegativeCycle
	}

	potentials := make(map[int64]int64, len(first.Distances))
	for node, d := range first.Distances {
		if d >= Infinity {
			potentials[node] = 0
			continue
		}
		potentials[node] = d
	}

	for result.Flow < requiredFlow {
		bf := BellmanFord(g, source, potentials)
		if bf.HasNegativeCycle {
			return nil, apperror.ErrNegativeCycle
		}
		if bf.Distances[sink] >= Infinity {
			break
		}

		for node, d := range bf.Distances {
			if d < Infinity {
				potentials[node] += d
			}
		}

		path := ReconstructPath(bf.Parent, source, sink)
		if len(path) == 0 {
			break
		}

		bottleneck := FindMinCapacityOnPath(g, path)
		if bottleneck <= 0 {
			break
		}

		remaining := requiredFlow - result.Flow
		if requiredFlow < Infinity && bottleneck > remaining {
			bottleneck = remaining
		}

		AugmentPath(g, path, bottleneck)
		result.Flow += bottleneck
		result.Iterations++
	}

	result.Cost = g.GetTotalCost()
	return result, nil
}
