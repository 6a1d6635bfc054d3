// Package flow implements the integer-valued residual graph and min-cost
// flow driver shared by the scheduling core (spec.md §4.1, §4.2).
//
// Capacities and costs here are integer: parent/teacher meeting demand,
// slot capacity, and the reward/penalty values are all whole numbers, so
// the successive-shortest-path algorithm never needs floating point or
// an epsilon tolerance.
package flow

import (
	"sort"
)

// Infinity represents an unreachable distance. It is far larger than any
// sum of real edge costs a scheduling gadget or aggregator graph can produce.
const Infinity = int64(1) << 40

// ResidualEdge is one edge in the residual graph. Every original edge is
// represented by a forward edge and a zero-capacity backward edge, so
// that flow already pushed can be canceled (spec.md §4.1).
type ResidualEdge struct {
	To               int64
	Capacity         int64
	Cost             int64
	Flow             int64
	OriginalCapacity int64
	IsReverse        bool
}

// HasCapacity reports whether the edge can still carry flow.
func (e *ResidualEdge) HasCapacity() bool {
	return e.Capacity > 0
}

// ResidualGraph is the flow network the gadget and aggregator builders
// construct and the min-cost flow driver consumes.
//
// Nodes are addressed by plain int64 index, assigned by the builder
// (spec.md §9: "cyclic node references become integer node indices").
// Edge iteration always goes through EdgesList so results are
// deterministic regardless of Go's map iteration order.
type ResidualGraph struct {
	Nodes     map[int64]bool
	Edges     map[int64]map[int64]*ResidualEdge
	EdgesList map[int64][]*ResidualEdge

	sortedNodes      []int64
	sortedNodesDirty bool
}

// NewResidualGraph creates an empty graph ready for AddEdgeWithReverse calls.
func NewResidualGraph() *ResidualGraph {
	return &ResidualGraph{
		Nodes:            make(map[int64]bool),
		Edges:            make(map[int64]map[int64]*ResidualEdge),
		EdgesList:        make(map[int64][]*ResidualEdge),
		sortedNodesDirty: true,
	}
}

// AddNode registers a node id. A no-op if the node already exists.
func (rg *ResidualGraph) AddNode(id int64) {
	if !rg.Nodes[id] {
		rg.Nodes[id] = true
		rg.sortedNodesDirty = true
	}
}

// AddEdge adds a single forward edge, accumulating capacity if an edge
// already exists between the same pair of nodes (parallel meeting-request
// edges collapse this way under the gadget builder).
func (rg *ResidualGraph) AddEdge(from, to int64, capacity, cost int64) {
	rg.AddNode(from)
	rg.AddNode(to)

	if rg.Edges[from] == nil {
		rg.Edges[from] = make(map[int64]*ResidualEdge)
	}

	if existing := rg.Edges[from][to]; existing != nil {
		if existing.IsReverse {
			existing.OriginalCapacity = capacity
			existing.Capacity = capacity
			existing.Cost = cost
			existing.IsReverse = false
			return
		}
		existing.Capacity += capacity
		existing.OriginalCapacity += capacity
		return
	}

	edge := &ResidualEdge{To: to, Capacity: capacity, Cost: cost, OriginalCapacity: capacity}
	rg.Edges[from][to] = edge
	rg.EdgesList[from] = append(rg.EdgesList[from], edge)
}

// AddReverseEdge adds the zero-capacity backward edge for an existing
// forward edge, unless one is already present.
func (rg *ResidualGraph) AddReverseEdge(from, to int64, cost int64) {
	rg.AddNode(from)
	rg.AddNode(to)

	if rg.Edges[from] == nil {
		rg.Edges[from] = make(map[int64]*ResidualEdge)
	}
	if existing := rg.Edges[from][to]; existing != nil {
		return
	}

	edge := &ResidualEdge{To: to, Capacity: 0, Cost: -cost, IsReverse: true}
	rg.Edges[from][to] = edge
	rg.EdgesList[from] = append(rg.EdgesList[from], edge)
}

// AddEdgeWithReverse is the usual way to build a flow network: it adds
// the forward edge and its zero-capacity backward counterpart in one call.
func (rg *ResidualGraph) AddEdgeWithReverse(from, to int64, capacity, cost int64) {
	rg.AddEdge(from, to, capacity, cost)
	rg.AddReverseEdge(to, from, cost)
}

// GetEdge returns the edge from 'from' to 'to', or nil if none exists.
func (rg *ResidualGraph) GetEdge(from, to int64) *ResidualEdge {
	if rg.Edges[from] == nil {
		return nil
	}
	return rg.Edges[from][to]
}

// GetNeighborsList returns the outgoing edges of a node in insertion
// order. Algorithms must iterate this, not the map form, to stay
// deterministic (spec.md §5, §8 property 6).
func (rg *ResidualGraph) GetNeighborsList(node int64) []*ResidualEdge {
	return rg.EdgesList[node]
}

// GetSortedNodes returns every node id sorted ascending, cached until the
// next AddNode call.
func (rg *ResidualGraph) GetSortedNodes() []int64 {
	if rg.sortedNodesDirty || len(rg.sortedNodes) != len(rg.Nodes) {
		rg.sortedNodes = make([]int64, 0, len(rg.Nodes))
		for node := range rg.Nodes {
			rg.sortedNodes = append(rg.sortedNodes, node)
		}
		sort.Slice(rg.sortedNodes, func(i, j int) bool { return rg.sortedNodes[i] < rg.sortedNodes[j] })
		rg.sortedNodesDirty = false
	}
	return rg.sortedNodes
}

// NodeCount returns the number of nodes in the graph.
func (rg *ResidualGraph) NodeCount() int { return len(rg.Nodes) }

// UpdateFlow pushes flow units along the edge from->to, decreasing its
// residual capacity and crediting the backward edge so the push can
// later be canceled. Pushing along a reverse edge cancels flow already
// recorded on its forward counterpart, keeping GetTotalCost and the
// decoders' Flow reads consistent with the actual circulation.
func (rg *ResidualGraph) UpdateFlow(from, to int64, units int64) {
	edge := rg.GetEdge(from, to)
	back := rg.GetEdge(to, from)

	if edge != nil {
		edge.Capacity -= units
		if edge.IsReverse {
			if back != nil {
				back.Flow -= units
			}
		} else {
			edge.Flow += units
		}
	}
	if back != nil {
		back.Capacity += units
	}
}

// GetTotalFlow sums the flow leaving source on forward edges. This is
// the standard way to read off the max flow value after a solve.
func (rg *ResidualGraph) GetTotalFlow(source int64) int64 {
	var total int64
	for _, edge := range rg.EdgesList[source] {
		if !edge.IsReverse && edge.Flow > 0 {
			total += edge.Flow
		}
	}
	return total
}

// GetTotalCost sums flow*cost over all forward edges with positive flow,
// iterating nodes in sorted order so repeated calls agree.
func (rg *ResidualGraph) GetTotalCost() int64 {
	var total int64
	for _, from := range rg.GetSortedNodes() {
		for _, edge := range rg.EdgesList[from] {
			if !edge.IsReverse && edge.Flow > 0 {
				total += edge.Flow * edge.Cost
			}
		}
	}
	return total
}

// GetAllEdges returns every forward (non-reverse) edge, grouped by
// sorted source node, for result decoding (spec.md §4.2).
func (rg *ResidualGraph) GetAllEdges() []*ResidualEdge {
	var result []*ResidualEdge
	for _, from := range rg.GetSortedNodes() {
		for _, edge := range rg.EdgesList[from] {
			if !edge.IsReverse {
				result = append(result, edge)
			}
		}
	}
	return result
}
