package scheduling

import (
	"github.com/Print-In-Progress/edconnect-algorithms/internal/flow"
	"github.com/Print-In-Progress/edconnect-algorithms/pkg/apperror"
	"github.com/Print-In-Progress/edconnect-algorithms/pkg/domain"
)

// AggregatorInput is the contract for the time-indexed bipartite
// formulation (spec.md §4.3, §6).
type AggregatorInput struct {
	MeetingRequests   []MeetingRequest
	PreferredSlot     map[MeetingRequest]string
	TeacherSlots      map[string][]string
	GlobalTimeSlots   []string
	DropPenalty       int64
	ReschedulePenalty int64
	ParentBonus       int64
}

// Default tunables for the aggregator formulation (spec.md §6).
const (
	DefaultReschedulePenalty int64 = 50
	DefaultParentBonus       int64 = 20
)

// AggregatorGraph is a built aggregator flow network plus the bookkeeping
// needed to decode a solved flow back into a Schedule.
type AggregatorGraph struct {
	Graph  *flow.ResidualGraph
	Source int64
	Sink   int64

	requests []MeetingRequest
	// Decode reads the flow on the P(p,r)->T(t,r) edge for each request,
	// so both slot-node tables are kept.
	parentSlotNode  map[string]map[int]int64 // parent -> slotIndex -> P(p,r)
	teacherSlotNode map[string]map[int]int64 // teacher -> slotIndex -> T(t,r)

	globalSlots []string
}

// BuildAggregatorGraph translates an AggregatorInput into the flow
// network described in spec.md §4.3.
func BuildAggregatorGraph(input AggregatorInput) (*AggregatorGraph, error) {
	if len(input.GlobalTimeSlots) == 0 {
		return nil, apperror.New(apperror.CodeEmptyInput, "no global time slots provided")
	}

	nodes := &nodeIndex{}
	g := flow.NewResidualGraph()
	source := nodes.alloc()
	sink := nodes.alloc()
	g.AddNode(source)
	g.AddNode(sink)

	ag := &AggregatorGraph{
		Graph:           g,
		Source:          source,
		Sink:            sink,
		parentSlotNode:  make(map[string]map[int]int64),
		teacherSlotNode: make(map[string]map[int]int64),
		globalSlots:     input.GlobalTimeSlots,
	}

	supply := make(map[string]int64)
	requestsToTeacher := make(map[string]int64)
	for _, req := range input.MeetingRequests {
		supply[req.Parent]++
		requestsToTeacher[req.Teacher]++
	}

	parentANode := make(map[string]int64)
	teacherBNode := make(map[string]int64)

	ensureParentGraph := func(parent string) {
		if _, ok := parentANode[parent]; ok {
			return
		}
		aNode := nodes.alloc()
		parentANode[parent] = aNode
		g.AddEdgeWithReverse(source, aNode, supply[parent], 0)
		g.AddEdgeWithReverse(aNode, sink, supply[parent], input.DropPenalty)

		slotNodes := make(map[int]int64, len(input.GlobalTimeSlots))
		for slotIdx := range input.GlobalTimeSlots {
			slotNodes[slotIdx] = nodes.alloc()
			g.AddEdgeWithReverse(aNode, slotNodes[slotIdx], 1, 0)
		}
		for i := 0; i < len(input.GlobalTimeSlots)-1; i++ {
			g.AddEdgeWithReverse(slotNodes[i], slotNodes[i+1], 1, -input.ParentBonus)
		}
		ag.parentSlotNode[parent] = slotNodes
	}

	ensureTeacherGraph := func(teacher string) {
		if _, ok := teacherBNode[teacher]; ok {
			return
		}
		bNode := nodes.alloc()
		teacherBNode[teacher] = bNode
		g.AddEdgeWithReverse(bNode, sink, requestsToTeacher[teacher], 0)

		available := domain.NewOrderedSet(input.TeacherSlots[teacher]...)
		slotNodes := make(map[int]int64)
		for slotIdx, slot := range input.GlobalTimeSlots {
			if !available.Contains(slot) {
				continue
			}
			tNode := nodes.alloc()
			slotNodes[slotIdx] = tNode
			g.AddEdgeWithReverse(tNode, bNode, 1, 0)
		}
		ag.teacherSlotNode[teacher] = slotNodes
	}

	for _, req := range input.MeetingRequests {
		ensureParentGraph(req.Parent)
		ensureTeacherGraph(req.Teacher)
		ag.requests = append(ag.requests, req)

		pref := input.PreferredSlot[req]
		for slotIdx, slot := range input.GlobalTimeSlots {
			tNode, ok := ag.teacherSlotNode[req.Teacher][slotIdx]
			if !ok {
				continue
			}
			pNode := ag.parentSlotNode[req.Parent][slotIdx]

			cost := input.ReschedulePenalty
			if slot == pref {
				cost = 0
			}
			g.AddEdgeWithReverse(pNode, tNode, 1, cost)
		}
	}

	return ag, nil
}
