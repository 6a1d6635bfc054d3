package scheduling

import (
	"github.com/Print-In-Progress/edconnect-algorithms/internal/flow"
	"github.com/Print-In-Progress/edconnect-algorithms/pkg/apperror"
	"github.com/Print-In-Progress/edconnect-algorithms/pkg/domain"
)

// nodeIndex allocates sequential integer node ids, replacing the
// original's stringly-named node identifiers (spec.md §9).
type nodeIndex struct{ next int64 }

func (n *nodeIndex) alloc() int64 {
	id := n.next
	n.next++
	return id
}

// gadgetKey addresses an (parent, teacher, slot) candidate node pair, or
// an (actor, slot) gadget, by tuple rather than by formatted string.
type gadgetKey struct {
	a, b, c string
}

// GadgetGraph is a built flow network plus enough bookkeeping to decode
// a solved flow back into a Schedule (spec.md §4.1, §4.2).
type GadgetGraph struct {
	Graph  *flow.ResidualGraph
	Source int64
	Sink   int64

	requests []MeetingRequest
	meeting  map[MeetingRequest]int64
	// candidate[req][slotIndex] is the A(p,t,r) node for that request/slot.
	candidate map[MeetingRequest]map[int]int64

	timeSlots []string
}

// BuildGadgetGraph translates a GadgetInput into the flow network
// described in spec.md §4.1. Unknown teachers referenced by a parent
// preference, and preferred slots absent from time_slots, are silently
// skipped per the spec's InputShape handling (§7).
func BuildGadgetGraph(input GadgetInput) (*GadgetGraph, error) {
	if len(input.TimeSlots) == 0 {
		return nil, apperror.New(apperror.CodeEmptyInput, "no time slots provided")
	}

	teacherSet := domain.NewOrderedSet(input.Teachers...)

	nodes := &nodeIndex{}
	g := flow.NewResidualGraph()
	source := nodes.alloc()
	sink := nodes.alloc()
	g.AddNode(source)
	g.AddNode(sink)

	parentGadget := make(map[gadgetKey]struct{ in, out int64 })
	teacherGadget := make(map[gadgetKey]struct{ in, out int64 })

	gg := &GadgetGraph{
		Graph:     g,
		Source:    source,
		Sink:      sink,
		meeting:   make(map[MeetingRequest]int64),
		candidate: make(map[MeetingRequest]map[int]int64),
		timeSlots: input.TimeSlots,
	}

	for _, pref := range input.ParentPreferences {
		preferredSlots := domain.NewOrderedSet(pref.PreferredSlots...)

		for _, teacher := range pref.Teachers {
			if !teacherSet.Contains(teacher) {
				continue
			}

			req := MeetingRequest{Parent: pref.Parent, Teacher: teacher}
			if _, exists := gg.meeting[req]; exists {
				continue
			}

			meetingNode := nodes.alloc()
			gg.meeting[req] = meetingNode
			gg.requests = append(gg.requests, req)
			gg.candidate[req] = make(map[int]int64)

			g.AddEdgeWithReverse(source, meetingNode, 1, 0)
			g.AddEdgeWithReverse(meetingNode, sink, 1, input.DropPenalty)

			for slotIdx, slot := range input.TimeSlots {
				candidateNode := nodes.alloc()
				bNode := nodes.alloc()
				gg.candidate[req][slotIdx] = candidateNode

				cost := int64(0)
				if preferredSlots.Contains(slot) {
					cost = -input.PreferredReward
				}
				g.AddEdgeWithReverse(meetingNode, candidateNode, 1, cost)

				pKey := gadgetKey{a: pref.Parent, b: slot}
				pg, ok := parentGadget[pKey]
				if !ok {
					pg = struct{ in, out int64 }{nodes.alloc(), nodes.alloc()}
					parentGadget[pKey] = pg
					g.AddEdgeWithReverse(pg.in, pg.out, 1, 0)
				}
				g.AddEdgeWithReverse(candidateNode, pg.in, 1, 0)
				g.AddEdgeWithReverse(pg.out, bNode, 1, 0)

				tKey := gadgetKey{a: teacher, b: slot}
				tg, ok := teacherGadget[tKey]
				if !ok {
					tg = struct{ in, out int64 }{nodes.alloc(), nodes.alloc()}
					teacherGadget[tKey] = tg
					g.AddEdgeWithReverse(tg.in, tg.out, 1, 0)
					g.AddEdgeWithReverse(tg.out, sink, 1, 0)
				}
				g.AddEdgeWithReverse(bNode, tg.in, 1, 0)
			}
		}
	}

	return gg, nil
}
