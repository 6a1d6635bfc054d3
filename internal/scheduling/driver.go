package scheduling

import "github.com/Print-In-Progress/edconnect-algorithms/internal/flow"

// SolveGadget builds the gadget flow network for input, invokes the
// min-cost flow driver, and decodes the result into a Schedule
// (spec.md §4.2).
func SolveGadget(input GadgetInput) (*Result, error) {
	gg, err := BuildGadgetGraph(input)
	if err != nil {
		return nil, err
	}

	requestCount := int64(len(gg.requests))
	if _, err := flow.MinCostMaxFlow(gg.Graph, gg.Source, gg.Sink, requestCount); err != nil {
		return nil, err
	}

	return decodeGadget(gg), nil
}

// decodeGadget scans time_slots in input order for each request's first
// flow-carrying candidate edge, per spec.md §4.2's determinism rule.
func decodeGadget(gg *GadgetGraph) *Result {
	schedule := make(Schedule, len(gg.requests))
	var drops DropSet

	for _, req := range gg.requests {
		meetingNode := gg.meeting[req]
		assigned := false

		for slotIdx, slot := range gg.timeSlots {
			candidateNode, ok := gg.candidate[req][slotIdx]
			if !ok {
				continue
			}
			edge := gg.Graph.GetEdge(meetingNode, candidateNode)
			if edge != nil && edge.Flow > 0 {
				schedule[req] = slot
				assigned = true
				break
			}
		}

		if !assigned {
			drops = append(drops, req)
		}
	}

	return &Result{
		Schedule:    schedule,
		Drops:       drops,
		TotalReward: -gg.Graph.GetTotalCost(),
	}
}

// SolveAggregator builds the time-indexed aggregator flow network for
// input, invokes the min-cost flow driver, and decodes the result into
// a Schedule (spec.md §4.3).
func SolveAggregator(input AggregatorInput) (*Result, error) {
	ag, err := BuildAggregatorGraph(input)
	if err != nil {
		return nil, err
	}

	requestCount := int64(len(ag.requests))
	if _, err := flow.MinCostMaxFlow(ag.Graph, ag.Source, ag.Sink, requestCount); err != nil {
		return nil, err
	}

	return decodeAggregator(ag), nil
}

// decodeAggregator finds, for each request, the slot whose P(p,r)->T(t,r)
// edge carries positive flow (spec.md §4.3 decoding rule).
func decodeAggregator(ag *AggregatorGraph) *Result {
	schedule := make(Schedule, len(ag.requests))
	var drops DropSet

	for _, req := range ag.requests {
		assigned := false

		for slotIdx, slot := range ag.globalSlots {
			pNode, ok := ag.parentSlotNode[req.Parent][slotIdx]
			if !ok {
				continue
			}
			tNode, ok := ag.teacherSlotNode[req.Teacher][slotIdx]
			if !ok {
				continue
			}
			edge := ag.Graph.GetEdge(pNode, tNode)
			if edge != nil && edge.Flow > 0 {
				schedule[req] = slot
				assigned = true
				break
			}
		}

		if !assigned {
			drops = append(drops, req)
		}
	}

	return &Result{
		Schedule:    schedule,
		Drops:       drops,
		TotalReward: -ag.Graph.GetTotalCost(),
	}
}
