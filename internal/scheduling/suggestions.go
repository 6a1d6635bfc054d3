package scheduling

import "sort"

// BuildSuggestions computes, for every scheduled request placed outside
// its parent's preferred slots, an ordered list of feasible alternative
// slots (spec.md §4.4).
//
// preferredSlots maps a parent to the set of slots they prefer, and
// timeSlots is the global slot order used both to enumerate candidates
// and to break ties.
func BuildSuggestions(schedule Schedule, timeSlots []string, preferredSlots map[string][]string) SuggestionMap {
	preferred := make(map[string]map[string]bool, len(preferredSlots))
	for parent, slots := range preferredSlots {
		set := make(map[string]bool, len(slots))
		for _, s := range slots {
			set[s] = true
		}
		preferred[parent] = set
	}

	suggestions := make(SuggestionMap)

	for req, assignedSlot := range schedule {
		if preferred[req.Parent][assignedSlot] {
			continue
		}

		teacherBusy := make(map[string]bool)
		parentBusy := make(map[string]bool)
		for other, slot := range schedule {
			if other == req {
				continue
			}
			if other.Teacher == req.Teacher {
				teacherBusy[slot] = true
			}
			if other.Parent == req.Parent {
				parentBusy[slot] = true
			}
		}

		var feasible []string
		for _, slot := range timeSlots {
			if teacherBusy[slot] || parentBusy[slot] {
				continue
			}
			feasible = append(feasible, slot)
		}

		slotOrder := make(map[string]int, len(timeSlots))
		for i, slot := range timeSlots {
			slotOrder[slot] = i
		}

		sort.SliceStable(feasible, func(i, j int) bool {
			si, sj := feasible[i], feasible[j]
			iNotPreferred := !preferred[req.Parent][si]
			jNotPreferred := !preferred[req.Parent][sj]
			if iNotPreferred != jNotPreferred {
				return !iNotPreferred
			}
			return slotOrder[si] < slotOrder[sj]
		})

		suggestions[req] = feasible
	}

	return suggestions
}
