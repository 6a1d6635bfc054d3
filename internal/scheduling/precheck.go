package scheduling

import "github.com/Print-In-Progress/edconnect-algorithms/pkg/apperror"

// FeasibilityWarning describes a precheck finding that does not block a
// solve but should be surfaced to the caller (spec.md §7, §9).
type FeasibilityWarning struct {
	Teacher string
	Message string
}

// CheckFeasibility runs the corrected precheck from spec.md §9: the
// original source's feasibility_check iterated over an undefined loop
// variable and never actually checked per-teacher load. This computes
// per-teacher request counts directly and warns when any teacher is
// asked for more meetings than there are slots to place them in, plus a
// coarser aggregate bound across all parents and teachers.
func CheckFeasibility(input GadgetInput) []FeasibilityWarning {
	var warnings []FeasibilityWarning

	requestsPerTeacher := make(map[string]int)
	for _, pref := range input.ParentPreferences {
		for _, teacher := range pref.Teachers {
			requestsPerTeacher[teacher]++
		}
	}

	slotCount := len(input.TimeSlots)
	for _, teacher := range input.Teachers {
		if requestsPerTeacher[teacher] > slotCount {
			warnings = append(warnings, FeasibilityWarning{
				Teacher: teacher,
				Message: apperror.New(apperror.CodeOverCapacity, "teacher has more requested meetings than available slots").Error(),
			})
		}
	}

	var totalDemand int
	for _, pref := range input.ParentPreferences {
		if len(pref.Teachers) < slotCount {
			totalDemand += len(pref.Teachers)
		} else {
			totalDemand += slotCount
		}
	}
	totalSupply := len(input.Teachers) * slotCount
	if totalDemand > totalSupply {
		warnings = append(warnings, FeasibilityWarning{
			Message: apperror.New(apperror.CodeOverCapacity, "aggregate parent demand exceeds total teacher-slot capacity").Error(),
		})
	}

	return warnings
}
