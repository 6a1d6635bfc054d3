// Package scheduling implements Core A: the min-cost-flow conference
// scheduler (spec.md §4.1-§4.4).
package scheduling

// MeetingRequest identifies one desired (parent, teacher) meeting. Its
// identity is the pair itself (spec.md §3).
type MeetingRequest struct {
	Parent  string
	Teacher string
}

// ParentPreference is one parent's gadget-form request: the teachers they
// want to meet and the slots they'd prefer, both treated as sets.
type ParentPreference struct {
	Parent         string
	Teachers       []string
	PreferredSlots []string
}

// GadgetInput is the contract for the gadget Flow-Graph Builder (spec.md §6).
type GadgetInput struct {
	TimeSlots         []string
	Teachers          []string
	ParentPreferences []ParentPreference
	PreferredReward   int64
	DropPenalty       int64
}

// DefaultPreferredReward and DefaultDropPenalty are the tunable defaults
// named in spec.md §6.
const (
	DefaultPreferredReward int64 = 10
	DefaultDropPenalty     int64 = 1000
)

// Schedule is the partial mapping from meeting request to assigned slot.
type Schedule map[MeetingRequest]string

// DropSet lists the requests that could not be placed.
type DropSet []MeetingRequest

// Result is the decoded outcome of a scheduling solve (spec.md §3).
type Result struct {
	Schedule    Schedule
	Drops       DropSet
	TotalReward int64
}

// SuggestionMap maps a non-preferredly-scheduled request to its ordered
// list of feasible alternative slots (spec.md §3, §4.4).
type SuggestionMap map[MeetingRequest][]string
