package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Scenario S4 (spec.md §8): a schedule with one meeting placed off
// preference; its suggestion list contains only slots unoccupied by
// that parent and that teacher, with preferred slots first.
func TestBuildSuggestions_ScenarioS4(t *testing.T) {
	timeSlots := []string{"9:00", "9:30", "10:00", "10:30"}
	offPreference := MeetingRequest{Parent: "alice", Teacher: "History"}

	schedule := Schedule{
		{Parent: "alice", Teacher: "Math"}:    "9:00",
		{Parent: "alice", Teacher: "Science"}: "9:30",
		offPreference:                         "10:00",
		{Parent: "bob", Teacher: "Math"}:      "10:30",
	}

	preferredSlots := map[string][]string{
		"alice": {"9:00", "9:30", "10:30"},
	}

	suggestions := BuildSuggestions(schedule, timeSlots, preferredSlots)

	got, ok := suggestions[offPreference]
	assert.True(t, ok)

	for _, slot := range got {
		assert.NotEqual(t, "9:00", slot, "alice already occupies 9:00 at Math")
		assert.NotEqual(t, "9:30", slot, "alice already occupies 9:30 at Science")
	}

	// 10:30 is preferred and unoccupied by alice or any History meeting,
	// so it sorts first; 10:00 is alice's own current assignment, which
	// the spec excludes from the busy sets so it remains listable.
	assert.Equal(t, []string{"10:30", "10:00"}, got)
}

func TestBuildSuggestions_PreferredSlotsSortedFirst(t *testing.T) {
	timeSlots := []string{"9:00", "9:30", "10:00"}
	req := MeetingRequest{Parent: "alice", Teacher: "History"}

	schedule := Schedule{req: "10:00"}
	preferredSlots := map[string][]string{"alice": {"9:30"}}

	suggestions := BuildSuggestions(schedule, timeSlots, preferredSlots)

	// 10:00 is the request's own current slot; it stays listable and
	// sorts after the preferred 9:30 and the earlier 9:00.
	got := suggestions[req]
	assert.Equal(t, []string{"9:30", "9:00", "10:00"}, got)
}

func TestBuildSuggestions_NoSuggestionForPreferredAssignment(t *testing.T) {
	req := MeetingRequest{Parent: "alice", Teacher: "Math"}
	schedule := Schedule{req: "9:00"}
	preferredSlots := map[string][]string{"alice": {"9:00"}}

	suggestions := BuildSuggestions(schedule, []string{"9:00", "9:30"}, preferredSlots)

	_, ok := suggestions[req]
	assert.False(t, ok)
}
