package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulingInputHash(t *testing.T) {
	slots := []string{"9:00", "9:30", "10:00"}
	teachers := []string{"Math", "Science"}
	prefs := []ParentPreferenceInput{
		{Parent: "alice", Teachers: []string{"Math"}, PreferredSlots: []string{"9:00"}},
	}

	t.Run("same input produces same hash", func(t *testing.T) {
		h1 := SchedulingInputHash(slots, teachers, prefs, 10, 1000)
		h2 := SchedulingInputHash(slots, teachers, prefs, 10, 1000)
		assert.Equal(t, h1, h2)
	})

	t.Run("different tunables produce different hashes", func(t *testing.T) {
		h1 := SchedulingInputHash(slots, teachers, prefs, 10, 1000)
		h2 := SchedulingInputHash(slots, teachers, prefs, 20, 1000)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("teacher set order does not affect hash", func(t *testing.T) {
		h1 := SchedulingInputHash(slots, []string{"Math", "Science"}, prefs, 10, 1000)
		h2 := SchedulingInputHash(slots, []string{"Science", "Math"}, prefs, 10, 1000)
		assert.Equal(t, h1, h2)
	})

	t.Run("slot order affects hash", func(t *testing.T) {
		h1 := SchedulingInputHash(slots, teachers, prefs, 10, 1000)
		h2 := SchedulingInputHash([]string{"9:30", "9:00", "10:00"}, teachers, prefs, 10, 1000)
		assert.NotEqual(t, h1, h2)
	})
}

func TestClassAssignInputHash(t *testing.T) {
	students := []StudentInput{
		{ID: "s1", Preferences: []string{"s2"}, Sex: "m"},
		{ID: "s2", Preferences: []string{"s1"}, Sex: "f"},
	}
	classes := []ClassInput{{ID: "A", Capacity: 3}, {ID: "B", Capacity: 3}}

	t.Run("same input produces same hash", func(t *testing.T) {
		h1 := ClassAssignInputHash(students, classes, 0.5, 0.5, true, 30)
		h2 := ClassAssignInputHash(students, classes, 0.5, 0.5, true, 30)
		assert.Equal(t, h1, h2)
	})

	t.Run("student order does not affect hash", func(t *testing.T) {
		reordered := []StudentInput{students[1], students[0]}
		h1 := ClassAssignInputHash(students, classes, 0.5, 0.5, true, 30)
		h2 := ClassAssignInputHash(reordered, classes, 0.5, 0.5, true, 30)
		assert.Equal(t, h1, h2)
	})

	t.Run("different capacity produces different hash", func(t *testing.T) {
		otherClasses := []ClassInput{{ID: "A", Capacity: 4}, {ID: "B", Capacity: 3}}
		h1 := ClassAssignInputHash(students, classes, 0.5, 0.5, true, 30)
		h2 := ClassAssignInputHash(students, otherClasses, 0.5, 0.5, true, 30)
		assert.NotEqual(t, h1, h2)
	})
}

func TestBuildSolveKey(t *testing.T) {
	key := BuildSolveKey("schedule", "abc123", "gadget")
	assert.Equal(t, "solve:schedule:gadget:abc123", key)
}

func TestQuickHash(t *testing.T) {
	data := []byte("test data")
	hash := QuickHash(data)

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, QuickHash(data))
}

func TestShortHash(t *testing.T) {
	hash := ShortHash([]byte("test data"))
	assert.Len(t, hash, 16)
}
