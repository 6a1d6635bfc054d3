package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatEquals(t *testing.T) {
	assert.True(t, FloatEquals(0.75, 0.75))
	assert.True(t, FloatEquals(0.75, 0.75+1e-12))
	assert.False(t, FloatEquals(0.75, 0.76))
}

func TestFloatGreaterOrEqual(t *testing.T) {
	assert.True(t, FloatGreaterOrEqual(0.8, 0.75))
	assert.True(t, FloatGreaterOrEqual(0.75, 0.75))
	assert.False(t, FloatGreaterOrEqual(0.7, 0.75))
}

func TestFloorRatio(t *testing.T) {
	assert.Equal(t, int64(7), FloorRatio(0.5, 15))
	assert.Equal(t, int64(0), FloorRatio(0.1, 3))
	assert.Equal(t, int64(10), FloorRatio(1.0, 10))
}

func TestOrderedSetDedup(t *testing.T) {
	s := NewOrderedSet("18:00", "9:00", "18:00")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"18:00", "9:00"}, s.Items())
	assert.True(t, s.Contains("9:00"))
	assert.False(t, s.Contains("10:00"))
}

func TestOrderedSetAdd(t *testing.T) {
	s := NewOrderedSet[string]()
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("a"))
	assert.True(t, s.Add("b"))
	assert.Equal(t, []string{"a", "b"}, s.Items())
}

func TestIndexOf(t *testing.T) {
	slots := []string{"9:00", "9:30", "10:00"}
	assert.Equal(t, 0, IndexOf(slots, "9:00"))
	assert.Equal(t, 2, IndexOf(slots, "10:00"))
	assert.Equal(t, -1, IndexOf(slots, "11:00"))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"c": 3, "a": 1, "b": 2}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
}
