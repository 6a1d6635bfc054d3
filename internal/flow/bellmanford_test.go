package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBellmanFordSimplePath(t *testing.T) {
	g := NewResidualGraph()
	g.AddEdgeWithReverse(1, 2, 10, 2)
	g.AddEdgeWithReverse(2, 3, 10, 3)

	result := BellmanFord(g, 1, nil)

	assert.False(t, result.HasNegativeCycle)
	assert.Equal(t, int64(0), result.Distances[1])
	assert.Equal(t, int64(2), result.Distances[2])
	assert.Equal(t, int64(5), result.Distances[3])
	assert.Equal(t, int64(2), result.Parent[3])
}

func TestBellmanFordPicksCheaperPath(t *testing.T) {
	g := NewResidualGraph()
	g.AddEdgeWithReverse(1, 2, 10, 10)
	g.AddEdgeWithReverse(1, 3, 10, 1)
	g.AddEdgeWithReverse(3, 2, 10, 1)

	result := BellmanFord(g, 1, nil)

	assert.Equal(t, int64(2), result.Distances[2])
	assert.Equal(t, int64(3), result.Parent[2])
}

func TestBellmanFordUnreachableNode(t *testing.T) {
	g := NewResidualGraph()
	g.AddNode(1)
	g.AddNode(5)
	g.AddEdgeWithReverse(1, 2, 10, 1)

	result := BellmanFord(g, 1, nil)

	assert.Equal(t, Infinity, result.Distances[5])
	assert.Equal(t, int64(-1), result.Parent[5])
}

func TestBellmanFordDetectsNegativeCycle(t *testing.T) {
	g := NewResidualGraph()
	g.AddEdge(1, 2, 10, 1)
	g.AddEdge(2, 3, 10, -5)
	g.AddEdge(3, 1, 10, 1)

	result := BellmanFord(g, 1, nil)

	assert.True(t, result.HasNegativeCycle)
}

func TestBellmanFordWithPotentials(t *testing.T) {
	g := NewResidualGraph()
	g.AddEdgeWithReverse(1, 2, 10, 5)
	g.AddEdgeWithReverse(2, 3, 10, 5)

	potentials := map[int64]int64{1: 0, 2: 5, 3: 10}
	result := BellmanFord(g, 1, potentials)

	assert.False(t, result.HasNegativeCycle)
	assert.Equal(t, int64(0), result.Distances[2])
	assert.Equal(t, int64(0), result.Distances[3])
}
