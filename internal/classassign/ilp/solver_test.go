package ilp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBranchAndBoundSimpleKnapsack(t *testing.T) {
	m := NewModel()
	a := m.AddVariable("a")
	b := m.AddVariable("b")
	c := m.AddVariable("c")
	m.SetObjectiveCoeff(a, 5)
	m.SetObjectiveCoeff(b, 4)
	m.SetObjectiveCoeff(c, 3)
	// capacity 2: pick the two highest-value items (a, b).
	m.AddConstraintLE("cap", map[int]float64{a: 1, b: 1, c: 1}, 2)

	solver := NewBranchAndBoundSolver()
	sol, err := solver.Solve(m, 0)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, sol.Status)
	require.Equal(t, float64(9), sol.Objective)
	require.Equal(t, []float64{1, 1, 0}, sol.Values)
}

func TestBranchAndBoundInfeasible(t *testing.T) {
	m := NewModel()
	a := m.AddVariable("a")
	b := m.AddVariable("b")
	m.AddConstraintLE("sum_le_1", map[int]float64{a: 1, b: 1}, 1)
	m.AddConstraintLE("sum_ge_2", map[int]float64{a: -1, b: -1}, -2) // a+b >= 2

	solver := NewBranchAndBoundSolver()
	sol, err := solver.Solve(m, 0)
	require.NoError(t, err)
	require.Equal(t, StatusInfeasible, sol.Status)
}

func TestBranchAndBoundANDLinearization(t *testing.T) {
	m := NewModel()
	x1 := m.AddVariable("x1")
	x2 := m.AddVariable("x2")
	y := m.AddVariable("y")
	m.SetObjectiveCoeff(x1, 1)
	m.SetObjectiveCoeff(x2, 1)
	m.SetObjectiveCoeff(y, 10)
	m.AddConstraintLE("ub1", map[int]float64{y: 1, x1: -1}, 0)
	m.AddConstraintLE("ub2", map[int]float64{y: 1, x2: -1}, 0)
	m.AddConstraintLE("lb", map[int]float64{x1: 1, x2: 1, y: -1}, 1)

	solver := NewBranchAndBoundSolver()
	sol, err := solver.Solve(m, 0)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, sol.Status)
	require.Equal(t, float64(1), sol.Values[x1])
	require.Equal(t, float64(1), sol.Values[x2])
	require.Equal(t, float64(1), sol.Values[y])
	require.Equal(t, float64(12), sol.Objective)
}

func TestBranchAndBoundTimeLimitReportsFeasibleOrOther(t *testing.T) {
	m := NewModel()
	// A handful of variables sharing one tight capacity constraint: the
	// search space is small enough that a 1ns deadline still reaches a
	// deterministic outcome without hanging the test.
	idx := make([]int, 6)
	coeffs := make(map[int]float64, 6)
	for i := range idx {
		idx[i] = m.AddVariable("v")
		m.SetObjectiveCoeff(idx[i], float64(i+1))
		coeffs[idx[i]] = 1
	}
	m.AddConstraintLE("cap", coeffs, 3)

	solver := NewBranchAndBoundSolver()
	sol, err := solver.Solve(m, time.Nanosecond)
	require.NoError(t, err)
	require.Contains(t, []Status{StatusFeasible, StatusOther, StatusOptimal}, sol.Status)
}
