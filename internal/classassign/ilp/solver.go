package ilp

import (
	"time"
)

// Status mirrors the external LP/ILP solver contract of spec.md §6: one
// of four outcomes the driver (B3) must distinguish.
type Status int

const (
	// StatusOptimal means the returned values are a proven optimum.
	StatusOptimal Status = iota
	// StatusFeasible means the search produced an incumbent (e.g. the
	// time limit was reached) without proving it optimal.
	StatusFeasible
	// StatusInfeasible means no assignment of the binary variables
	// satisfies every constraint.
	StatusInfeasible
	// StatusOther covers anything else (e.g. the time limit expired
	// before any feasible incumbent was found at all).
	StatusOther
)

// Solution is a solved Model: a status plus one binary value per
// variable (indexed as in Model.VarNames) and the objective they attain.
type Solution struct {
	Status    Status
	Values    []float64
	Objective float64
}

// Solver is the contract spec.md §6 fixes for the external LP/ILP
// solver: variables, linear constraints, a linear objective to
// maximize, an optional time limit, and a decoded solution back.
type Solver interface {
	Solve(m *Model, timeLimit time.Duration) (Solution, error)
}

// BranchAndBoundSolver is the concrete LPSolver behind the ILP driver
// (B3). No LP/ILP library exists anywhere in the retrieved example
// pack, so this package provides the exact search itself, reusing the
// deterministic-branching, admissible-bound, soft-deadline shape of
// the branch-and-bound search in katalvlaran-lvlath/tsp/bb.go (not its
// TSP-specific lower bound, which has no analogue for a generic binary
// program).
//
// The relaxation bound used here drops every constraint (valid because
// removing constraints can only raise the achievable objective) rather
// than solving a continuous LP relaxation, since this package has no LP
// solver to call for that; it is a weaker bound than a true LP
// relaxation would give, but it is sound, and per-constraint best-case
// feasibility pruning (below) does most of the practical work of
// cutting the search tree.
type BranchAndBoundSolver struct{}

// NewBranchAndBoundSolver returns a ready-to-use solver.
func NewBranchAndBoundSolver() *BranchAndBoundSolver {
	return &BranchAndBoundSolver{}
}

// bbEngine holds the search state for one Solve call.
type bbEngine struct {
	m *Model
	n int

	// Sparse views in both directions: constraintVars[k] lists the
	// variables constraint k touches, varConstraints[i] the constraints
	// variable i appears in.
	constraintVars  [][]varCoeff // indexed by constraint
	varConstraints  [][]varCoeff // indexed by variable: which constraints it's in, and its coeff there
	bound           []float64    // constraint RHS
	sumFixed        []float64    // running Σ coeff*value over fixed vars, per constraint
	remainingNegSum []float64    // running Σ min(0, coeff) over unfixed vars, per constraint

	posObjRemaining float64 // Σ max(0, obj[i]) over unfixed vars
	currentObj      float64

	value   []float64 // current partial assignment (only [0:depth) meaningful)
	bestVal []float64
	bestObj float64
	found   bool

	useDeadline bool
	deadline    time.Time
	timedOut    bool
	steps       int
}

type varCoeff struct {
	idx   int
	coeff float64
}

// Solve runs the branch-and-bound search described above. timeLimit <= 0
// means no limit.
func (s *BranchAndBoundSolver) Solve(m *Model, timeLimit time.Duration) (Solution, error) {
	e := &bbEngine{m: m, n: m.NumVars()}
	e.init(timeLimit)
	e.dfs(0)

	if !e.found {
		if e.timedOut {
			return Solution{Status: StatusOther}, nil
		}
		return Solution{Status: StatusInfeasible}, nil
	}

	status := StatusOptimal
	if e.timedOut {
		status = StatusFeasible
	}
	values := make([]float64, e.n)
	copy(values, e.bestVal)
	return Solution{Status: status, Values: values, Objective: e.bestObj}, nil
}

func (e *bbEngine) init(timeLimit time.Duration) {
	nc := len(e.m.Constraints)
	e.constraintVars = make([][]varCoeff, nc)
	e.bound = make([]float64, nc)
	e.sumFixed = make([]float64, nc)
	e.remainingNegSum = make([]float64, nc)
	e.varConstraints = make([][]varCoeff, e.n)

	for ci, c := range e.m.Constraints {
		e.bound[ci] = c.Bound
		for varIdx, coeff := range c.Coeffs {
			e.constraintVars[ci] = append(e.constraintVars[ci], varCoeff{idx: varIdx, coeff: coeff})
			e.varConstraints[varIdx] = append(e.varConstraints[varIdx], varCoeff{idx: ci, coeff: coeff})
			if coeff < 0 {
				e.remainingNegSum[ci] += coeff
			}
		}
	}

	for _, obj := range e.m.Objective {
		if obj > 0 {
			e.posObjRemaining += obj
		}
	}

	e.value = make([]float64, e.n)
	e.bestVal = make([]float64, e.n)

	if timeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(timeLimit)
	}
}

// deadlineHit performs a rare wall-clock check, matching the sparse
// deadline-polling idiom of the reused branch-and-bound shape.
func (e *bbEngine) deadlineHit() bool {
	e.steps++
	if !e.useDeadline || e.steps&1023 != 0 {
		return false
	}
	if time.Now().After(e.deadline) {
		e.timedOut = true
		return true
	}
	return false
}

// feasibleSoFar reports whether every constraint touched by varIdx can
// still be satisfied in the best case, given the values fixed so far.
func (e *bbEngine) feasibleSoFar(varIdx int) bool {
	for _, vc := range e.varConstraints[varIdx] {
		if e.sumFixed[vc.idx]+e.remainingNegSum[vc.idx] > e.bound[vc.idx]+1e-9 {
			return false
		}
	}
	return true
}

// fix commits value for varIdx and updates the incremental constraint
// and objective bookkeeping; unfix reverses it.
func (e *bbEngine) fix(varIdx int, value float64) {
	e.value[varIdx] = value
	for _, vc := range e.varConstraints[varIdx] {
		e.sumFixed[vc.idx] += vc.coeff * value
		if vc.coeff < 0 {
			e.remainingNegSum[vc.idx] -= vc.coeff
		}
	}
	obj := e.m.Objective[varIdx]
	e.currentObj += obj * value
	if obj > 0 {
		e.posObjRemaining -= obj
	}
}

func (e *bbEngine) unfix(varIdx int, value float64) {
	for _, vc := range e.varConstraints[varIdx] {
		e.sumFixed[vc.idx] -= vc.coeff * value
		if vc.coeff < 0 {
			e.remainingNegSum[vc.idx] += vc.coeff
		}
	}
	obj := e.m.Objective[varIdx]
	e.currentObj -= obj * value
	if obj > 0 {
		e.posObjRemaining += obj
	}
	e.value[varIdx] = 0
}

// dfs explores variable depth..n-1, branching each on {1, 0} in that
// deterministic order.
func (e *bbEngine) dfs(depth int) {
	if e.deadlineHit() {
		return
	}

	// Optimistic bound: current objective plus every remaining positive
	// coefficient, ignoring all constraints (admissible, see type doc).
	if e.found && e.currentObj+e.posObjRemaining <= e.bestObj+1e-9 {
		return
	}

	if depth == e.n {
		if e.currentObj > e.bestObj || !e.found {
			e.bestObj = e.currentObj
			copy(e.bestVal, e.value)
			e.found = true
		}
		return
	}

	for _, v := range [2]float64{1, 0} {
		e.fix(depth, v)
		if e.feasibleSoFar(depth) {
			e.dfs(depth + 1)
		}
		e.unfix(depth, v)
		if e.timedOut {
			return
		}
	}
}
