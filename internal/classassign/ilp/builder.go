package ilp

import (
	"math"
	"sort"
	"strconv"

	"github.com/Print-In-Progress/edconnect-algorithms/internal/classassign/cluster"
	"github.com/Print-In-Progress/edconnect-algorithms/pkg/domain"
)

// StudentInput is the subset of a student's record the model builder
// needs: an id, its preference list, and its sex. Categorical attributes
// are not part of it; they reach the builder only as Categorical.Carries
// closures (spec.md §9 "dynamic attribute lookup" - the builder never
// sees an attribute name).
type StudentInput struct {
	ID          string
	Preferences []string
	Sex         string
}

// ClassInput is one class's id and capacity.
type ClassInput struct {
	ID       string
	Capacity int
}

// GenderBound is the optional per-sex fractional capacity bound
// (spec.md §4.6).
type GenderBound struct {
	M float64
	F float64
}

// Categorical is one attribute predicate plus its constraint mode.
// Modeling the attribute as a closure (Carries) rather than a name keeps
// the builder ignorant of what the attribute means (spec.md §9).
type Categorical struct {
	Carries func(studentID string) bool
	Mode    CategoricalMode
}

// CategoricalMode mirrors classassign.ConstraintMode without importing
// the parent package (which imports ilp), avoiding an import cycle.
type CategoricalMode int

const (
	ModeConcentrate CategoricalMode = iota
	ModeSpread
)

// BuildParams bundles everything the model builder needs beyond the
// student/class data itself.
type BuildParams struct {
	Students    []StudentInput // sorted by ID for deterministic variable order
	Classes     []ClassInput   // enumeration order fixes tie-breaks (spec.md §4.7)
	Gender      *GenderBound
	Categorical []Categorical
	// Pairs restricts the quadratic y-variables to this set of unordered
	// (s1, s2) pairs with s1 < s2. A nil Pairs creates no y-variables at
	// all; pass AllPairs for the full formulation (spec.md §4.6).
	Pairs [][2]string
}

// Built is a Model plus the bookkeeping needed to decode a solution back
// into a class assignment.
type Built struct {
	Model *Model
	// XVar[studentID][classID] is the index of that assignment variable.
	XVar map[string]map[string]int
}

// BuildModel constructs the binary ILP described in spec.md §4.6: the
// assignment/capacity/AND-linearization constraints, the optional gender
// and categorical constraints, and the shared-preference objective.
//
// Only unordered pairs (s1 < s2) get a y variable; spec.md §4.6 notes the
// ordered-pair doubling it describes is "constant across feasible
// solutions and does not affect optima", so this halves the variable
// count with the same optimal assignment.
func BuildModel(params BuildParams) *Built {
	m := NewModel()
	xVar := make(map[string]map[string]int, len(params.Students))

	for _, s := range params.Students {
		xVar[s.ID] = make(map[string]int, len(params.Classes))
		for _, c := range params.Classes {
			idx := m.AddVariable("x:" + s.ID + ":" + c.ID)
			xVar[s.ID][c.ID] = idx
		}
	}

	// Assignment upper bound: at most one class per student.
	for _, s := range params.Students {
		coeffs := make(map[int]float64, len(params.Classes))
		for _, c := range params.Classes {
			coeffs[xVar[s.ID][c.ID]] = 1
		}
		m.AddConstraintLE("assign_upper:"+s.ID, coeffs, 1)
	}

	// Capacity: no class over its seat count.
	for _, c := range params.Classes {
		coeffs := make(map[int]float64, len(params.Students))
		for _, s := range params.Students {
			coeffs[xVar[s.ID][c.ID]] = 1
		}
		m.AddConstraintLE("capacity:"+c.ID, coeffs, float64(c.Capacity))
	}

	prefSet := make(map[string]map[string]struct{}, len(params.Students))
	for _, s := range params.Students {
		set := make(map[string]struct{}, len(s.Preferences))
		for _, p := range s.Preferences {
			set[p] = struct{}{}
		}
		prefSet[s.ID] = set
	}

	for _, pair := range params.Pairs {
		s1, s2 := pair[0], pair[1]
		weight := float64(sharedPreferenceCount(prefSet, s1, s2))

		for _, c := range params.Classes {
			x1, x2 := xVar[s1][c.ID], xVar[s2][c.ID]
			y := m.AddVariable("y:" + s1 + ":" + s2 + ":" + c.ID)

			m.AddConstraintLE("and_ub1:"+s1+":"+s2+":"+c.ID, map[int]float64{y: 1, x1: -1}, 0)
			m.AddConstraintLE("and_ub2:"+s1+":"+s2+":"+c.ID, map[int]float64{y: 1, x2: -1}, 0)
			m.AddConstraintLE("and_lb:"+s1+":"+s2+":"+c.ID, map[int]float64{x1: 1, x2: 1, y: -1}, 1)

			if weight != 0 {
				m.SetObjectiveCoeff(y, weight)
			}
		}
	}

	if params.Gender != nil {
		addGenderConstraints(m, xVar, params)
	}
	for i, cat := range params.Categorical {
		addCategoricalConstraint(m, xVar, params, cat, i)
	}

	return &Built{Model: m, XVar: xVar}
}

func sharedPreferenceCount(prefSet map[string]map[string]struct{}, s1, s2 string) int {
	a, b := prefSet[s1], prefSet[s2]
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for p := range a {
		if _, ok := b[p]; ok {
			count++
		}
	}
	return count
}

func addGenderConstraints(m *Model, xVar map[string]map[string]int, params BuildParams) {
	for _, c := range params.Classes {
		mCoeffs := make(map[int]float64)
		fCoeffs := make(map[int]float64)
		for _, s := range params.Students {
			switch s.Sex {
			case "m":
				mCoeffs[xVar[s.ID][c.ID]] = 1
			case "f":
				fCoeffs[xVar[s.ID][c.ID]] = 1
			}
		}
		if len(mCoeffs) > 0 {
			bound := float64(domain.FloorRatio(params.Gender.M, c.Capacity))
			m.AddConstraintLE("gender_m:"+c.ID, mCoeffs, bound)
		}
		if len(fCoeffs) > 0 {
			bound := float64(domain.FloorRatio(params.Gender.F, c.Capacity))
			m.AddConstraintLE("gender_f:"+c.ID, fCoeffs, bound)
		}
	}
}

func addCategoricalConstraint(m *Model, xVar map[string]map[string]int, params BuildParams, cat Categorical, index int) {
	label := "attr" + strconv.Itoa(index)
	switch cat.Mode {
	case ModeConcentrate:
		// Bound by the largest class capacity, not "the first class" the
		// source's unordered-map iteration happened to pick (spec.md §9).
		maxCap := 0
		for _, c := range params.Classes {
			if c.Capacity > maxCap {
				maxCap = c.Capacity
			}
		}
		coeffs := make(map[int]float64)
		for _, s := range params.Students {
			if !cat.Carries(s.ID) {
				continue
			}
			for _, c := range params.Classes {
				coeffs[xVar[s.ID][c.ID]] = 1
			}
		}
		if len(coeffs) > 0 {
			m.AddConstraintLE("concentrate:"+label, coeffs, float64(maxCap))
		}

	case ModeSpread:
		numClasses := len(params.Classes)
		if numClasses == 0 {
			return
		}
		for _, c := range params.Classes {
			coeffs := make(map[int]float64)
			for _, s := range params.Students {
				if cat.Carries(s.ID) {
					coeffs[xVar[s.ID][c.ID]] = 1
				}
			}
			if len(coeffs) == 0 {
				continue
			}
			bound := math.Ceil(float64(c.Capacity) / float64(numClasses))
			m.AddConstraintLE("spread:"+label+":"+c.ID, coeffs, bound)
		}
	}
}

// ClusterPairs restricts P to unordered within-cluster pairs (s1 < s2),
// in sorted order for deterministic variable creation (spec.md §4.6
// "Preprocessed" formulation).
func ClusterPairs(students []StudentInput, clusters cluster.Clusters) [][2]string {
	ids := make([]string, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	sort.Strings(ids)

	var pairs [][2]string
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if clusters.SameCluster(ids[i], ids[j]) {
				pairs = append(pairs, [2]string{ids[i], ids[j]})
			}
		}
	}
	return pairs
}

// AllPairs returns every unordered (s1 < s2) pair, sorted, i.e. the
// "Full" formulation of spec.md §4.6.
func AllPairs(students []StudentInput) [][2]string {
	ids := make([]string, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	sort.Strings(ids)

	var pairs [][2]string
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pairs = append(pairs, [2]string{ids[i], ids[j]})
		}
	}
	return pairs
}
