package classassign

// DefaultClusterThreshold is the reciprocal-preference-density cutoff
// spec.md §4.8 names as the configurable default.
const DefaultClusterThreshold = 0.75

// Strategy is the dataset classification the B4 selector dispatches on.
type Strategy int

const (
	// Clustered datasets go through preprocessing (B1) plus the
	// preprocessed ILP formulation (B2), with a time limit and fallback
	// to Full on infeasibility or a non-capacity-respecting incumbent.
	Clustered Strategy = iota
	// Random datasets skip clustering and go straight to the full
	// formulation with no time limit.
	Random
)

// ReciprocalDensity computes the fraction of unordered preference pairs
// appearing anywhere in the dataset that are mutually reciprocated
// (spec.md §4.8). A pair (a, b) "appears" if a lists b or b lists a;
// it is reciprocated only if both list each other. Preferences naming
// an unknown student don't create a pair (spec.md §7).
func ReciprocalDensity(students map[string]Student) float64 {
	type pairKey struct{ a, b string }

	seen := make(map[pairKey]struct{})
	for id, s := range students {
		for _, other := range s.Preferences {
			if _, known := students[other]; !known {
				continue
			}
			a, b := id, other
			if b < a {
				a, b = b, a
			}
			seen[pairKey{a, b}] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return 0
	}

	reciprocated := 0
	for key := range seen {
		if listsEachOther(students, key.a, key.b) {
			reciprocated++
		}
	}

	return float64(reciprocated) / float64(len(seen))
}

func listsEachOther(students map[string]Student, a, b string) bool {
	return prefersStudent(students[a].Preferences, b) && prefersStudent(students[b].Preferences, a)
}

func prefersStudent(prefs []string, target string) bool {
	for _, p := range prefs {
		if p == target {
			return true
		}
	}
	return false
}

// SelectStrategy classifies the dataset per spec.md §4.8: Clustered if
// the reciprocal-preference density meets or exceeds threshold (using
// DefaultClusterThreshold when threshold <= 0), Random otherwise.
func SelectStrategy(students map[string]Student, threshold float64) Strategy {
	if threshold <= 0 {
		threshold = DefaultClusterThreshold
	}
	if ReciprocalDensity(students) >= threshold {
		return Clustered
	}
	return Random
}
