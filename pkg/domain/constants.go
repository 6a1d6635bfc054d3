// Package domain holds scalar and ordering helpers shared by the
// scheduling and class-assignment cores: nothing here is specific to
// either one.
package domain

import "math"

// Epsilon is the tolerance FloatEquals and FloatGreaterOrEqual apply to
// floating point comparisons. FloorRatio and the class-assignment strategy
// selector do not use it. The flow and ILP cores themselves are
// integer-valued and never need it.
const Epsilon = 1e-9

// FloatEquals reports whether a and b are equal within Epsilon.
func FloatEquals(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// FloatGreaterOrEqual reports whether a >= b within Epsilon.
func FloatGreaterOrEqual(a, b float64) bool {
	return a > b-Epsilon || FloatEquals(a, b)
}

// FloorRatio returns floor(ratio * capacity), the integral rounding rule
// spec.md §9 prescribes for the gender-ratio constraint's right-hand side.
func FloorRatio(ratio float64, capacity int) int64 {
	return int64(math.Floor(ratio * float64(capacity)))
}
