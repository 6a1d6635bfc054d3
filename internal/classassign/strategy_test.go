package classassign

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReciprocalDensityFullyMutual(t *testing.T) {
	students := map[string]Student{
		"a": {ID: "a", Preferences: []string{"b"}},
		"b": {ID: "b", Preferences: []string{"a"}},
	}
	require.Equal(t, 1.0, ReciprocalDensity(students))
}

func TestReciprocalDensityOneSided(t *testing.T) {
	students := map[string]Student{
		"a": {ID: "a", Preferences: []string{"b"}},
		"b": {ID: "b", Preferences: nil},
	}
	require.Equal(t, 0.0, ReciprocalDensity(students))
}

func TestReciprocalDensityIgnoresUnreachablePreference(t *testing.T) {
	students := map[string]Student{
		"a": {ID: "a", Preferences: []string{"ghost"}},
	}
	require.Equal(t, 0.0, ReciprocalDensity(students))
}

func TestReciprocalDensityNoPreferencesIsZero(t *testing.T) {
	students := map[string]Student{"a": {ID: "a"}, "b": {ID: "b"}}
	require.Equal(t, 0.0, ReciprocalDensity(students))
}

func TestSelectStrategyDefaultThreshold(t *testing.T) {
	mutual := map[string]Student{
		"a": {ID: "a", Preferences: []string{"b"}},
		"b": {ID: "b", Preferences: []string{"a"}},
	}
	require.Equal(t, Clustered, SelectStrategy(mutual, 0))

	oneSided := map[string]Student{
		"a": {ID: "a", Preferences: []string{"b"}},
		"b": {ID: "b"},
	}
	require.Equal(t, Random, SelectStrategy(oneSided, 0))
}

func TestSelectStrategyCustomThreshold(t *testing.T) {
	students := map[string]Student{
		"a": {ID: "a", Preferences: []string{"b"}},
		"b": {ID: "b"},
		"c": {ID: "c", Preferences: []string{"d"}},
		"d": {ID: "d", Preferences: []string{"c"}},
	}
	// 1 of 2 unordered pairs is reciprocated: density = 0.5.
	require.Equal(t, Random, SelectStrategy(students, 0.6))
	require.Equal(t, Clustered, SelectStrategy(students, 0.5))
}
