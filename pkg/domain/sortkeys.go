package domain

import (
	"cmp"
	"sort"
)

// IndexOf returns the position of target in items, or -1 if absent. Used
// throughout the scheduling core to turn a caller-supplied slot order into
// a tie-break key (spec.md §4.2, §4.4, §5).
func IndexOf[T comparable](items []T, target T) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}

// SortedKeys returns the keys of m in ascending order. Map iteration order
// is unspecified in Go, so any place that must produce a deterministic
// output from a map needs this first (spec.md §5).
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
