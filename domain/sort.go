package domain

import "sort"

// sortDivisions gives a stable, deterministic order to a set of divisions so
// callers never depend on Go's randomized map iteration order. spec.md §5
// requires canonical sort everywhere to eliminate nondeterminism.
func sortDivisions(divs []Division) {
	sort.Slice(divs, func(i, j int) bool { return divs[i] < divs[j] })
}

// SortTeamIDs sorts team ids lexicographically, the tiebreak spec.md §4.6
// specifies for the "both teams at home" home/away case.
func SortTeamIDs(ids []string) {
	sort.Strings(ids)
}
