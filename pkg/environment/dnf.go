package environment

import "github.com/shadow53/hoard-go/pkg/types"

// satisfiesDNF evaluates an outer-OR-of-inner-AND formula: true if any
// inner group has every clause satisfied by pred. An empty outer list
// (the factor was never declared) is trivially true.
func satisfiesDNF[T any](dnf types.DNF[T], pred func(T) bool) bool {
	if len(dnf) == 0 {
		return true
	}
	for _, group := range dnf {
		if allSatisfy(group, pred) {
			return true
		}
	}
	return false
}

func allSatisfy[T any](group []T, pred func(T) bool) bool {
	for _, clause := range group {
		if !pred(clause) {
			return false
		}
	}
	return true
}
