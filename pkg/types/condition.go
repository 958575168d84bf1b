package types

import (
	"sort"
	"strings"
)

// ConditionString is a set of environment names; a pile resolves to at
// most one filesystem path per run by matching one of these against the
// active EnvironmentSet.
type ConditionString map[string]struct{}

// ParseCondition splits a pipe-delimited condition string ("vim|linux")
// into its constituent environment names.
func ParseCondition(raw string) ConditionString {
	c := make(ConditionString)
	for _, name := range strings.Split(raw, "|") {
		name = strings.TrimSpace(name)
		if name != "" {
			c[name] = struct{}{}
		}
	}
	return c
}

// Len is the condition's cardinality, used to rank candidates by
// specificity: more environment names named means a more specific match.
func (c ConditionString) Len() int { return len(c) }

// Matches reports whether every name in c is present in the active set.
func (c ConditionString) Matches(active EnvironmentSet) bool {
	for name := range c {
		if !active.Contains(name) {
			return false
		}
	}
	return true
}

// Names returns the condition's environment names in sorted order, for
// stable output in ambiguity errors.
func (c ConditionString) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the condition canonically: names sorted, pipe-joined.
func (c ConditionString) String() string {
	return strings.Join(c.Names(), "|")
}

// Contains reports whether name is one of the condition's members.
func (c ConditionString) Contains(name string) bool {
	_, ok := c[name]
	return ok
}
