// Package condition implements the resolver that picks the one
// filesystem path a pile resolves to for the active environment set.
package condition

import (
	"sort"

	"github.com/shadow53/hoard-go/pkg/environment"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/types"
)

// candidate pairs a parsed condition with its raw path template.
type candidate struct {
	condition types.ConditionString
	rawPath   string
}

// Resolve selects the single winning path for a pile given the active
// environment set and exclusivity list, expanding ${NAME} references in
// the winning path via expand. It returns ("", false, nil) if no
// condition matched at any length (the pile is skipped, not an error).
func Resolve(conditions map[string]string, active types.EnvironmentSet, exclusivity types.ExclusivityList, expand func(string) (string, bool)) (string, bool, error) {
	candidates := make([]candidate, 0, len(conditions))
	for raw, path := range conditions {
		c := types.ParseCondition(raw)
		if c.Matches(active) {
			candidates = append(candidates, candidate{condition: c, rawPath: path})
		}
	}
	if len(candidates) == 0 {
		return "", false, nil
	}

	buckets := partitionByLengthDescending(candidates)
	for _, bucket := range buckets {
		survivors := applyExclusivity(bucket, exclusivity)
		switch len(survivors) {
		case 0:
			continue
		case 1:
			expanded, ok := expand(survivors[0].rawPath)
			if !ok {
				return "", false, herr.New(herr.ErrEnvVarMissing, "winning condition's path references an unresolvable variable").
					WithDetail("condition", survivors[0].condition.String())
			}
			return expanded, true, nil
		default:
			return "", false, ambiguityError(survivors)
		}
	}
	return "", false, nil
}

func partitionByLengthDescending(candidates []candidate) [][]candidate {
	byLen := make(map[int][]candidate)
	maxLen := 0
	for _, c := range candidates {
		l := c.condition.Len()
		byLen[l] = append(byLen[l], c)
		if l > maxLen {
			maxLen = l
		}
	}
	buckets := make([][]candidate, 0, maxLen+1)
	for l := maxLen; l >= 0; l-- {
		if bucket, ok := byLen[l]; ok {
			buckets = append(buckets, bucket)
		}
	}
	return buckets
}

// applyExclusivity keeps, for each exclusivity group, only the
// candidates that mention the earliest group member present in this
// bucket; candidates untouched by any group pass through unchanged.
func applyExclusivity(bucket []candidate, exclusivity types.ExclusivityList) []candidate {
	survivors := bucket
	for _, group := range exclusivity {
		earliest := earliestPresent(survivors, group)
		if earliest == "" {
			continue
		}
		filtered := make([]candidate, 0, len(survivors))
		for _, c := range survivors {
			if !mentionsAnyOf(c.condition, group) || c.condition.Contains(earliest) {
				filtered = append(filtered, c)
			}
		}
		survivors = filtered
	}
	return survivors
}

func earliestPresent(candidates []candidate, group types.ExclusivityGroup) string {
	for _, name := range group {
		for _, c := range candidates {
			if c.condition.Contains(name) {
				return name
			}
		}
	}
	return ""
}

func mentionsAnyOf(c types.ConditionString, group types.ExclusivityGroup) bool {
	for _, name := range group {
		if c.Contains(name) {
			return true
		}
	}
	return false
}

func ambiguityError(survivors []candidate) error {
	names := make([]string, 0, len(survivors))
	for _, c := range survivors {
		names = append(names, c.condition.String())
	}
	sort.Strings(names)
	return herr.Newf(herr.ErrAmbiguousCondition, "multiple equally-precedent conditions matched: %v", names).
		WithDetail("candidates", names)
}

// Expander adapts environment.Expand into the signature Resolve expects.
func Expander(lookup func(string) (string, bool)) func(string) (string, bool) {
	return func(s string) (string, bool) {
		expanded, err := environment.Expand(s, lookup)
		if err != nil {
			return "", false
		}
		return expanded, true
	}
}
