package condition

import (
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/types"
)

// ValidateExclusivity enforces the config-time invariant that an
// environment name appears in at most one exclusivity group.
// Runtime ambiguity among candidates that survive the same group is a
// separate, deferred check (Resolve's ambiguityError).
func ValidateExclusivity(exclusivity types.ExclusivityList) error {
	seen := make(map[string]int)
	for groupIdx, group := range exclusivity {
		for _, name := range group {
			if prior, ok := seen[name]; ok && prior != groupIdx {
				return herr.Newf(herr.ErrConfigSemantic,
					"environment %q appears in more than one exclusivity group", name).
					WithDetail("environment", name)
			}
			seen[name] = groupIdx
		}
	}
	return nil
}
