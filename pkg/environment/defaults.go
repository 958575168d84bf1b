package environment

import (
	"sort"
	"strings"

	"github.com/shadow53/hoard-go/pkg/herr"
)

// ResolveDefaults expands every declared default value (which may itself
// reference ${OTHER} defaults) against hostEnv and the other defaults,
// repeating until no more progress can be made, a fixpoint. Anything
// still unresolved at that point is part of a cycle (or depends on a
// host var that's genuinely unset); that is a fatal ConfigSemantic error
// naming every variable involved.
func ResolveDefaults(defaults map[string]string, hostEnv func(name string) (string, bool)) (map[string]string, error) {
	remaining := make(map[string]string, len(defaults))
	for k, v := range defaults {
		remaining[k] = v
	}
	resolved := make(map[string]string, len(defaults))

	lookup := func(name string) (string, bool) {
		if v, ok := hostEnv(name); ok {
			return v, true
		}
		if v, ok := resolved[name]; ok {
			return v, true
		}
		return "", false
	}

	for len(remaining) > 0 {
		next := make(map[string]string, len(remaining))
		progressed := false
		for name, raw := range remaining {
			expanded, err := Expand(raw, lookup)
			if err != nil {
				next[name] = raw
				continue
			}
			resolved[name] = expanded
			progressed = true
		}
		if !progressed {
			names := make([]string, 0, len(next))
			for name := range next {
				names = append(names, name)
			}
			sort.Strings(names)
			return nil, herr.Newf(herr.ErrConfigSemantic,
				"cannot resolve env-var defaults, likely a dependency cycle: %s", strings.Join(names, ", ")).
				WithDetail("variables", names)
		}
		remaining = next
	}

	return resolved, nil
}
