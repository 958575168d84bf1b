package environment

import "github.com/shadow53/hoard-go/pkg/types"

// Evaluate matches every declared environment against host and returns
// the set of names that matched. An environment matches iff every
// specified factor matches; unspecified factors are trivially true.
func Evaluate(environments map[string]*types.Environment, host Host) types.EnvironmentSet {
	active := make(types.EnvironmentSet, len(environments))
	for name, env := range environments {
		if matches(env, host) {
			active[name] = true
		}
	}
	return active
}

func matches(env *types.Environment, host Host) bool {
	if env.OS != "" && env.OS != host.OS {
		return false
	}
	if env.Hostname != "" && env.Hostname != host.Hostname {
		return false
	}
	if !satisfiesDNF(env.Env, func(c types.EnvClause) bool {
		val, ok := host.Env(c.Name)
		if !ok {
			return false
		}
		if c.Expected == nil {
			return true
		}
		return val == *c.Expected
	}) {
		return false
	}
	if !satisfiesDNF(env.ExeExists, func(name string) bool {
		return host.LookPath(name)
	}) {
		return false
	}
	if !satisfiesDNF(env.PathExists, func(path string) bool {
		expanded, ok := host.Expand(path)
		if !ok {
			return false
		}
		return host.PathExists(expanded)
	}) {
		return false
	}
	return true
}
