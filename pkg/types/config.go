package types

// Config is hoard's top-level, read-only-after-load model: global
// env-var defaults, the exclusivity list, declared environments, hoard
// definitions, and the global pile config they layer under.
type Config struct {
	// Defaults holds global default values for env vars referenced in
	// path expansion, keyed by variable name. Values may themselves
	// contain ${...} references into this same map.
	Defaults map[string]string

	Exclusivity  ExclusivityList
	Environments map[string]*Environment
	Hoards       map[string]*Hoard
	GlobalConfig PileConfig
}

// EffectivePileConfig layers GlobalConfig, the named hoard's config, and
// the pile's own config, in that order.
func (c *Config) EffectivePileConfig(hoardName string, pile *Pile) PileConfig {
	merged := c.GlobalConfig
	if hoard, ok := c.Hoards[hoardName]; ok {
		merged = MergePileConfig(merged, hoard.Config)
	}
	if pile != nil {
		merged = MergePileConfig(merged, pile.Config)
	}
	return merged
}
