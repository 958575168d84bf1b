package types

// PileConfig is the layer of settings that can be set at the global,
// hoard, or pile level and merged per §4.3.
type PileConfig struct {
	// Ignore is a set of glob patterns; layering unions these across
	// levels rather than overriding.
	Ignore []string

	FilePermissions   *PermissionSpec
	FolderPermissions *PermissionSpec
	HashAlgorithm     HashAlgorithm
	Encryption        *EncryptionSpec
}

// EncryptionSpec names the encryption applied to a pile's hoarded
// copies. Enabled false means encryption is disabled at this level; a
// nil *EncryptionSpec means this level does not set encryption at all.
type EncryptionSpec struct {
	Enabled    bool
	Passphrase string
}

// MergePileConfig layers "specific" over "general" per §4.3: ignore globs union,
// everything else is most-specific-non-empty-wins.
func MergePileConfig(general, specific PileConfig) PileConfig {
	merged := PileConfig{
		Ignore:            unionIgnore(general.Ignore, specific.Ignore),
		FilePermissions:   MergePermission(general.FilePermissions, specific.FilePermissions),
		FolderPermissions: MergePermission(general.FolderPermissions, specific.FolderPermissions),
		HashAlgorithm:     general.HashAlgorithm,
		Encryption:        general.Encryption,
	}
	if specific.HashAlgorithm != "" {
		merged.HashAlgorithm = specific.HashAlgorithm
	}
	if merged.HashAlgorithm == "" {
		merged.HashAlgorithm = DefaultHashAlgorithm
	}
	if specific.Encryption != nil {
		merged.Encryption = specific.Encryption
	}
	return merged
}

func unionIgnore(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, globs := range [][]string{a, b} {
		for _, g := range globs {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				out = append(out, g)
			}
		}
	}
	return out
}

// Pile maps condition strings to filesystem paths, plus the effective
// config layered down to it. A resolved pile yields at most one chosen
// path per run.
type Pile struct {
	// Conditions maps a raw condition string (e.g. "vim|linux") to the
	// filesystem path used when that condition is the pile's winner.
	Conditions map[string]string
	Config     PileConfig
}

// Hoard is either a single anonymous pile (keyed by the empty string) or
// a named set of piles.
type Hoard struct {
	Name   string
	Piles  map[string]*Pile
	Config PileConfig
}

// IsAnonymous reports whether this hoard is a single unnamed pile.
func (h *Hoard) IsAnonymous() bool {
	_, ok := h.Piles[""]
	return ok && len(h.Piles) == 1
}
