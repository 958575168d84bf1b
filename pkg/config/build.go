package config

import (
	"io/fs"
	"strconv"

	"github.com/shadow53/hoard-go/pkg/condition"
	"github.com/shadow53/hoard-go/pkg/environment"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/types"
)

// Build assembles the domain Config model from the raw parsed schema,
// resolving env-var defaults (detecting cycles) and validating the
// exclusivity list along the way.
func Build(raw *rawConfig, hostEnv func(string) (string, bool)) (*types.Config, error) {
	defaults, err := environment.ResolveDefaults(raw.Defaults, hostEnv)
	if err != nil {
		return nil, err
	}

	exclusivity := buildExclusivity(raw.Exclusivity)
	if err := condition.ValidateExclusivity(exclusivity); err != nil {
		return nil, err
	}

	environments := make(map[string]*types.Environment, len(raw.Environments))
	for name, re := range raw.Environments {
		environments[name] = buildEnvironment(name, re)
	}

	globalConfig, err := buildPileConfig(raw.Ignore, raw.FilePermissions, raw.FolderPermissions, raw.HashAlgorithm, raw.Encryption)
	if err != nil {
		return nil, err
	}

	hoards := make(map[string]*types.Hoard, len(raw.Hoards))
	for name, rh := range raw.Hoards {
		hoard, err := buildHoard(name, rh)
		if err != nil {
			return nil, err
		}
		hoards[name] = hoard
	}

	return &types.Config{
		Defaults:     defaults,
		Exclusivity:  exclusivity,
		Environments: environments,
		Hoards:       hoards,
		GlobalConfig: globalConfig,
	}, nil
}

func buildExclusivity(raw [][]string) types.ExclusivityList {
	list := make(types.ExclusivityList, len(raw))
	for i, group := range raw {
		list[i] = types.ExclusivityGroup(group)
	}
	return list
}

func buildEnvironment(name string, re rawEnvironment) *types.Environment {
	env := &types.Environment{
		Name:       name,
		OS:         re.OS,
		Hostname:   re.Hostname,
		ExeExists:  types.DNF[string](re.ExeExists),
		PathExists: types.DNF[string](re.PathExists),
	}
	env.Env = make(types.DNF[types.EnvClause], len(re.Env))
	for i, group := range re.Env {
		clauses := make([]types.EnvClause, len(group))
		for j, c := range group {
			clauses[j] = types.EnvClause{Name: c.Name, Expected: c.Expected}
		}
		env.Env[i] = clauses
	}
	return env
}

func buildHoard(name string, rh rawHoard) (*types.Hoard, error) {
	config, err := buildPileConfig(rh.Ignore, rh.FilePermissions, rh.FolderPermissions, rh.HashAlgorithm, rh.Encryption)
	if err != nil {
		return nil, err
	}

	hoard := &types.Hoard{Name: name, Config: config, Piles: map[string]*types.Pile{}}

	if len(rh.Piles) == 0 {
		hoard.Piles[""] = &types.Pile{Conditions: rh.Conditions}
		return hoard, nil
	}

	for pileName, rp := range rh.Piles {
		pileConfig, err := buildPileConfig(rp.Ignore, rp.FilePermissions, rp.FolderPermissions, rp.HashAlgorithm, rp.Encryption)
		if err != nil {
			return nil, err
		}
		hoard.Piles[pileName] = &types.Pile{Conditions: rp.Conditions, Config: pileConfig}
	}
	return hoard, nil
}

func buildPileConfig(ignore []string, filePerm, folderPerm *rawPermission, hashAlgorithm string, enc *rawEncryption) (types.PileConfig, error) {
	fileSpec, err := buildPermissionSpec(filePerm)
	if err != nil {
		return types.PileConfig{}, err
	}
	folderSpec, err := buildPermissionSpec(folderPerm)
	if err != nil {
		return types.PileConfig{}, err
	}

	algo, err := buildHashAlgorithm(hashAlgorithm)
	if err != nil {
		return types.PileConfig{}, err
	}

	return types.PileConfig{
		Ignore:            ignore,
		FilePermissions:   fileSpec,
		FolderPermissions: folderSpec,
		HashAlgorithm:     algo,
		Encryption:        buildEncryption(enc),
	}, nil
}

func buildPermissionSpec(raw *rawPermission) (*types.PermissionSpec, error) {
	if raw == nil {
		return nil, nil
	}
	spec := &types.PermissionSpec{
		IsReadable:       raw.IsReadable,
		IsWritable:       raw.IsWritable,
		IsExecutable:     raw.IsExecutable,
		OthersCanRead:    raw.OthersCanRead,
		OthersCanWrite:   raw.OthersCanWrite,
		OthersCanExecute: raw.OthersCanExecute,
	}
	if raw.Mode != nil {
		parsed, err := strconv.ParseUint(*raw.Mode, 8, 32)
		if err != nil {
			return nil, herr.Wrapf(err, herr.ErrConfigParse, "invalid octal permission mode %q", *raw.Mode)
		}
		mode := fs.FileMode(parsed)
		spec.Mode = &mode
	}
	return spec, nil
}

func buildHashAlgorithm(raw string) (types.HashAlgorithm, error) {
	switch raw {
	case "":
		return "", nil
	case string(types.HashSHA256):
		return types.HashSHA256, nil
	case string(types.HashMD5):
		return types.HashMD5, nil
	default:
		return "", herr.Newf(herr.ErrConfigParse, "unknown hash_algorithm %q", raw)
	}
}

func buildEncryption(raw *rawEncryption) *types.EncryptionSpec {
	if raw == nil {
		return nil
	}
	return &types.EncryptionSpec{Enabled: raw.Enabled, Passphrase: raw.Passphrase}
}
