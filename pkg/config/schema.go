// Package config loads hoard's on-disk config file (TOML/YAML/JSON) via
// koanf and assembles it into the domain model in pkg/types.
package config

// rawConfig is the on-disk schema, unmarshaled strictly: unknown keys at
// any level are a parse error.
type rawConfig struct {
	Defaults     map[string]string         `koanf:"defaults"`
	Exclusivity  [][]string                `koanf:"exclusivity"`
	Environments map[string]rawEnvironment `koanf:"environments"`
	Hoards       map[string]rawHoard       `koanf:"hoards"`

	Ignore            []string       `koanf:"ignore"`
	FilePermissions   *rawPermission `koanf:"file_permissions"`
	FolderPermissions *rawPermission `koanf:"folder_permissions"`
	HashAlgorithm     string         `koanf:"hash_algorithm"`
	Encryption        *rawEncryption `koanf:"encryption"`
}

type rawEnvironment struct {
	OS         string           `koanf:"os"`
	Hostname   string           `koanf:"hostname"`
	Env        [][]rawEnvClause `koanf:"env"`
	ExeExists  [][]string       `koanf:"exe_exists"`
	PathExists [][]string       `koanf:"path_exists"`
}

type rawEnvClause struct {
	Name     string  `koanf:"name"`
	Expected *string `koanf:"expected"`
}

// rawHoard is either a single anonymous pile (Conditions set directly,
// Piles empty) or a named set of piles.
type rawHoard struct {
	Conditions map[string]string  `koanf:"conditions"`
	Piles      map[string]rawPile `koanf:"piles"`

	Ignore            []string       `koanf:"ignore"`
	FilePermissions   *rawPermission `koanf:"file_permissions"`
	FolderPermissions *rawPermission `koanf:"folder_permissions"`
	HashAlgorithm     string         `koanf:"hash_algorithm"`
	Encryption        *rawEncryption `koanf:"encryption"`
}

type rawPile struct {
	Conditions map[string]string `koanf:"conditions"`

	Ignore            []string       `koanf:"ignore"`
	FilePermissions   *rawPermission `koanf:"file_permissions"`
	FolderPermissions *rawPermission `koanf:"folder_permissions"`
	HashAlgorithm     string         `koanf:"hash_algorithm"`
	Encryption        *rawEncryption `koanf:"encryption"`
}

// rawPermission mirrors either an octal Mode string ("0644") or the
// individual POSIX flags; buildPermissionSpec carries them into a
// types.PermissionSpec, whose ToMode lowers whichever was set.
type rawPermission struct {
	Mode *string `koanf:"mode"`

	IsReadable       *bool `koanf:"is_readable"`
	IsWritable       *bool `koanf:"is_writable"`
	IsExecutable     *bool `koanf:"is_executable"`
	OthersCanRead    *bool `koanf:"others_can_read"`
	OthersCanWrite   *bool `koanf:"others_can_write"`
	OthersCanExecute *bool `koanf:"others_can_execute"`
}

type rawEncryption struct {
	Enabled    bool   `koanf:"enabled"`
	Passphrase string `koanf:"passphrase"`
}
