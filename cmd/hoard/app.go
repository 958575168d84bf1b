package main

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shadow53/hoard-go/pkg/config"
	"github.com/shadow53/hoard-go/pkg/environment"
	"github.com/shadow53/hoard-go/pkg/filesystem"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/hostid"
	"github.com/shadow53/hoard-go/pkg/lock"
	"github.com/shadow53/hoard-go/pkg/orchestrator"
	"github.com/shadow53/hoard-go/pkg/paths"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/spf13/afero"
)

// app bundles everything most subcommands need: the real filesystem, the
// resolved paths, the loaded config, this host's identity, and an
// orchestrator wired from all of it.
type app struct {
	fs     hoardfs.FS
	paths  *paths.Paths
	config *types.Config
	hostID uuid.UUID
	host   environment.Host
	orch   *orchestrator.Orchestrator
}

// newApp resolves paths, loads the config file, and assembles an
// Orchestrator. Every subcommand except init and edit's first run needs
// a config file already in place.
func newApp(configFileOverride, hoardsRootOverride string) (*app, error) {
	p, err := paths.New(configOverrideDir(configFileOverride), hoardsRootOverride)
	if err != nil {
		return nil, err
	}
	if err := p.EnsureDirs(); err != nil {
		return nil, err
	}

	fsys := filesystem.NewAfero(afero.NewOsFs())

	configPath := configFileOverride
	if configPath == "" {
		found, ok := p.ConfigFilePath()
		if !ok {
			return nil, herr.Newf(herr.ErrConfigParse, "no config file found at %s; run 'hoard init' first", found)
		}
		configPath = found
	}

	// Defaults are resolved from bare host env only (a default can't
	// reference itself); once resolved, rebuild Host so its Expand
	// closure sees them too, for path_exists expansion during env
	// evaluation.
	bareHost := environment.LiveHost(nil)
	cfg, err := config.Load(configPath, environment.Lookup(bareHost, nil))
	if err != nil {
		return nil, err
	}
	host := environment.LiveHost(cfg.Defaults)

	hostID, err := hostid.Load(fsys, p.UUIDFilePath())
	if err != nil {
		return nil, err
	}

	return &app{
		fs:     fsys,
		paths:  p,
		config: cfg,
		hostID: hostID,
		host:   host,
		orch:   orchestrator.New(fsys, p, cfg, hostID, host),
	}, nil
}

// configOverrideDir derives the config directory paths.New expects from
// a --config-file override that names a file, not a directory. An empty
// override leaves directory resolution to platform defaults.
func configOverrideDir(configFileOverride string) string {
	if configFileOverride == "" {
		return ""
	}
	return filepath.Dir(configFileOverride)
}

// withLock runs fn while holding the process-level advisory lock, the
// same way backup/restore/cleanup/upgrade all need to: only one
// invocation may mutate hoard state at a time.
func (a *app) withLock(fn func() error) error {
	l := lock.New(a.paths.LockFilePath())
	if err := l.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			log.Warn().Err(err).Msg("failed to release process lock")
		}
	}()
	return fn()
}
