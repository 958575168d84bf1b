package main

import (
	"github.com/shadow53/hoard-go/pkg/filesystem"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hostid"
	"github.com/shadow53/hoard-go/pkg/paths"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const defaultConfigTemplate = `# hoard config. See the README for the full schema.
[environments.always]

[hoards.example]
"always" = "${HOME}/.example"
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: msgInitShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New(configOverrideDir(configFile), hoardsRoot)
			if err != nil {
				return err
			}
			if err := p.EnsureDirs(); err != nil {
				return err
			}

			fsys := filesystem.NewAfero(afero.NewOsFs())

			configPath, exists := p.ConfigFilePath()
			if exists {
				return herr.Newf(herr.ErrInvalidInput, "config file already exists at %s", configPath)
			}

			w, err := fsys.Create(configPath)
			if err != nil {
				return herr.Wrapf(err, herr.ErrIoFailure, "creating config file %s", configPath)
			}
			defer func() { _ = w.Close() }()
			if _, err := w.Write([]byte(defaultConfigTemplate)); err != nil {
				return herr.Wrapf(err, herr.ErrIoFailure, "writing config file %s", configPath)
			}

			hostID, err := hostid.Load(fsys, p.UUIDFilePath())
			if err != nil {
				return err
			}

			printf("wrote default config to %s\n", configPath)
			printf("host id: %s\n", hostID)
			return nil
		},
	}
}
