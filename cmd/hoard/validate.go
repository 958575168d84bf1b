package main

import (
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: msgValidateShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			// newApp loads and builds the config the same way every other
			// command does; config/environment/condition errors surface
			// from Build during that load, which is all validate needs to
			// check.
			a, err := newApp(configFile, hoardsRoot)
			if err != nil {
				return err
			}
			printf("config is valid: %d hoard(s) configured\n", len(a.config.Hoards))
			return nil
		},
	}
}
