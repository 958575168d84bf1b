package main

import (
	"github.com/shadow53/hoard-go/pkg/oplog"
	"github.com/spf13/cobra"
)

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: msgCleanupShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configFile, hoardsRoot)
			if err != nil {
				return err
			}
			return a.withLock(func() error {
				removed, err := oplog.Cleanup(a.fs, a.paths)
				if err != nil {
					return err
				}
				printf("removed %d superseded operation log(s)\n", removed)
				return nil
			})
		},
	}
}

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: msgUpgradeShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configFile, hoardsRoot)
			if err != nil {
				return err
			}
			return a.withLock(func() error {
				upgraded, err := oplog.Upgrade(a.fs, a.paths)
				if err != nil {
					return err
				}
				printf("upgraded %d operation log(s) to the current schema\n", upgraded)
				return nil
			})
		},
	}
}
