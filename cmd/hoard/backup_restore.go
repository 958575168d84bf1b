package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shadow53/hoard-go/pkg/orchestrator"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/spf13/cobra"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [names...]",
		Short: msgBackupShort,
		Long:  msgBackupLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupOrRestore(types.DirectionBackup, args)
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [names...]",
		Short: msgRestoreShort,
		Long:  msgRestoreLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupOrRestore(types.DirectionRestore, args)
		},
	}
}

func runBackupOrRestore(direction types.Direction, names []string) error {
	a, err := newApp(configFile, hoardsRoot)
	if err != nil {
		return err
	}

	return a.withLock(func() error {
		results, err := a.orch.Run(context.Background(), orchestrator.RunOptions{
			Direction:  direction,
			HoardNames: names,
			Force:      forceFlag,
		})
		if err != nil {
			return err
		}
		reportRunResults(direction, results)
		return nil
	})
}

func reportRunResults(direction types.Direction, results []orchestrator.HoardResult) {
	for _, res := range results {
		if res.Skipped {
			log.Warn().Str("hoard", res.HoardName).Msg("skipped, no pile matched the active environment")
			printf("%-20s skipped (no matching environment)\n", res.HoardName)
			continue
		}

		created, modified, deleted, unchanged := 0, 0, 0, 0
		for _, pile := range res.Piles {
			for _, f := range pile.Files {
				switch f.Action {
				case types.ActionCreate:
					created++
				case types.ActionModify:
					modified++
				case types.ActionDelete:
					deleted++
				case types.ActionUnchanged:
					unchanged++
				}
			}
		}
		printf("%-20s %s: %d created, %d modified, %d deleted, %d unchanged\n",
			res.HoardName, direction, created, modified, deleted, unchanged)
	}
}
