package main

import (
	"context"
	"os"
	"sort"

	"github.com/shadow53/hoard-go/pkg/orchestrator"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "diff <name>",
		Short: msgDiffShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configFile, hoardsRoot)
			if err != nil {
				return err
			}

			piles, err := a.orch.Diff(context.Background(), args[0])
			if err != nil {
				return err
			}

			for _, pile := range piles {
				reportPileDiff(pile, verbose)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, msgFlagVerbose)
	return cmd
}

func reportPileDiff(pile orchestrator.PileDiff, verbose bool) {
	sort.Slice(pile.Files, func(i, j int) bool { return pile.Files[i].RelPath < pile.Files[j].RelPath })

	for _, f := range pile.Files {
		if f.Change == types.ActionUnchanged && !verbose {
			continue
		}
		printf("%s: %s\n", f.SystemPath, string(f.Change))
		if verbose && f.Change == types.ActionModify {
			printSizeDelta(f.HoardPath, f.SystemPath)
		}
	}
}

// printSizeDelta reports how many bytes a modified file grew or shrank
// by, hoard copy to system copy. This is a status summary, not a
// file-tree diff UI, so it never reads or prints file contents.
func printSizeDelta(hoardPath, systemPath string) {
	hoardInfo, err := os.Stat(hoardPath)
	if err != nil {
		return
	}
	systemInfo, err := os.Stat(systemPath)
	if err != nil {
		return
	}
	delta := systemInfo.Size() - hoardInfo.Size()
	sign := "+"
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	printf("  %s%d bytes (%d -> %d)\n", sign, delta, hoardInfo.Size(), systemInfo.Size())
}
