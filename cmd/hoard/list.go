package main

import (
	"sort"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: msgListShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configFile, hoardsRoot)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(a.config.Hoards))
			for name := range a.config.Hoards {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				hoard := a.config.Hoards[name]
				printf("%s\n", name)

				pileNames := make([]string, 0, len(hoard.Piles))
				for pileName := range hoard.Piles {
					pileNames = append(pileNames, pileName)
				}
				sort.Strings(pileNames)
				for _, pileName := range pileNames {
					label := pileName
					if label == "" {
						label = "(anonymous)"
					}
					printf("  %s\n", label)
				}
			}
			return nil
		},
	}
}
