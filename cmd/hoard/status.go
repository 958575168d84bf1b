package main

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/shadow53/hoard-go/pkg/checker"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [names...]",
		Short: msgStatusShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configFile, hoardsRoot)
			if err != nil {
				return err
			}

			statuses, err := a.orch.Status(context.Background(), args)
			if err != nil {
				return err
			}

			table := pterm.TableData{{"HOARD", "STATUS"}}
			for _, st := range statuses {
				classification := string(st.Classification)
				if st.Skipped {
					classification = "skipped (no matching environment)"
				}
				table = append(table, []string{st.HoardName, styleClassification(st.Classification, st.Skipped, classification)})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
		},
	}
}

func styleClassification(c checker.Classification, skipped bool, text string) string {
	if skipped {
		return pterm.FgGray.Sprint(text)
	}
	switch c {
	case checker.StatusClean:
		return pterm.FgGreen.Sprint(text)
	case checker.StatusUnexpectedChanges:
		return pterm.FgRed.Sprint(text)
	default:
		return pterm.FgYellow.Sprint(text)
	}
}
