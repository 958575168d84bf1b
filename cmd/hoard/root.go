package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/shadow53/hoard-go/internal/version"
	"github.com/shadow53/hoard-go/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	configFile string
	hoardsRoot string
	forceFlag  bool
)

// newRootCmd assembles the hoard command tree. Global flags must precede
// the subcommand; cobra's persistent flags already enforce that
// ordering expectation at the parse level.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "hoard",
		Short:   msgRootShort,
		Long:    msgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := os.Getenv(logging.EnvLogLevel)
			logging.Setup(level)
			log.Debug().Str("command", cmd.Name()).Msg("command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	root.PersistentFlags().StringVar(&configFile, "config-file", "", msgFlagConfigFile)
	root.PersistentFlags().StringVar(&hoardsRoot, "hoards-root", "", msgFlagHoardsRoot)
	root.PersistentFlags().BoolVar(&forceFlag, "force", false, msgFlagForce)

	root.AddCommand(
		newBackupCmd(),
		newRestoreCmd(),
		newValidateCmd(),
		newStatusCmd(),
		newDiffCmd(),
		newListCmd(),
		newEditCmd(),
		newInitCmd(),
		newCleanupCmd(),
		newUpgradeCmd(),
	)

	return root
}

func printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}
