package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/shadow53/hoard-go/pkg/herr"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("error: %v", err)))
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a HoardError's code to the process exit code it
// should produce. Errors that never crossed a herr boundary (cobra
// usage errors, mainly) fall back to 1.
func exitCodeFor(err error) int {
	switch herr.Code(err) {
	case herr.ErrConfigParse, herr.ErrConfigSemantic, herr.ErrEnvVarMissing, herr.ErrAmbiguousCondition:
		return 1
	case herr.ErrLastPathsMismatch, herr.ErrRemoteOperation, herr.ErrUnexpectedChange, herr.ErrLockHeld:
		return 2
	case herr.ErrIoFailure:
		return 3
	case herr.ErrEditorExit:
		return 4
	default:
		return 1
	}
}
