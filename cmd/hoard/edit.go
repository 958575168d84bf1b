package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/paths"
	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: msgEditShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New(configOverrideDir(configFile), hoardsRoot)
			if err != nil {
				return err
			}
			configPath, _ := p.ConfigFilePath()
			return runEditor(configPath)
		},
	}
}

// runEditor opens path in $EDITOR, or the platform's default handler for
// the file if $EDITOR is unset, and surfaces a non-zero exit as
// herr.ErrEditorExit.
func runEditor(path string) error {
	editor, args := editorCommand(path)
	cmd := exec.Command(editor, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if asExitError(err, &exitErr) {
			return herr.Wrapf(err, herr.ErrEditorExit, "editor exited with status %d", exitErr.ExitCode())
		}
		return herr.Wrapf(err, herr.ErrEditorExit, "failed to start editor for %s", path)
	}
	return nil
}

func asExitError(err error, target **exec.ExitError) bool {
	if ee, ok := err.(*exec.ExitError); ok {
		*target = ee
		return true
	}
	return false
}

// editorCommand picks $EDITOR if set, else the OS default handler for
// the file's extension.
func editorCommand(path string) (string, []string) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, []string{path}
	}

	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", filepath.Clean(path)}
	default:
		return "xdg-open", []string{path}
	}
}
