package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIStatusReportsCleanAfterBackup(t *testing.T) {
	tmp := t.TempDir()
	filesDir := filepath.Join(tmp, "files")
	require.NoError(t, os.MkdirAll(filesDir, 0o755))

	configBody := `
[environments.always]

[hoards.anon]
"always" = "` + filepath.Join(filesDir, "anon") + `"
`
	setupEnv(t, configBody)
	require.NoError(t, os.WriteFile(filepath.Join(filesDir, "anon"), []byte("hello"), 0o644))

	require.NoError(t, runCmd(t, "backup"))
	require.NoError(t, runCmd(t, "status"))
}

func TestCLIDiffReportsModifiedFile(t *testing.T) {
	tmp := t.TempDir()
	filesDir := filepath.Join(tmp, "files")
	require.NoError(t, os.MkdirAll(filesDir, 0o755))
	anonPath := filepath.Join(filesDir, "anon")

	configBody := `
[environments.always]

[hoards.anon]
"always" = "` + anonPath + `"
`
	setupEnv(t, configBody)
	require.NoError(t, os.WriteFile(anonPath, []byte("hello"), 0o644))

	require.NoError(t, runCmd(t, "backup"))
	require.NoError(t, os.WriteFile(anonPath, []byte("goodbye"), 0o644))

	require.NoError(t, runCmd(t, "diff", "anon"))
	require.NoError(t, runCmd(t, "diff", "anon", "-v"))
}

func TestCLIInitWritesConfigAndRejectsSecondRun(t *testing.T) {
	tmp := t.TempDir()
	configDir := filepath.Join(tmp, "config")
	dataDir := filepath.Join(tmp, "data")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	t.Setenv("HOARD_CONFIG_DIR", configDir)
	t.Setenv("HOARD_DATA_DIR", dataDir)

	require.NoError(t, runCmd(t, "init"))
	_, err := os.Stat(filepath.Join(configDir, "config.toml"))
	require.NoError(t, err)

	require.Error(t, runCmd(t, "init"))
}

func TestCLICleanupAndUpgradeRunWithEmptyHistory(t *testing.T) {
	setupEnv(t, "[environments.always]\n")

	require.NoError(t, runCmd(t, "cleanup"))
	require.NoError(t, runCmd(t, "upgrade"))
}
