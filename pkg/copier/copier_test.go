package copier

import (
	"context"
	"crypto/sha256"
	"io"
	"io/fs"
	"testing"

	"github.com/shadow53/hoard-go/pkg/filesystem"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashString(s string) types.Checksum {
	sum := sha256.Sum256([]byte(s))
	return types.Checksum{Algorithm: types.HashSHA256, Digest: sum[:]}
}

func writeFile(t *testing.T, fsys hoardfs.FS, path, content string) {
	t.Helper()
	w, err := fsys.Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func readFile(t *testing.T, fsys hoardfs.FS, path string) string {
	t.Helper()
	r, err := fsys.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestCopyBackupForcesOwnerOnlyMode(t *testing.T) {
	fsys := filesystem.NewMemMap()
	writeFile(t, fsys, "/src/.vimrc", "set nocompatible")

	items := []types.HoardItem{{RelPath: ".vimrc", Kind: types.ItemFile}}
	files, err := Copy(context.Background(), fsys, "/src", "/dest", items, Options{
		Direction:         types.DirectionBackup,
		FilePermissions:   0o644,
		FolderPermissions: 0o755,
	})
	require.NoError(t, err)

	assert.Equal(t, "set nocompatible", readFile(t, fsys, "/dest/.vimrc"))
	require.Contains(t, files, ".vimrc")
	assert.Equal(t, types.ActionCreate, files[".vimrc"].Action)
	assert.Equal(t, types.HashSHA256, files[".vimrc"].NewChecksum.Algorithm)

	info, err := fsys.Stat("/dest/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, backupFileMode, info.Mode().Perm())
}

func TestCopyRestoreUsesConfiguredPermissions(t *testing.T) {
	fsys := filesystem.NewMemMap()
	writeFile(t, fsys, "/hoard/.vimrc", "set nocompatible")

	items := []types.HoardItem{{RelPath: ".vimrc", Kind: types.ItemFile}}
	_, err := Copy(context.Background(), fsys, "/hoard", "/home", items, Options{
		Direction:       types.DirectionRestore,
		FilePermissions: 0o640,
	})
	require.NoError(t, err)

	info, err := fsys.Stat("/home/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o640), info.Mode().Perm())
}

func TestCopyClassifiesActionsAgainstPriorChecksums(t *testing.T) {
	fsys := filesystem.NewMemMap()
	writeFile(t, fsys, "/src/a.txt", "hello")
	writeFile(t, fsys, "/src/b.txt", "changed")

	items := []types.HoardItem{
		{RelPath: "a.txt", Kind: types.ItemFile},
		{RelPath: "b.txt", Kind: types.ItemFile},
	}

	helloSum := hashString("hello")
	oldSum := hashString("old content")

	files, err := Copy(context.Background(), fsys, "/src", "/dest", items, Options{
		Direction:      types.DirectionBackup,
		PriorChecksums: map[string]types.Checksum{"a.txt": helloSum, "b.txt": oldSum, "c.txt": oldSum},
	})
	require.NoError(t, err)

	assert.Equal(t, types.ActionUnchanged, files["a.txt"].Action)
	assert.Equal(t, types.ActionModify, files["b.txt"].Action)
	require.Contains(t, files, "c.txt")
	assert.Equal(t, types.ActionDelete, files["c.txt"].Action)
}

func TestCopyLeavesUnrelatedDestinationFilesAlone(t *testing.T) {
	fsys := filesystem.NewMemMap()
	writeFile(t, fsys, "/src/a.txt", "hello")
	writeFile(t, fsys, "/dest/untouched.txt", "do not remove me")

	items := []types.HoardItem{{RelPath: "a.txt", Kind: types.ItemFile}}
	_, err := Copy(context.Background(), fsys, "/src", "/dest", items, Options{Direction: types.DirectionBackup})
	require.NoError(t, err)

	assert.Equal(t, "do not remove me", readFile(t, fsys, "/dest/untouched.txt"))
}

func TestCopyNoTempFileLeftBehindOnSuccess(t *testing.T) {
	fsys := filesystem.NewMemMap()
	writeFile(t, fsys, "/src/a.txt", "hello")

	items := []types.HoardItem{{RelPath: "a.txt", Kind: types.ItemFile}}
	_, err := Copy(context.Background(), fsys, "/src", "/dest", items, Options{Direction: types.DirectionBackup})
	require.NoError(t, err)

	_, err = fsys.Stat("/dest/a.txt.tmp")
	assert.Error(t, err)
}
