package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemMapBasicOperations(t *testing.T) {
	fsys := NewMemMap()
	require.NotNil(t, fsys)

	content := []byte("piles and hoards")
	w, err := fsys.Create("/pile/a.txt")
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := fsys.Open("/pile/a.txt")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, content, got)

	require.NoError(t, fsys.MkdirAll("/pile/sub", 0o755))
	entries, err := fsys.ReadDir("/pile")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, fsys.Rename("/pile/a.txt", "/pile/b.txt"))
	_, err = fsys.Stat("/pile/a.txt")
	assert.Error(t, err)
	_, err = fsys.Stat("/pile/b.txt")
	assert.NoError(t, err)

	require.NoError(t, fsys.RemoveAll("/pile"))
	_, err = fsys.Stat("/pile")
	assert.Error(t, err)
}

func TestMemMapSymlinkSimulation(t *testing.T) {
	fsys := NewMemMap()

	w, err := fsys.Create("/a/target.txt")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.NoError(t, fsys.Symlink("/a/target.txt", "/a/link.txt"))

	target, err := fsys.Readlink("/a/link.txt")
	require.NoError(t, err)
	assert.Equal(t, "/a/target.txt", target)
}

func TestAferoWrapsOS(t *testing.T) {
	tmpDir := t.TempDir()
	fsys := NewAfero(afero.NewOsFs())
	testFile := filepath.Join(tmpDir, "file.txt")

	w, err := fsys.Create(testFile)
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.EqualValues(t, 1, info.Size())

	require.NoError(t, os.Remove(testFile))
}
