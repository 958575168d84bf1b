package oplog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shadow53/hoard-go/pkg/filesystem"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpgradeReconstructsActionsAcrossHistory(t *testing.T) {
	fsys := filesystem.NewMemMap()
	p := newTestPaths(t)
	host := uuid.New()
	dir := p.HistoryDir(host.String(), "vimrc")
	require.NoError(t, fsys.MkdirAll(dir, 0o755))

	write := func(ts, body string) {
		w, err := fsys.Create(dir + "/" + ts + ".log")
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	// First operation: .vimrc and .bashrc both created.
	write("2026-08-01T00:00:00Z", `version: 1
timestamp: 2026-08-01T00:00:00Z
is_backup: true
hoard_name: vimrc
piles:
  "":
    files:
      .vimrc: "sha256:6161"
      .bashrc: "sha256:6262"
`)
	// Second operation: .vimrc modified, .bashrc deleted (absent from the listing).
	write("2026-08-02T00:00:00Z", `version: 1
timestamp: 2026-08-02T00:00:00Z
is_backup: true
hoard_name: vimrc
piles:
  "":
    files:
      .vimrc: "sha256:6363"
`)

	n, err := Upgrade(fsys, p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	second, err := Read(fsys, dir+"/2026-08-02T00:00:00Z.log")
	require.NoError(t, err)
	assert.Equal(t, types.SchemaV2, second.Version)
	files := second.PerPile[""].Files
	require.Contains(t, files, ".vimrc")
	assert.Equal(t, types.ActionModify, files[".vimrc"].Action)
	require.Contains(t, files, ".bashrc")
	assert.Equal(t, types.ActionDelete, files[".bashrc"].Action)

	first, err := Read(fsys, dir+"/2026-08-01T00:00:00Z.log")
	require.NoError(t, err)
	assert.Equal(t, types.ActionCreate, first.PerPile[""].Files[".vimrc"].Action)
}
