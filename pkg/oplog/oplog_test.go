package oplog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shadow53/hoard-go/pkg/filesystem"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checksum(digest string) *types.Checksum {
	return &types.Checksum{Algorithm: types.HashSHA256, Digest: []byte(digest)}
}

func TestWriteReadRoundTrip(t *testing.T) {
	fsys := filesystem.NewMemMap()
	hostID := uuid.New()
	entry := types.OperationLogEntry{
		Timestamp: time.Date(2026, 8, 6, 12, 0, 0, 0, time.UTC),
		HostID:    hostID,
		HoardName: "vimrc",
		Direction: types.DirectionBackup,
		PerPile: map[string]types.PileLogEntry{
			"": {
				ChosenPath: "/home/user/.vimrc",
				Files: map[string]types.FileLogEntry{
					".vimrc": {NewChecksum: checksum("abc"), Action: types.ActionCreate},
				},
			},
		},
	}

	path := "/data/history/" + hostID.String() + "/vimrc/2026-08-06T12:00:00Z.log"
	require.NoError(t, Write(fsys, path, entry))

	got, err := Read(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, types.SchemaV2, got.Version)
	assert.Equal(t, entry.HoardName, got.HoardName)
	assert.Equal(t, entry.Direction, got.Direction)
	assert.Equal(t, entry.HostID, got.HostID)
	require.Contains(t, got.PerPile, "")
	assert.Equal(t, "/home/user/.vimrc", got.PerPile[""].ChosenPath)
	require.Contains(t, got.PerPile[""].Files, ".vimrc")
	assert.Equal(t, types.ActionCreate, got.PerPile[""].Files[".vimrc"].Action)
	assert.True(t, checksum("abc").Equal(*got.PerPile[""].Files[".vimrc"].NewChecksum))
}

func TestReadV1DocumentUpgradesInMemory(t *testing.T) {
	fsys := filesystem.NewMemMap()
	path := "/data/history/host/vimrc/2026-08-01T00:00:00Z.log"
	require.NoError(t, fsys.MkdirAll("/data/history/host/vimrc", 0o755))
	w, err := fsys.Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte(`version: 1
timestamp: 2026-08-01T00:00:00Z
is_backup: true
hoard_name: vimrc
piles:
  "":
    files:
      .vimrc: "sha256:616263"
`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	entry, err := Read(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, types.SchemaV1, entry.Version)
	assert.Equal(t, types.DirectionBackup, entry.Direction)
	require.Contains(t, entry.PerPile, "")
	require.Contains(t, entry.PerPile[""].Files, ".vimrc")
	assert.Equal(t, types.ActionUnchanged, entry.PerPile[""].Files[".vimrc"].Action)
}

func TestWriteIsAtomicViaTempAndRename(t *testing.T) {
	fsys := filesystem.NewMemMap()
	path := "/data/history/host/vimrc/2026-08-06T12:00:00Z.log"
	entry := types.OperationLogEntry{
		Timestamp: time.Now().UTC(),
		HostID:    uuid.New(),
		HoardName: "vimrc",
		Direction: types.DirectionBackup,
		PerPile:   map[string]types.PileLogEntry{},
	}
	require.NoError(t, Write(fsys, path, entry))

	_, err := fsys.Stat(path + ".tmp")
	assert.Error(t, err, "temp file should not survive a successful write")

	_, err = fsys.Stat(path)
	assert.NoError(t, err)
}
