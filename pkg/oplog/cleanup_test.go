package oplog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shadow53/hoard-go/pkg/filesystem"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/paths"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaths(t *testing.T) *paths.Paths {
	t.Helper()
	p, err := paths.New(t.TempDir(), t.TempDir())
	require.NoError(t, err)
	return p
}

func writeEntry(t *testing.T, fsys hoardfs.FS, p *paths.Paths, host uuid.UUID, hoard string, ts time.Time, dir types.Direction) string {
	t.Helper()
	path := p.OperationLogPath(host.String(), hoard, ts)
	entry := types.OperationLogEntry{
		Timestamp: ts,
		HostID:    host,
		HoardName: hoard,
		Direction: dir,
		PerPile:   map[string]types.PileLogEntry{},
	}
	require.NoError(t, Write(fsys, path, entry))
	return path
}

func TestCleanupKeepsOnlyLatestBackup(t *testing.T) {
	fsys := filesystem.NewMemMap()
	p := newTestPaths(t)
	host := uuid.New()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	writeEntry(t, fsys, p, host, "vimrc", base, types.DirectionBackup)
	writeEntry(t, fsys, p, host, "vimrc", base.Add(time.Hour), types.DirectionBackup)
	latest := writeEntry(t, fsys, p, host, "vimrc", base.Add(2*time.Hour), types.DirectionBackup)

	removed, err := Cleanup(fsys, p)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	files, err := ListLogFiles(fsys, p.HistoryDir(host.String(), "vimrc"))
	require.NoError(t, err)
	assert.Equal(t, []string{latest}, files)
}

func TestCleanupKeepsLatestBackupWhenLatestIsRestore(t *testing.T) {
	fsys := filesystem.NewMemMap()
	p := newTestPaths(t)
	host := uuid.New()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	writeEntry(t, fsys, p, host, "vimrc", base, types.DirectionBackup)
	mostRecentBackup := writeEntry(t, fsys, p, host, "vimrc", base.Add(time.Hour), types.DirectionBackup)
	latestRestore := writeEntry(t, fsys, p, host, "vimrc", base.Add(2*time.Hour), types.DirectionRestore)

	removed, err := Cleanup(fsys, p)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	files, err := ListLogFiles(fsys, p.HistoryDir(host.String(), "vimrc"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{mostRecentBackup, latestRestore}, files)
}
