package oplog

import (
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/paths"
	"github.com/shadow53/hoard-go/pkg/types"
)

// Cleanup removes every log file under p.HistoryRoot() except the
// latest per (host, hoard). If that latest entry is a restore, the
// latest backup for the same (host, hoard) is kept too, so there's
// always a backup to fall back to. It returns the number of files
// removed.
func Cleanup(fsys hoardfs.FS, p *paths.Paths) (int, error) {
	hosts, err := ListHosts(fsys, p.HistoryRoot())
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, host := range hosts {
		hoards, err := ListHoards(fsys, p.HistoryRoot(), host.String())
		if err != nil {
			return removed, err
		}
		for _, hoard := range hoards {
			n, err := cleanupDir(fsys, p.HistoryDir(host.String(), hoard))
			removed += n
			if err != nil {
				return removed, err
			}
		}
	}
	return removed, nil
}

func cleanupDir(fsys hoardfs.FS, dir string) (int, error) {
	files, err := ListLogFiles(fsys, dir)
	if err != nil || len(files) == 0 {
		return 0, err
	}

	latest := files[len(files)-1]
	keep := map[string]bool{latest: true}

	latestEntry, err := Read(fsys, latest)
	if err != nil {
		return 0, err
	}
	if latestEntry.Direction == types.DirectionRestore {
		for i := len(files) - 2; i >= 0; i-- {
			entry, err := Read(fsys, files[i])
			if err != nil {
				return 0, err
			}
			if entry.Direction == types.DirectionBackup {
				keep[files[i]] = true
				break
			}
		}
	}

	removed := 0
	for _, f := range files {
		if keep[f] {
			continue
		}
		if err := fsys.Remove(f); err != nil {
			return removed, herr.Wrapf(err, herr.ErrIoFailure, "deleting operation log %s", f)
		}
		removed++
	}
	return removed, nil
}
