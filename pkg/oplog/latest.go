package oplog

import (
	"github.com/google/uuid"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/paths"
	"github.com/shadow53/hoard-go/pkg/types"
)

// LatestLocal returns the most recent logged operation for hoardName on
// hostID, or ok=false if none exists yet.
func LatestLocal(fsys hoardfs.FS, p *paths.Paths, hostID uuid.UUID, hoardName string) (types.OperationLogEntry, bool, error) {
	files, err := ListLogFiles(fsys, p.HistoryDir(hostID.String(), hoardName))
	if err != nil {
		return types.OperationLogEntry{}, false, err
	}
	if len(files) == 0 {
		return types.OperationLogEntry{}, false, nil
	}
	entry, err := Read(fsys, files[len(files)-1])
	if err != nil {
		return types.OperationLogEntry{}, false, err
	}
	return entry, true, nil
}

// LatestRemote returns the most recent logged operation for hoardName
// across every host other than hostID, or ok=false if none exists.
func LatestRemote(fsys hoardfs.FS, p *paths.Paths, hostID uuid.UUID, hoardName string) (types.OperationLogEntry, bool, error) {
	hosts, err := ListHosts(fsys, p.HistoryRoot())
	if err != nil {
		return types.OperationLogEntry{}, false, err
	}

	var best types.OperationLogEntry
	found := false
	for _, host := range hosts {
		if host == hostID {
			continue
		}
		entry, ok, err := LatestLocal(fsys, p, host, hoardName)
		if err != nil {
			return types.OperationLogEntry{}, false, err
		}
		if !ok {
			continue
		}
		if !found || entry.Timestamp.After(best.Timestamp) {
			best = entry
			found = true
		}
	}
	return best, found, nil
}
