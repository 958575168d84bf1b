package oplog

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
)

// ListLogFiles returns the paths of every log file directly inside dir,
// sorted ascending. Filenames are RFC3339 timestamps plus ".log", so
// lexicographic order is chronological order.
func ListLogFiles(fsys hoardfs.FS, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, herr.Wrapf(err, herr.ErrIoFailure, "listing operation logs in %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ListHosts returns the UUID-named directories directly under root,
// i.e. every host that has ever logged an operation on this data dir.
func ListHosts(fsys hoardfs.FS, historyRoot string) ([]uuid.UUID, error) {
	entries, err := fsys.ReadDir(historyRoot)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, herr.Wrapf(err, herr.ErrIoFailure, "listing hosts in %s", historyRoot)
	}

	var hosts []uuid.UUID
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id, err := uuid.Parse(e.Name())
		if err != nil {
			continue
		}
		hosts = append(hosts, id)
	}
	return hosts, nil
}

// ListHoards returns the hoard names with at least one logged operation
// for the given host.
func ListHoards(fsys hoardfs.FS, historyRoot, hostUUID string) ([]string, error) {
	dir := filepath.Join(historyRoot, hostUUID)
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, herr.Wrapf(err, herr.ErrIoFailure, "listing hoards in %s", dir)
	}

	var hoards []string
	for _, e := range entries {
		if e.IsDir() {
			hoards = append(hoards, e.Name())
		}
	}
	sort.Strings(hoards)
	return hoards, nil
}

func isNotExist(err error) bool {
	return herr.Code(err) == herr.ErrNotFound || isOSNotExist(err)
}
