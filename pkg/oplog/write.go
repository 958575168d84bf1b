package oplog

import (
	"path/filepath"

	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/types"
	"gopkg.in/yaml.v3"
)

// Write persists entry to path, always in the current schema. The write
// is atomic: the document is written to a sibling temp file and moved
// into place with a single rename, so a reader never observes a partial
// log.
func Write(fsys hoardfs.FS, path string, entry types.OperationLogEntry) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return herr.Wrapf(err, herr.ErrIoFailure, "creating operation log directory for %s", path)
	}

	data, err := yaml.Marshal(entryToDocument(entry))
	if err != nil {
		return herr.Wrapf(err, herr.ErrInternal, "encoding operation log entry for %s", path)
	}

	tmpPath := path + ".tmp"
	w, err := fsys.Create(tmpPath)
	if err != nil {
		return herr.Wrapf(err, herr.ErrIoFailure, "creating temp operation log file %s", tmpPath)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return herr.Wrapf(err, herr.ErrIoFailure, "writing temp operation log file %s", tmpPath)
	}
	if err := w.Close(); err != nil {
		return herr.Wrapf(err, herr.ErrIoFailure, "closing temp operation log file %s", tmpPath)
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		return herr.Wrapf(err, herr.ErrIoFailure, "renaming %s into place at %s", tmpPath, path)
	}
	return nil
}
