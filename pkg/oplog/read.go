package oplog

import (
	"io"

	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/types"
	"gopkg.in/yaml.v3"
)

// Read loads a single operation log file, dispatching on its leading
// version tag. v1 files decode successfully but come back with
// types.SchemaV1 and every file's Action set to ActionUnchanged; use
// Upgrade to recover the real actions from the full history.
func Read(fsys hoardfs.FS, path string) (types.OperationLogEntry, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return types.OperationLogEntry{}, herr.Wrapf(err, herr.ErrIoFailure, "opening operation log %s", path)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return types.OperationLogEntry{}, herr.Wrapf(err, herr.ErrIoFailure, "reading operation log %s", path)
	}

	var probe versionProbe
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return types.OperationLogEntry{}, herr.Wrapf(err, herr.ErrConfigParse, "parsing operation log %s", path)
	}

	switch types.SchemaVersion(probe.Version) {
	case types.SchemaV2:
		var doc v2Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return types.OperationLogEntry{}, herr.Wrapf(err, herr.ErrConfigParse, "parsing v2 operation log %s", path)
		}
		entry, err := documentToEntry(doc)
		if err != nil {
			return types.OperationLogEntry{}, herr.Wrapf(err, herr.ErrConfigParse, "decoding v2 operation log %s", path)
		}
		return entry, nil
	case types.SchemaV1:
		var doc v1Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return types.OperationLogEntry{}, herr.Wrapf(err, herr.ErrConfigParse, "parsing v1 operation log %s", path)
		}
		entry, err := upgradeV1(doc)
		if err != nil {
			return types.OperationLogEntry{}, herr.Wrapf(err, herr.ErrConfigParse, "decoding v1 operation log %s", path)
		}
		return entry, nil
	default:
		return types.OperationLogEntry{}, herr.Newf(herr.ErrConfigParse, "operation log %s has unknown schema version %d", path, probe.Version)
	}
}
