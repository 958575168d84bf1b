// Package hostid persists the UUID that anchors "local vs remote" in
// the operation log.
package hostid

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
)

// Load reads the host UUID from path, creating and persisting a new one
// if the file is missing. A regenerated UUID makes every prior operation
// look remote, which is logged as a warning: it's a last-resort reset
// signal, not a routine path.
func Load(fsys hoardfs.FS, path string) (uuid.UUID, error) {
	f, err := fsys.Open(path)
	if err == nil {
		defer func() { _ = f.Close() }()
		buf := make([]byte, 64)
		n, readErr := f.Read(buf)
		if readErr != nil && n == 0 {
			return uuid.UUID{}, herr.Wrapf(readErr, herr.ErrIoFailure, "reading host id file %s", path)
		}
		id, parseErr := uuid.Parse(strings.TrimSpace(string(buf[:n])))
		if parseErr == nil {
			return id, nil
		}
		log.Warn().Str("path", path).Err(parseErr).Msg("host id file is corrupt, regenerating")
	}

	id := uuid.New()
	log.Warn().Str("path", path).Str("id", id.String()).
		Msg("no host id found, generating a new one; every prior operation will now look remote")

	if err := persist(fsys, path, id); err != nil {
		return uuid.UUID{}, err
	}
	return id, nil
}

func persist(fsys hoardfs.FS, path string, id uuid.UUID) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return herr.Wrapf(err, herr.ErrIoFailure, "creating host id directory for %s", path)
	}
	w, err := fsys.Create(path)
	if err != nil {
		return herr.Wrapf(err, herr.ErrIoFailure, "creating host id file %s", path)
	}
	defer func() { _ = w.Close() }()
	if _, err := w.Write([]byte(id.String())); err != nil {
		return herr.Wrapf(err, herr.ErrIoFailure, "writing host id file %s", path)
	}
	return nil
}
