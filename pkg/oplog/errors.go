package oplog

import (
	"errors"
	"os"
)

// isOSNotExist reports whether err is, or wraps, a missing-file error
// from the underlying filesystem. A host or hoard with no logged
// operations yet is not a failure, just an empty result.
func isOSNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
