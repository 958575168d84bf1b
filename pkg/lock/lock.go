// Package lock provides the process-level advisory lock that serializes
// concurrent hoard invocations on the same host.
package lock

import (
	"github.com/gofrs/flock"
	"github.com/shadow53/hoard-go/pkg/herr"
)

// Lock guards one run of hoard against another concurrent run on the
// same host, backed by a flock(2)-style advisory lock file.
type Lock struct {
	fl *flock.Flock
}

// New returns a Lock for the given lock file path. The file is created
// if missing; it is never removed (its existence is not the lock state,
// holding it is).
func New(path string) *Lock {
	return &Lock{fl: flock.New(path)}
}

// Acquire takes the lock without blocking. If another invocation
// already holds it, it returns herr.ErrLockHeld immediately rather than
// waiting, so contention fails fast with a clear error.
func (l *Lock) Acquire() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return herr.Wrap(err, herr.ErrIoFailure, "acquiring process lock")
	}
	if !ok {
		return herr.New(herr.ErrLockHeld, "another hoard invocation is already running on this host")
	}
	return nil
}

// Release gives up the lock.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return herr.Wrap(err, herr.ErrIoFailure, "releasing process lock")
	}
	return nil
}
