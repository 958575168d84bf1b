package lock

import (
	"path/filepath"
	"testing"

	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lock")
	l := New(path)
	require.NoError(t, l.Acquire())
	require.NoError(t, l.Release())
}

func TestAcquireFailsFastWhenHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lock")

	first := New(path)
	require.NoError(t, first.Acquire())
	defer func() { _ = first.Release() }()

	second := New(path)
	err := second.Acquire()
	require.Error(t, err)
	assert.Equal(t, herr.ErrLockHeld, herr.Code(err))
}
