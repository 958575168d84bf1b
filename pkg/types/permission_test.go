package types_test

import (
	"io/fs"
	"testing"

	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestPermissionSpecToModeExplicit(t *testing.T) {
	mode := fs.FileMode(0o755)
	spec := &types.PermissionSpec{Mode: &mode}
	assert.Equal(t, fs.FileMode(0o755), spec.ToMode())
}

func TestPermissionSpecToModeFromFlags(t *testing.T) {
	spec := &types.PermissionSpec{
		IsReadable:       boolPtr(true),
		IsWritable:       boolPtr(true),
		IsExecutable:     boolPtr(true),
		OthersCanRead:    boolPtr(true),
		OthersCanWrite:   boolPtr(false),
		OthersCanExecute: boolPtr(false),
	}
	assert.Equal(t, fs.FileMode(0o744), spec.ToMode())
}

func TestPermissionSpecIsEmpty(t *testing.T) {
	assert.True(t, (*types.PermissionSpec)(nil).IsEmpty())
	assert.True(t, (&types.PermissionSpec{}).IsEmpty())

	mode := fs.FileMode(0o600)
	assert.False(t, (&types.PermissionSpec{Mode: &mode}).IsEmpty())
}

func TestMergePermissionMostSpecificWins(t *testing.T) {
	generalMode := fs.FileMode(0o644)
	general := &types.PermissionSpec{Mode: &generalMode}

	merged := types.MergePermission(general, nil)
	assert.Equal(t, general, merged)

	specificMode := fs.FileMode(0o600)
	specific := &types.PermissionSpec{Mode: &specificMode}
	merged = types.MergePermission(general, specific)
	assert.Equal(t, specific, merged)
}
