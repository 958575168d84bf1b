package condition

import (
	"testing"

	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noExpand(s string) (string, bool) { return s, true }

func TestResolveSingleMatch(t *testing.T) {
	conditions := map[string]string{"linux": "/a", "darwin": "/b"}
	active := types.EnvironmentSet{"linux": true}

	path, ok, err := Resolve(conditions, active, nil, noExpand)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/a", path)
}

func TestResolveNoMatchIsSkipNotError(t *testing.T) {
	conditions := map[string]string{"linux": "/a"}
	active := types.EnvironmentSet{"darwin": true}

	path, ok, err := Resolve(conditions, active, nil, noExpand)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", path)
}

// Exclusivity tiebreak: envs neovim, vim both match; exclusivity
// [["neovim", "vim"]]; pile has both "vim"="/a" and "neovim"="/b";
// chosen path is "/b".
func TestResolveExclusivityTiebreak(t *testing.T) {
	conditions := map[string]string{"vim": "/a", "neovim": "/b"}
	active := types.EnvironmentSet{"vim": true, "neovim": true}
	exclusivity := types.ExclusivityList{{"neovim", "vim"}}

	path, ok, err := Resolve(conditions, active, exclusivity, noExpand)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/b", path)
}

func TestResolvePrefersLongerCondition(t *testing.T) {
	conditions := map[string]string{
		"linux":     "/general",
		"linux|vim": "/specific",
	}
	active := types.EnvironmentSet{"linux": true, "vim": true}

	path, ok, err := Resolve(conditions, active, nil, noExpand)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/specific", path)
}

func TestResolveAmbiguousConditionsError(t *testing.T) {
	conditions := map[string]string{"vim": "/a", "neovim": "/b"}
	active := types.EnvironmentSet{"vim": true, "neovim": true}

	_, _, err := Resolve(conditions, active, nil, noExpand)
	require.Error(t, err)
	assert.Equal(t, herr.ErrAmbiguousCondition, herr.Code(err))
}

func TestResolveDropsToNextLengthWhenTopBucketEmpty(t *testing.T) {
	// "linux|vim" matches length-for-set but vim isn't active, so only
	// "linux" (length 1) should win.
	conditions := map[string]string{
		"linux":     "/general",
		"linux|vim": "/specific",
	}
	active := types.EnvironmentSet{"linux": true}

	path, ok, err := Resolve(conditions, active, nil, noExpand)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/general", path)
}

func TestResolveUnresolvableWinningPathIsFatal(t *testing.T) {
	conditions := map[string]string{"linux": "${MISSING}/x"}
	active := types.EnvironmentSet{"linux": true}

	failExpand := func(string) (string, bool) { return "", false }
	_, _, err := Resolve(conditions, active, nil, failExpand)
	require.Error(t, err)
	assert.Equal(t, herr.ErrEnvVarMissing, herr.Code(err))
}
