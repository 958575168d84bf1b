package environment

import (
	"testing"

	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsSimple(t *testing.T) {
	resolved, err := ResolveDefaults(
		map[string]string{"FILES": "${HOME}/files"},
		lookupMap(map[string]string{"HOME": "/home/alice"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/files", resolved["FILES"])
}

func TestResolveDefaultsChained(t *testing.T) {
	resolved, err := ResolveDefaults(
		map[string]string{
			"BASE":  "${HOME}/dotfiles",
			"FILES": "${BASE}/files",
		},
		lookupMap(map[string]string{"HOME": "/home/alice"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/dotfiles", resolved["BASE"])
	assert.Equal(t, "/home/alice/dotfiles/files", resolved["FILES"])
}

func TestResolveDefaultsCycleIsFatal(t *testing.T) {
	_, err := ResolveDefaults(
		map[string]string{"A": "${B}", "B": "${A}"},
		lookupMap(nil),
	)
	require.Error(t, err)
	assert.Equal(t, herr.ErrConfigSemantic, herr.Code(err))
	details := herr.Details(err)
	assert.ElementsMatch(t, []string{"A", "B"}, details["variables"])
}

func TestResolveDefaultsHostEnvTakesPrecedence(t *testing.T) {
	resolved, err := ResolveDefaults(
		map[string]string{"EDITOR": "vi"},
		lookupMap(map[string]string{"EDITOR": "nano"}),
	)
	require.NoError(t, err)
	// EDITOR's default literal has no ${...} reference, so it resolves
	// to "vi"; Lookup still consults the host's own value first.
	assert.Equal(t, "vi", resolved["EDITOR"])

	host := testHost("linux", "box", map[string]string{"EDITOR": "nano"}, nil, nil)
	got, ok := Lookup(host, resolved)("EDITOR")
	require.True(t, ok)
	assert.Equal(t, "nano", got)
}
