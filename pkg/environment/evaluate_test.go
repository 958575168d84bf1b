package environment

import (
	"testing"

	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/stretchr/testify/assert"
)

func testHost(os, hostname string, env map[string]string, paths map[string]bool, exes map[string]bool) Host {
	return Host{
		OS:       os,
		Hostname: hostname,
		Env: func(name string) (string, bool) {
			v, ok := env[name]
			return v, ok
		},
		LookPath:   func(name string) bool { return exes[name] },
		PathExists: func(path string) bool { return paths[path] },
		Expand: func(s string) (string, bool) {
			return s, true
		},
	}
}

func TestEvaluateOSMatch(t *testing.T) {
	environments := map[string]*types.Environment{
		"linux": {Name: "linux", OS: "linux"},
		"mac":   {Name: "mac", OS: "darwin"},
	}
	active := Evaluate(environments, testHost("linux", "host1", nil, nil, nil))
	assert.True(t, active.Contains("linux"))
	assert.False(t, active.Contains("mac"))
}

func TestEvaluateEnvClauseDefinedOnly(t *testing.T) {
	environments := map[string]*types.Environment{
		"has_editor": {
			Name: "has_editor",
			Env:  types.DNF[types.EnvClause]{{{Name: "EDITOR"}}},
		},
	}

	withEditor := testHost("linux", "h", map[string]string{"EDITOR": "vim"}, nil, nil)
	active := Evaluate(environments, withEditor)
	assert.True(t, active.Contains("has_editor"))

	without := testHost("linux", "h", nil, nil, nil)
	active = Evaluate(environments, without)
	assert.False(t, active.Contains("has_editor"))
}

func TestEvaluateEnvClauseExpectedLiteral(t *testing.T) {
	expected := "vim"
	environments := map[string]*types.Environment{
		"vim_editor": {
			Name: "vim_editor",
			Env:  types.DNF[types.EnvClause]{{{Name: "EDITOR", Expected: &expected}}},
		},
	}

	match := testHost("linux", "h", map[string]string{"EDITOR": "vim"}, nil, nil)
	assert.True(t, Evaluate(environments, match).Contains("vim_editor"))

	mismatch := testHost("linux", "h", map[string]string{"EDITOR": "nano"}, nil, nil)
	assert.False(t, Evaluate(environments, mismatch).Contains("vim_editor"))
}

func TestEvaluateExeExistsDNF(t *testing.T) {
	environments := map[string]*types.Environment{
		"editor_present": {
			Name:      "editor_present",
			ExeExists: types.DNF[string]{{"nvim"}, {"vim"}}, // OR of ANDs: nvim present, OR vim present
		},
	}

	hasVim := testHost("linux", "h", nil, nil, map[string]bool{"vim": true})
	assert.True(t, Evaluate(environments, hasVim).Contains("editor_present"))

	hasNeither := testHost("linux", "h", nil, nil, nil)
	assert.False(t, Evaluate(environments, hasNeither).Contains("editor_present"))
}

func TestEvaluatePathExistsExpansionFailureIsNoMatch(t *testing.T) {
	environments := map[string]*types.Environment{
		"has_config": {
			Name:       "has_config",
			PathExists: types.DNF[string]{{"${HOME}/.vimrc"}},
		},
	}

	host := testHost("linux", "h", nil, map[string]bool{"${HOME}/.vimrc": true}, nil)
	host.Expand = func(s string) (string, bool) { return "", false }

	active := Evaluate(environments, host)
	assert.False(t, active.Contains("has_config"))
}

func TestEvaluateUnspecifiedFactorsAreTrivialTrue(t *testing.T) {
	environments := map[string]*types.Environment{
		"always": {Name: "always"},
	}
	active := Evaluate(environments, testHost("linux", "h", nil, nil, nil))
	assert.True(t, active.Contains("always"))
}
