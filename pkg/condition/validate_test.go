package condition

import (
	"testing"

	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExclusivityRejectsNameInTwoGroups(t *testing.T) {
	exclusivity := types.ExclusivityList{
		{"vim", "neovim"},
		{"emacs", "vim"},
	}
	err := ValidateExclusivity(exclusivity)
	require.Error(t, err)
	assert.Equal(t, herr.ErrConfigSemantic, herr.Code(err))
}

func TestValidateExclusivityAcceptsDisjointGroups(t *testing.T) {
	exclusivity := types.ExclusivityList{
		{"vim", "neovim"},
		{"bash", "zsh"},
	}
	require.NoError(t, ValidateExclusivity(exclusivity))
}
