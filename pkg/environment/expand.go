package environment

import (
	"strings"

	"github.com/shadow53/hoard-go/pkg/herr"
)

// Expand substitutes every ${NAME} reference in s, looking each name up
// with lookup. Syntax is exactly ${NAME}; there is no shell-style
// ${NAME:-default} fallback. An unresolved reference is a
// herr.ErrEnvVarMissing naming the variable.
func Expand(s string, lookup func(name string) (string, bool)) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "${")
		if start == -1 {
			out.WriteString(s[i:])
			break
		}
		out.WriteString(s[i : i+start])
		rest := s[i+start+2:]
		end := strings.IndexByte(rest, '}')
		if end == -1 {
			return "", herr.New(herr.ErrEnvVarMissing, "unterminated ${ in: "+s)
		}
		name := rest[:end]
		val, ok := lookup(name)
		if !ok {
			return "", herr.Newf(herr.ErrEnvVarMissing, "variable %q is not set and has no default", name).WithDetail("variable", name)
		}
		out.WriteString(val)
		i += start + 2 + end + 1
	}
	return out.String(), nil
}
