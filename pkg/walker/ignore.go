// Package walker enumerates a pile's root into a stable, depth-first
// sequence of HoardItems, applying the pile's ignore globs along the
// way.
package walker

import (
	"strings"

	"github.com/denormal/go-gitignore"
)

// ignoreMatcher wraps a compiled gitignore.GitIgnore built from one
// pile's ignore glob patterns.
type ignoreMatcher struct {
	gi gitignore.GitIgnore
}

func newIgnoreMatcher(patterns []string) *ignoreMatcher {
	if len(patterns) == 0 {
		return nil
	}
	combined := strings.Join(normalizePatterns(patterns), "\n")
	gi := gitignore.New(strings.NewReader(combined), "", func(gitignore.Error) bool { return false })
	if gi == nil {
		return nil
	}
	return &ignoreMatcher{gi: gi}
}

// normalizePatterns converts a trailing-slash directory pattern into its
// "**"-suffixed glob equivalent, mirroring the library's gitignore-style
// dir-pattern convention.
func normalizePatterns(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		p = strings.ReplaceAll(p, "\\", "/")
		if strings.HasSuffix(p, "/") && !strings.HasSuffix(p, "**/") {
			p += "**"
		}
		out[i] = p
	}
	return out
}

// matches reports whether relPath (pile-relative, forward-slash) should
// be ignored. relPath is matched against the patterns directly, as a
// non-directory path, without resolving it against the working
// directory or touching the OS filesystem; trailing-slash directory
// patterns already match everything beneath the directory through
// normalizePatterns.
func (m *ignoreMatcher) matches(relPath string) bool {
	if m == nil {
		return false
	}
	result := m.gi.Relative(relPath, false)
	if result == nil {
		return false
	}
	return result.Ignore()
}
