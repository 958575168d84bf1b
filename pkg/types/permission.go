package types

import "io/fs"

// PermissionSpec configures either an octal mode or a POSIX flag set; both
// lower to a 9-bit mode via ToMode. A nil field within the
// flag set is left unspecified by that level of config layering.
type PermissionSpec struct {
	Mode *fs.FileMode

	IsReadable       *bool
	IsWritable       *bool
	IsExecutable     *bool
	OthersCanRead    *bool
	OthersCanWrite   *bool
	OthersCanExecute *bool
}

// IsEmpty reports whether the spec sets nothing, the "not specified at
// this level" state the layering merge checks for.
func (p *PermissionSpec) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Mode == nil && p.IsReadable == nil && p.IsWritable == nil &&
		p.IsExecutable == nil && p.OthersCanRead == nil &&
		p.OthersCanWrite == nil && p.OthersCanExecute == nil
}

// ToMode lowers the spec to a 9-bit permission mode. An explicit Mode
// wins outright; otherwise the mode is built bit-by-bit from the flags,
// owner bits defaulting to read+write (+execute if requested) and group
// bits mirroring "others" (hoard does not model a distinct group tier).
func (p *PermissionSpec) ToMode() fs.FileMode {
	if p == nil {
		return 0o600
	}
	if p.Mode != nil {
		return *p.Mode
	}

	var mode fs.FileMode
	if boolOr(p.IsReadable, true) {
		mode |= 0o400
	}
	if boolOr(p.IsWritable, true) {
		mode |= 0o200
	}
	if boolOr(p.IsExecutable, false) {
		mode |= 0o100
	}
	if boolOr(p.OthersCanRead, false) {
		mode |= 0o044
	}
	if boolOr(p.OthersCanWrite, false) {
		mode |= 0o022
	}
	if boolOr(p.OthersCanExecute, false) {
		mode |= 0o011
	}
	return mode
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

// MergePermission returns the most-specific non-empty spec, per §4.3's
// "most-specific non-empty wins, per field not merged" rule: specific
// wins wholesale over general as soon as it sets anything.
func MergePermission(general, specific *PermissionSpec) *PermissionSpec {
	if !specific.IsEmpty() {
		return specific
	}
	return general
}
