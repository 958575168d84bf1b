// Package environment implements the Env Evaluator: matching declared
// environments against the live host, and expanding ${NAME} references
// against host env vars and memoized config defaults.
package environment

// Host is every fact about the running machine the evaluator needs.
// Production code builds one from os.LookupEnv/os.Hostname/runtime.GOOS/
// exec.LookPath; tests construct one directly, so evaluation never
// touches the real OS in unit tests.
type Host struct {
	OS       string
	Hostname string

	// Env looks up a host environment variable; ok is false if unset.
	Env func(name string) (string, bool)

	// LookPath reports whether an executable name resolves on the
	// host's search path.
	LookPath func(name string) bool

	// PathExists reports whether a filesystem path exists, of any kind.
	PathExists func(path string) bool

	// Expand resolves ${NAME} references against host env vars and
	// config defaults; ok is false if a referenced variable has no
	// value anywhere. Used to expand path_exists entries before
	// checking them; a failed expansion here evaluates to "no match",
	// not a fatal error (that only happens when a pile's winning path
	// itself fails to expand).
	Expand func(s string) (string, bool)
}
