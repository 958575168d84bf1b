// Package checker implements the three pre-flight consistency checks
// that run before any mutating operation: last-paths,
// remote-operation, and unexpected-change. It also exposes a
// non-mutating classification used by the status command.
package checker
