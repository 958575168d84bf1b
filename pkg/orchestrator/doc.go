// Package orchestrator wires the config model, condition resolver, path
// tree walker, hasher, checker, copy engine, and operation log into the
// backup/restore state machine: Loaded → EnvResolved →
// PilesResolved → ChecksPassed → Executing → Journaled → Done, with any
// failure short-circuiting to Aborted.
package orchestrator
