package types

import (
	"time"

	"github.com/google/uuid"
)

// Direction identifies which way a command moved files between the
// source tree and the hoard.
type Direction string

const (
	DirectionBackup  Direction = "backup"
	DirectionRestore Direction = "restore"
)

// Action classifies what happened to one pile-relative path during a
// run, relative to the prior authoritative state.
type Action string

const (
	ActionCreate    Action = "create"
	ActionModify    Action = "modify"
	ActionDelete    Action = "delete"
	ActionUnchanged Action = "unchanged"
)

// FileLogEntry records one pile-relative path's before/after checksums
// and the action taken. PriorChecksum and NewChecksum are nil when there
// was no prior or no resulting file, respectively (e.g. ActionCreate has
// no PriorChecksum; ActionDelete has no NewChecksum).
type FileLogEntry struct {
	PriorChecksum *Checksum
	NewChecksum   *Checksum
	Action        Action
}

// PileLogEntry is one pile's record within an operation: which path was
// chosen for it, and the full authoritative state of every file under
// it, by pile-relative path.
type PileLogEntry struct {
	ChosenPath string
	Files      map[string]FileLogEntry
}

// OperationLogEntry is one run's record for one hoard on one host.
// The in-memory Version field is not
// serialized; it is set by the reader based on which schema a file
// parsed as, and is always SchemaV2 for entries this process writes.
type OperationLogEntry struct {
	Timestamp time.Time
	HostID    uuid.UUID
	HoardName string
	Direction Direction
	PerPile   map[string]PileLogEntry

	Version SchemaVersion
}

// SchemaVersion distinguishes the two on-disk operation-log formats the
// reader must accept.
type SchemaVersion int

const (
	SchemaV1 SchemaVersion = 1
	SchemaV2 SchemaVersion = 2
)
