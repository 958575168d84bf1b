package oplog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shadow53/hoard-go/pkg/types"
)

// versionProbe is decoded first to read the leading version tag without
// committing to either schema.
type versionProbe struct {
	Version int `yaml:"version"`
}

// v2Document is the on-disk shape of a types.OperationLogEntry. Field
// names are the wire format; keep them stable across releases.
type v2Document struct {
	Version   int               `yaml:"version"`
	Timestamp time.Time         `yaml:"timestamp"`
	HostID    string            `yaml:"host_id"`
	HoardName string            `yaml:"hoard_name"`
	Direction string            `yaml:"direction"`
	PerPile   map[string]v2Pile `yaml:"per_pile"`
}

type v2Pile struct {
	ChosenPath string            `yaml:"chosen_path"`
	Files      map[string]v2File `yaml:"files"`
}

type v2File struct {
	PriorChecksum string `yaml:"prior_checksum,omitempty"`
	NewChecksum   string `yaml:"new_checksum,omitempty"`
	Action        string `yaml:"action"`
}

// v1Document predates per-pile chosen paths and per-file actions: just a
// hoard name, direction, and a flat map of pile-relative path to the
// checksum it had as of that operation.
type v1Document struct {
	Version   int                  `yaml:"version"`
	Timestamp time.Time            `yaml:"timestamp"`
	IsBackup  bool                 `yaml:"is_backup"`
	HoardName string               `yaml:"hoard_name"`
	Piles     map[string]v1PileMap `yaml:"piles"`
}

type v1PileMap struct {
	Files map[string]string `yaml:"files"`
}

func entryToDocument(entry types.OperationLogEntry) v2Document {
	doc := v2Document{
		Version:   int(types.SchemaV2),
		Timestamp: entry.Timestamp,
		HostID:    entry.HostID.String(),
		HoardName: entry.HoardName,
		Direction: string(entry.Direction),
		PerPile:   make(map[string]v2Pile, len(entry.PerPile)),
	}
	for pileName, pile := range entry.PerPile {
		files := make(map[string]v2File, len(pile.Files))
		for relPath, f := range pile.Files {
			files[relPath] = v2File{
				PriorChecksum: checksumString(f.PriorChecksum),
				NewChecksum:   checksumString(f.NewChecksum),
				Action:        string(f.Action),
			}
		}
		doc.PerPile[pileName] = v2Pile{ChosenPath: pile.ChosenPath, Files: files}
	}
	return doc
}

func checksumString(c *types.Checksum) string {
	if c == nil {
		return ""
	}
	return c.String()
}

func documentToEntry(doc v2Document) (types.OperationLogEntry, error) {
	hostID, err := uuid.Parse(doc.HostID)
	if err != nil {
		return types.OperationLogEntry{}, fmt.Errorf("parsing host id %q: %w", doc.HostID, err)
	}
	entry := types.OperationLogEntry{
		Timestamp: doc.Timestamp,
		HostID:    hostID,
		HoardName: doc.HoardName,
		Direction: types.Direction(doc.Direction),
		PerPile:   make(map[string]types.PileLogEntry, len(doc.PerPile)),
		Version:   types.SchemaV2,
	}
	for pileName, pile := range doc.PerPile {
		files := make(map[string]types.FileLogEntry, len(pile.Files))
		for relPath, f := range pile.Files {
			prior, err := types.ParseChecksum(f.PriorChecksum)
			if err != nil {
				return types.OperationLogEntry{}, fmt.Errorf("pile %q, file %q: %w", pileName, relPath, err)
			}
			next, err := types.ParseChecksum(f.NewChecksum)
			if err != nil {
				return types.OperationLogEntry{}, fmt.Errorf("pile %q, file %q: %w", pileName, relPath, err)
			}
			fileEntry := types.FileLogEntry{Action: types.Action(f.Action)}
			if f.PriorChecksum != "" {
				fileEntry.PriorChecksum = &prior
			}
			if f.NewChecksum != "" {
				fileEntry.NewChecksum = &next
			}
			files[relPath] = fileEntry
		}
		entry.PerPile[pileName] = types.PileLogEntry{ChosenPath: pile.ChosenPath, Files: files}
	}
	return entry, nil
}

// upgradeV1 converts a v1 document to the current entry shape. Per-file
// actions are unrecoverable from a single v1 file in isolation - they
// depend on every operation that came before it for this hoard - so a
// bare conversion marks every file types.ActionUnchanged. Sequence-aware
// upgrades that reconstruct real actions go through Upgrade, which walks
// the whole history in timestamp order.
func upgradeV1(doc v1Document) (types.OperationLogEntry, error) {
	direction := types.DirectionRestore
	if doc.IsBackup {
		direction = types.DirectionBackup
	}
	entry := types.OperationLogEntry{
		Timestamp: doc.Timestamp,
		HoardName: doc.HoardName,
		Direction: direction,
		PerPile:   make(map[string]types.PileLogEntry, len(doc.Piles)),
		Version:   types.SchemaV1,
	}
	for pileName, pile := range doc.Piles {
		files := make(map[string]types.FileLogEntry, len(pile.Files))
		for relPath, checksumStr := range pile.Files {
			checksum, err := types.ParseChecksum(checksumStr)
			if err != nil {
				return types.OperationLogEntry{}, fmt.Errorf("pile %q, file %q: %w", pileName, relPath, err)
			}
			files[relPath] = types.FileLogEntry{NewChecksum: &checksum, Action: types.ActionUnchanged}
		}
		entry.PerPile[pileName] = types.PileLogEntry{Files: files}
	}
	return entry, nil
}
