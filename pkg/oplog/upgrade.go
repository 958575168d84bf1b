package oplog

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/paths"
	"github.com/shadow53/hoard-go/pkg/types"
)

type located struct {
	path   string
	hostID uuid.UUID
	entry  types.OperationLogEntry
}

// perPileChecksums tracks, for one hoard, what each pile-relative path
// last checksummed to. A present key with a nil value means the file
// existed at some point and was since deleted; an absent key means the
// file has never been seen.
type perPileChecksums map[string]map[string]*types.Checksum

// Upgrade rewrites every v1 log file under p.HistoryRoot() to the
// current schema, in place, preserving each file's name (and therefore
// its timestamp). Per-file actions for upgraded entries are reconstructed
// from the full history: every logged operation, across every host, is
// replayed in timestamp order to reconstruct what each file's checksum
// was immediately before each v1 entry. It returns the number of files
// rewritten.
func Upgrade(fsys hoardfs.FS, p *paths.Paths) (int, error) {
	all, err := collectAllOperations(fsys, p)
	if err != nil {
		return 0, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].entry.Timestamp.Before(all[j].entry.Timestamp)
	})

	state := make(map[string]perPileChecksums)
	upgraded := 0
	for i := range all {
		loc := &all[i]
		hoardState := state[loc.entry.HoardName]
		if hoardState == nil {
			hoardState = perPileChecksums{}
			state[loc.entry.HoardName] = hoardState
		}

		if loc.entry.Version == types.SchemaV1 {
			upgradedEntry := reconstructActions(loc.entry, hoardState)
			if err := Write(fsys, loc.path, upgradedEntry); err != nil {
				return upgraded, err
			}
			loc.entry = upgradedEntry
			upgraded++
		}
		advanceChecksums(hoardState, loc.entry)
	}
	return upgraded, nil
}

func collectAllOperations(fsys hoardfs.FS, p *paths.Paths) ([]located, error) {
	hosts, err := ListHosts(fsys, p.HistoryRoot())
	if err != nil {
		return nil, err
	}

	var all []located
	for _, host := range hosts {
		hoards, err := ListHoards(fsys, p.HistoryRoot(), host.String())
		if err != nil {
			return nil, err
		}
		for _, hoard := range hoards {
			files, err := ListLogFiles(fsys, p.HistoryDir(host.String(), hoard))
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				entry, err := Read(fsys, f)
				if err != nil {
					return nil, err
				}
				all = append(all, located{path: f, hostID: host, entry: entry})
			}
		}
	}
	return all, nil
}

// reconstructActions assigns a real per-file Action to a flattened v1
// entry by comparing it against the running checksum state built from
// every earlier operation for this hoard, and folds in deletions for
// any file the prior state knew about that is now absent.
func reconstructActions(entry types.OperationLogEntry, state perPileChecksums) types.OperationLogEntry {
	upgraded := entry
	upgraded.Version = types.SchemaV2
	upgraded.PerPile = make(map[string]types.PileLogEntry, len(entry.PerPile))

	pileNames := make(map[string]bool)
	for name := range entry.PerPile {
		pileNames[name] = true
	}
	for name := range state {
		pileNames[name] = true
	}

	for pileName := range pileNames {
		pileState := state[pileName]
		curPile, hasCur := entry.PerPile[pileName]
		seen := make(map[string]bool)
		files := make(map[string]types.FileLogEntry)

		if hasCur {
			for relPath, f := range curPile.Files {
				seen[relPath] = true
				prev, everSeen := pileState[relPath]
				switch {
				case !everSeen || prev == nil:
					files[relPath] = types.FileLogEntry{NewChecksum: f.NewChecksum, Action: types.ActionCreate}
				case f.NewChecksum != nil && prev.Equal(*f.NewChecksum):
					files[relPath] = types.FileLogEntry{PriorChecksum: prev, NewChecksum: f.NewChecksum, Action: types.ActionUnchanged}
				default:
					files[relPath] = types.FileLogEntry{PriorChecksum: prev, NewChecksum: f.NewChecksum, Action: types.ActionModify}
				}
			}
		}

		for relPath, prev := range pileState {
			if seen[relPath] || prev == nil {
				continue
			}
			files[relPath] = types.FileLogEntry{PriorChecksum: prev, Action: types.ActionDelete}
		}

		if len(files) > 0 {
			upgraded.PerPile[pileName] = types.PileLogEntry{ChosenPath: curPile.ChosenPath, Files: files}
		}
	}
	return upgraded
}

func advanceChecksums(state perPileChecksums, entry types.OperationLogEntry) {
	for pileName, pile := range entry.PerPile {
		pileState := state[pileName]
		if pileState == nil {
			pileState = map[string]*types.Checksum{}
			state[pileName] = pileState
		}
		for relPath, f := range pile.Files {
			if f.Action == types.ActionDelete {
				pileState[relPath] = nil
				continue
			}
			if f.NewChecksum != nil {
				c := *f.NewChecksum
				pileState[relPath] = &c
			}
		}
	}
}
