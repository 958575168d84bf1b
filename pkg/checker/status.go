package checker

import "github.com/shadow53/hoard-go/pkg/types"

// Classification is the non-mutating superset verdict the status
// command reports for one hoard.
type Classification string

const (
	StatusClean             Classification = "clean"
	StatusModifiedLocally   Classification = "modified locally"
	StatusModifiedRemotely  Classification = "modified remotely"
	StatusMixedChanges      Classification = "mixed changes"
	StatusUnexpectedChanges Classification = "unexpected changes"
)

// StatusPileState is the live state status needs for one pile: both
// sides of the copy, hashed independently, so drift can be attributed
// to "the system tree changed" vs "the hoard copy itself changed".
type StatusPileState struct {
	PileName      string
	CurrentSystem map[string]types.Checksum
	CurrentHoard  map[string]types.Checksum
}

// StatusInput bundles everything Status needs for one hoard.
type StatusInput struct {
	HoardName    string
	Piles        []StatusPileState
	LatestLocal  *types.OperationLogEntry
	LatestRemote *types.OperationLogEntry
}

// Status classifies a hoard without aborting anything. Right after any
// successful operation the system tree and the hoard copy agree, both
// equal to the logged NewChecksum; Status looks at which side(s) have
// since drifted from that shared baseline.
func Status(in StatusInput) Classification {
	if in.LatestLocal == nil {
		return StatusClean
	}

	localDrift := false
	hoardDrift := false
	for _, pile := range in.Piles {
		last, ok := in.LatestLocal.PerPile[pile.PileName]
		if !ok {
			continue
		}
		for relPath, f := range last.Files {
			if f.NewChecksum == nil {
				continue
			}
			if drifted(pile.CurrentSystem, relPath, *f.NewChecksum) {
				localDrift = true
			}
			if drifted(pile.CurrentHoard, relPath, *f.NewChecksum) {
				hoardDrift = true
			}
		}
	}

	remoteDrift := in.LatestRemote != nil &&
		(in.LatestRemote.Timestamp.After(in.LatestLocal.Timestamp) ||
			firstChecksumMismatch(in.LatestLocal, in.LatestRemote) != "")

	switch {
	case hoardDrift:
		return StatusUnexpectedChanges
	case localDrift && remoteDrift:
		return StatusMixedChanges
	case localDrift:
		return StatusModifiedLocally
	case remoteDrift:
		return StatusModifiedRemotely
	default:
		return StatusClean
	}
}

func drifted(current map[string]types.Checksum, relPath string, expected types.Checksum) bool {
	got, ok := current[relPath]
	if !ok {
		return true
	}
	return !got.Equal(expected)
}
