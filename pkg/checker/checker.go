package checker

import (
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/types"
)

// PileState is the live state the checker needs for one pile: which
// path the Condition Resolver chose for it this run, and the current
// checksum of every file the caller has hashed in the pile's hoard tree,
// whichever direction this run copies.
type PileState struct {
	PileName   string
	ChosenPath string
	Current    map[string]types.Checksum
}

// Input bundles everything CheckAll needs for one hoard.
type Input struct {
	HoardName    string
	Piles        []PileState
	LatestLocal  *types.OperationLogEntry
	LatestRemote *types.OperationLogEntry
}

// CheckAll runs the three checks in order, returning the first failure.
// Callers pass --force by skipping this call entirely.
func CheckAll(in Input) error {
	if err := checkLastPaths(in); err != nil {
		return err
	}
	if err := checkRemoteOperation(in); err != nil {
		return err
	}
	if err := checkUnexpectedChange(in); err != nil {
		return err
	}
	return nil
}

// checkLastPaths aborts if the path the Condition Resolver chose for a
// pile this run differs from the path recorded the last time this host
// ran an operation on this hoard - the active environment changed under
// it.
func checkLastPaths(in Input) error {
	if in.LatestLocal == nil {
		return nil
	}
	for _, pile := range in.Piles {
		last, ok := in.LatestLocal.PerPile[pile.PileName]
		if !ok {
			continue
		}
		if last.ChosenPath != pile.ChosenPath {
			return herr.Newf(herr.ErrLastPathsMismatch,
				"pile %q of hoard %q resolved to %q this run, but the last operation used %q",
				pile.PileName, in.HoardName, pile.ChosenPath, last.ChosenPath).
				WithDetails(map[string]interface{}{
					"hoard": in.HoardName, "pile": pile.PileName,
					"previous_path": last.ChosenPath, "current_path": pile.ChosenPath,
				})
		}
	}
	return nil
}

// checkRemoteOperation aborts if another host has touched this hoard
// more recently, or with different results, than this host's own last
// operation.
func checkRemoteOperation(in Input) error {
	if in.LatestRemote == nil {
		return nil
	}
	if in.LatestLocal == nil {
		return herr.Newf(herr.ErrRemoteOperation,
			"hoard %q has remote operations recorded but none locally - restore first", in.HoardName).
			WithDetail("hoard", in.HoardName)
	}
	if in.LatestRemote.Timestamp.After(in.LatestLocal.Timestamp) {
		return herr.Newf(herr.ErrRemoteOperation,
			"hoard %q was changed remotely at %s, after this host's last operation at %s",
			in.HoardName, in.LatestRemote.Timestamp, in.LatestLocal.Timestamp).
			WithDetails(map[string]interface{}{
				"hoard": in.HoardName, "remote_timestamp": in.LatestRemote.Timestamp,
				"local_timestamp": in.LatestLocal.Timestamp,
			})
	}
	if mismatch := firstChecksumMismatch(in.LatestLocal, in.LatestRemote); mismatch != "" {
		return herr.Newf(herr.ErrRemoteOperation,
			"hoard %q has remote checksums that differ from this host's last operation (first seen at %s) - restore to apply remote changes",
			in.HoardName, mismatch).
			WithDetails(map[string]interface{}{"hoard": in.HoardName, "path": mismatch})
	}
	return nil
}

// checkUnexpectedChange aborts if the hoard tree no longer matches what
// the last local operation claimed it left behind - someone touched it
// outside the tool (spec §4.7 #3).
func checkUnexpectedChange(in Input) error {
	if in.LatestLocal == nil {
		return nil
	}
	for _, pile := range in.Piles {
		last, ok := in.LatestLocal.PerPile[pile.PileName]
		if !ok {
			continue
		}
		for relPath, f := range last.Files {
			if f.NewChecksum == nil {
				continue
			}
			current, ok := pile.Current[relPath]
			if !ok {
				return herr.Newf(herr.ErrUnexpectedChange,
					"pile %q of hoard %q: %q was recorded as present but is now missing",
					pile.PileName, in.HoardName, relPath).
					WithDetails(map[string]interface{}{"hoard": in.HoardName, "pile": pile.PileName, "path": relPath})
			}
			if !current.Equal(*f.NewChecksum) {
				return herr.Newf(herr.ErrUnexpectedChange,
					"pile %q of hoard %q: %q changed outside of hoard since the last operation",
					pile.PileName, in.HoardName, relPath).
					WithDetails(map[string]interface{}{"hoard": in.HoardName, "pile": pile.PileName, "path": relPath})
			}
		}
	}
	return nil
}

// firstChecksumMismatch returns the first pile-relative path (prefixed
// by pile name) in remote's entry whose final checksum differs from, or
// is absent in, local's entry; a pile absent locally is returned as its
// bare name. It returns "" if every path in remote's entry agrees.
func firstChecksumMismatch(local, remote *types.OperationLogEntry) string {
	for pileName, remotePile := range remote.PerPile {
		localPile, ok := local.PerPile[pileName]
		if !ok {
			return pileName
		}
		for relPath, remoteFile := range remotePile.Files {
			localFile, ok := localPile.Files[relPath]
			if !ok {
				return pileName + "/" + relPath
			}
			if !checksumEqual(localFile.NewChecksum, remoteFile.NewChecksum) {
				return pileName + "/" + relPath
			}
		}
	}
	return ""
}

func checksumEqual(a, b *types.Checksum) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
