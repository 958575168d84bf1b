package orchestrator

import (
	"context"
	"path/filepath"

	"github.com/shadow53/hoard-go/pkg/environment"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/types"
)

// FileDiff is one pile-relative path's drift between the system tree and
// the hoard tree.
type FileDiff struct {
	PileName       string
	RelPath        string
	Change         types.Action
	SystemPath     string
	HoardPath      string
	SystemChecksum *types.Checksum
	HoardChecksum  *types.Checksum
}

// PileDiff is one pile's diff, including its resolved system and hoard
// roots so the caller can locate each side's files.
type PileDiff struct {
	PileName   string
	SystemRoot string
	HoardRoot  string
	Files      []FileDiff
}

// Diff compares the system tree and the hoard tree for hoardName's
// piles, the same way Status does, but at per-file granularity so the
// CLI's diff command can report which paths changed and how.
func (o *Orchestrator) Diff(ctx context.Context, hoardName string) ([]PileDiff, error) {
	hoard, ok := o.config.Hoards[hoardName]
	if !ok {
		return nil, herr.Newf(herr.ErrNotFound, "no hoard named %q is configured", hoardName).WithDetail("hoard", hoardName)
	}

	active := environment.Evaluate(o.config.Environments, o.host)
	piles, err := o.resolvePiles(hoard, active)
	if err != nil {
		return nil, err
	}

	out := make([]PileDiff, 0, len(piles))
	for _, p := range piles {
		hoardPath := o.paths.PilePath(hoard.Name, p.name, "")
		system, err := o.hashSide(ctx, p.chosenPath, p.config)
		if err != nil {
			return nil, err
		}
		hoardSide, err := o.hashSide(ctx, hoardPath, p.config)
		if err != nil {
			return nil, err
		}

		pd := PileDiff{PileName: p.name, SystemRoot: p.chosenPath, HoardRoot: hoardPath}
		for relPath, change := range diffSides(system, hoardSide) {
			pd.Files = append(pd.Files, FileDiff{
				PileName:       p.name,
				RelPath:        relPath,
				Change:         change.action,
				SystemPath:     joinIfAny(p.chosenPath, relPath),
				HoardPath:      joinIfAny(hoardPath, relPath),
				SystemChecksum: change.system,
				HoardChecksum:  change.hoard,
			})
		}
		out = append(out, pd)
	}
	return out, nil
}

type sideDiff struct {
	action types.Action
	system *types.Checksum
	hoard  *types.Checksum
}

// diffSides classifies every path seen on either side into a create (in
// system only), delete (in hoard only), modify (both present, checksums
// differ) or unchanged (both present, checksums equal) action.
func diffSides(system, hoard map[string]types.Checksum) map[string]sideDiff {
	out := make(map[string]sideDiff)
	for relPath, sum := range system {
		s := sum
		if h, ok := hoard[relPath]; ok {
			hc := h
			if s.Equal(h) {
				out[relPath] = sideDiff{action: types.ActionUnchanged, system: &s, hoard: &hc}
			} else {
				out[relPath] = sideDiff{action: types.ActionModify, system: &s, hoard: &hc}
			}
		} else {
			out[relPath] = sideDiff{action: types.ActionCreate, system: &s}
		}
	}
	for relPath, sum := range hoard {
		if _, ok := system[relPath]; ok {
			continue
		}
		h := sum
		out[relPath] = sideDiff{action: types.ActionDelete, hoard: &h}
	}
	return out
}

func joinIfAny(root, relPath string) string {
	if relPath == "" {
		return root
	}
	return filepath.Join(root, relPath)
}
