package orchestrator

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/shadow53/hoard-go/pkg/checker"
	"github.com/shadow53/hoard-go/pkg/environment"
	"github.com/shadow53/hoard-go/pkg/hasher"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/oplog"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/shadow53/hoard-go/pkg/walker"
)

// HoardStatus is one hoard's non-mutating classification.
type HoardStatus struct {
	HoardName      string
	Skipped        bool
	Classification checker.Classification
}

// Status runs the same comparisons CheckAll would, against both sides of
// the copy instead of just the hoard side a run hashes, so it can
// classify drift without aborting anything.
func (o *Orchestrator) Status(ctx context.Context, hoardNames []string) ([]HoardStatus, error) {
	active := environment.Evaluate(o.config.Environments, o.host)

	names := hoardNames
	if len(names) == 0 {
		names = make([]string, 0, len(o.config.Hoards))
		for name := range o.config.Hoards {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	out := make([]HoardStatus, 0, len(names))
	for _, name := range names {
		hoard, ok := o.config.Hoards[name]
		if !ok {
			return out, herr.Newf(herr.ErrNotFound, "no hoard named %q is configured", name).WithDetail("hoard", name)
		}
		st, err := o.hoardStatus(ctx, hoard, active)
		if err != nil {
			return out, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (o *Orchestrator) hoardStatus(ctx context.Context, hoard *types.Hoard, active types.EnvironmentSet) (HoardStatus, error) {
	piles, err := o.resolvePiles(hoard, active)
	if err != nil {
		return HoardStatus{}, err
	}
	if len(piles) == 0 {
		return HoardStatus{HoardName: hoard.Name, Skipped: true}, nil
	}

	latestLocal, hasLocal, err := oplog.LatestLocal(o.fs, o.paths, o.hostID, hoard.Name)
	if err != nil {
		return HoardStatus{}, err
	}
	latestRemote, hasRemote, err := oplog.LatestRemote(o.fs, o.paths, o.hostID, hoard.Name)
	if err != nil {
		return HoardStatus{}, err
	}

	in := checker.StatusInput{HoardName: hoard.Name}
	if hasLocal {
		in.LatestLocal = &latestLocal
	}
	if hasRemote {
		in.LatestRemote = &latestRemote
	}

	for _, p := range piles {
		hoardPath := o.paths.PilePath(hoard.Name, p.name, "")
		system, err := o.hashSide(ctx, p.chosenPath, p.config)
		if err != nil {
			return HoardStatus{}, err
		}
		hoardSide, err := o.hashSide(ctx, hoardPath, p.config)
		if err != nil {
			return HoardStatus{}, err
		}
		in.Piles = append(in.Piles, checker.StatusPileState{
			PileName:      p.name,
			CurrentSystem: system,
			CurrentHoard:  hoardSide,
		})
	}

	return HoardStatus{HoardName: hoard.Name, Classification: checker.Status(in)}, nil
}

// hashSide walks and hashes one side of a pile's copy (the system path or
// the hoard path), tolerating the side simply not existing yet (e.g. a
// hoard never backed up has no hoard-side tree).
func (o *Orchestrator) hashSide(ctx context.Context, root string, config types.PileConfig) (map[string]types.Checksum, error) {
	if _, err := o.fs.Stat(root); err != nil {
		return map[string]types.Checksum{}, nil
	}

	w := walker.New(o.fs)
	items, err := w.Walk(root, config.Ignore)
	if err != nil {
		return nil, err
	}

	h := hasher.New(o.fs)
	results, err := h.HashAll(ctx, func(relPath string) string {
		return filepath.Join(root, relPath)
	}, items, config.HashAlgorithm)
	if err != nil {
		return nil, err
	}

	out := make(map[string]types.Checksum, len(results))
	for _, r := range results {
		out[r.RelPath] = r.Checksum
	}
	return out, nil
}
