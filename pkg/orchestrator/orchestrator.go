package orchestrator

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shadow53/hoard-go/pkg/checker"
	"github.com/shadow53/hoard-go/pkg/condition"
	"github.com/shadow53/hoard-go/pkg/copier"
	"github.com/shadow53/hoard-go/pkg/environment"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/oplog"
	"github.com/shadow53/hoard-go/pkg/paths"
	"github.com/shadow53/hoard-go/pkg/types"
	"github.com/shadow53/hoard-go/pkg/walker"
	"golang.org/x/sync/errgroup"
)

// Stage names one point in the per-invocation state machine.
type Stage string

const (
	StageLoaded        Stage = "loaded"
	StageEnvResolved   Stage = "env_resolved"
	StagePilesResolved Stage = "piles_resolved"
	StageChecksPassed  Stage = "checks_passed"
	StageExecuting     Stage = "executing"
	StageJournaled     Stage = "journaled"
	StageDone          Stage = "done"
)

// Orchestrator holds everything a run needs that does not change between
// hoards: the filesystem, resolved paths, the loaded config, this host's
// identity, and the live host facts the Env Evaluator reads.
type Orchestrator struct {
	fs     hoardfs.FS
	paths  *paths.Paths
	config *types.Config
	hostID uuid.UUID
	host   environment.Host
}

// New builds an Orchestrator for one invocation.
func New(fsys hoardfs.FS, p *paths.Paths, config *types.Config, hostID uuid.UUID, host environment.Host) *Orchestrator {
	return &Orchestrator{fs: fsys, paths: p, config: config, hostID: hostID, host: host}
}

// RunOptions configures one backup or restore invocation.
type RunOptions struct {
	Direction types.Direction

	// HoardNames restricts the run to these hoards; empty means all
	// configured hoards, in sorted order.
	HoardNames []string

	// Force skips the Checker stage but still journals the result.
	Force bool
}

// PileResult is one pile's outcome within a hoard run.
type PileResult struct {
	ChosenPath string
	Files      map[string]types.FileLogEntry
}

// HoardResult is one hoard's outcome. Skipped is true when no pile in the
// hoard had a matching condition this run: a warning was logged and
// nothing was read or written for this hoard.
type HoardResult struct {
	HoardName string
	Skipped   bool
	Piles     map[string]PileResult
}

// Run executes opts.Direction against every named hoard, in order,
// journaling a new operation per hoard on success. The first hoard that
// fails any stage aborts the whole run; hoards already journaled stay
// journaled, since failure is per-invocation, not retroactive.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) ([]HoardResult, error) {
	active := environment.Evaluate(o.config.Environments, o.host)

	names := opts.HoardNames
	if len(names) == 0 {
		names = make([]string, 0, len(o.config.Hoards))
		for name := range o.config.Hoards {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	results := make([]HoardResult, 0, len(names))
	for _, name := range names {
		hoard, ok := o.config.Hoards[name]
		if !ok {
			return results, herr.Newf(herr.ErrNotFound, "no hoard named %q is configured", name).WithDetail("hoard", name)
		}
		res, err := o.runHoard(ctx, hoard, active, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

type pileInfo struct {
	name       string
	chosenPath string
	config     types.PileConfig
}

func (o *Orchestrator) runHoard(ctx context.Context, hoard *types.Hoard, active types.EnvironmentSet, opts RunOptions) (HoardResult, error) {
	piles, err := o.resolvePiles(hoard, active)
	if err != nil {
		return HoardResult{}, withStage(err, StagePilesResolved)
	}
	if len(piles) == 0 {
		log.Warn().Str("hoard", hoard.Name).Msg("no pile matched the active environment, skipping hoard")
		return HoardResult{HoardName: hoard.Name, Skipped: true}, nil
	}

	latestLocal, hasLocal, err := oplog.LatestLocal(o.fs, o.paths, o.hostID, hoard.Name)
	if err != nil {
		return HoardResult{}, withStage(err, StagePilesResolved)
	}
	latestRemote, hasRemote, err := oplog.LatestRemote(o.fs, o.paths, o.hostID, hoard.Name)
	if err != nil {
		return HoardResult{}, withStage(err, StagePilesResolved)
	}

	walks, err := o.walkPiles(ctx, hoard.Name, piles, opts.Direction)
	if err != nil {
		return HoardResult{}, withStage(err, StagePilesResolved)
	}

	if !opts.Force {
		in := checker.Input{HoardName: hoard.Name}
		if hasLocal {
			in.LatestLocal = &latestLocal
		}
		if hasRemote {
			in.LatestRemote = &latestRemote
		}
		for _, pw := range walks {
			current, err := o.hashCurrent(ctx, hoard.Name, pw)
			if err != nil {
				return HoardResult{}, withStage(err, StageChecksPassed)
			}
			in.Piles = append(in.Piles, checker.PileState{
				PileName:   pw.pile.name,
				ChosenPath: pw.pile.chosenPath,
				Current:    current,
			})
		}
		if err := checker.CheckAll(in); err != nil {
			return HoardResult{}, withStage(err, StageChecksPassed)
		}
	}

	pileResults, err := o.copyPiles(ctx, hoard.Name, opts.Direction, walks, latestLocal, hasLocal)
	if err != nil {
		return HoardResult{}, withStage(err, StageExecuting)
	}

	entry := types.OperationLogEntry{
		Timestamp: nextTimestamp(latestLocal, hasLocal),
		HostID:    o.hostID,
		HoardName: hoard.Name,
		Direction: opts.Direction,
		PerPile:   make(map[string]types.PileLogEntry, len(pileResults)),
	}
	for name, res := range pileResults {
		entry.PerPile[name] = types.PileLogEntry{ChosenPath: res.ChosenPath, Files: res.Files}
	}

	logPath := o.paths.OperationLogPath(o.hostID.String(), hoard.Name, entry.Timestamp)
	if err := oplog.Write(o.fs, logPath, entry); err != nil {
		return HoardResult{}, withStage(err, StageJournaled)
	}

	return HoardResult{HoardName: hoard.Name, Piles: pileResults}, nil
}

// resolvePiles runs the Condition Resolver over every pile in hoard,
// skipping (with a warning) any pile with no matching condition. An
// ambiguous condition aborts the whole hoard with no I/O performed.
func (o *Orchestrator) resolvePiles(hoard *types.Hoard, active types.EnvironmentSet) ([]pileInfo, error) {
	lookup := environment.Lookup(o.host, o.config.Defaults)
	expand := condition.Expander(lookup)

	names := make([]string, 0, len(hoard.Piles))
	for name := range hoard.Piles {
		names = append(names, name)
	}
	sort.Strings(names)

	piles := make([]pileInfo, 0, len(names))
	for _, name := range names {
		pile := hoard.Piles[name]
		chosen, ok, err := condition.Resolve(pile.Conditions, active, o.config.Exclusivity, expand)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Warn().Str("hoard", hoard.Name).Str("pile", name).Msg("no condition matched, skipping pile")
			continue
		}
		piles = append(piles, pileInfo{
			name:       name,
			chosenPath: chosen,
			config:     o.config.EffectivePileConfig(hoard.Name, pile),
		})
	}
	return piles, nil
}

type pileWalk struct {
	pile       pileInfo
	sourceRoot string
	destRoot   string
	items      []types.HoardItem
}

// rootsFor swaps source and destination by direction: backup reads from
// the resolved system path and writes into the hoard; restore does the
// reverse.
func rootsFor(direction types.Direction, chosenPath, hoardPath string) (source, dest string) {
	if direction == types.DirectionRestore {
		return hoardPath, chosenPath
	}
	return chosenPath, hoardPath
}

// walkPiles runs the Path Tree Walker over every pile's source root
// concurrently; per §5, per-pile work may run in parallel while ordering
// within each pile stays the walker's own deterministic order.
func (o *Orchestrator) walkPiles(ctx context.Context, hoardName string, piles []pileInfo, direction types.Direction) ([]pileWalk, error) {
	walks := make([]pileWalk, len(piles))
	g, _ := errgroup.WithContext(ctx)

	for i, p := range piles {
		i, p := i, p
		hoardPath := o.paths.PilePath(hoardName, p.name, "")
		source, dest := rootsFor(direction, p.chosenPath, hoardPath)
		g.Go(func() error {
			w := walker.New(o.fs)
			items, err := w.Walk(source, p.config.Ignore)
			if err != nil {
				return err
			}
			walks[i] = pileWalk{pile: p, sourceRoot: source, destRoot: dest, items: items}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return walks, nil
}

// hashCurrent hashes pw's hoard-side tree in either direction, giving
// the Checker the "current" side it compares against the last local
// operation: an edit made inside the hoard outside the tool is caught
// before a backup overwrites it or a restore copies it out. A hoard tree
// that does not exist yet hashes to an empty map.
func (o *Orchestrator) hashCurrent(ctx context.Context, hoardName string, pw pileWalk) (map[string]types.Checksum, error) {
	return o.hashSide(ctx, o.paths.PilePath(hoardName, pw.pile.name, ""), pw.pile.config)
}

// copyPiles runs the Copy Engine over every pile concurrently.
func (o *Orchestrator) copyPiles(ctx context.Context, hoardName string, direction types.Direction, walks []pileWalk, latestLocal types.OperationLogEntry, hasLocal bool) (map[string]PileResult, error) {
	results := make([]PileResult, len(walks))
	g, gctx := errgroup.WithContext(ctx)

	for i, pw := range walks {
		i, pw := i, pw
		g.Go(func() error {
			opts := copier.Options{
				Direction:         direction,
				FilePermissions:   pw.pile.config.FilePermissions.ToMode(),
				FolderPermissions: pw.pile.config.FolderPermissions.ToMode(),
				PriorChecksums:    priorChecksumsFor(pw.pile.name, latestLocal, hasLocal),
				Algorithm:         pw.pile.config.HashAlgorithm,
			}
			files, err := copier.Copy(gctx, o.fs, pw.sourceRoot, pw.destRoot, pw.items, opts)
			if err != nil {
				return err
			}
			results[i] = PileResult{ChosenPath: pw.pile.chosenPath, Files: files}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]PileResult, len(walks))
	for i, pw := range walks {
		out[pw.pile.name] = results[i]
	}
	return out, nil
}

// nextTimestamp returns the log timestamp for a new entry. Log filenames
// have second resolution; two runs on the same host within the same
// second would otherwise collide and silently overwrite each other's
// log file, so no two log files for the same host and hoard may share
// a timestamp. Bumping forward by a second when necessary keeps every
// host's history strictly increasing.
func nextTimestamp(latestLocal types.OperationLogEntry, hasLocal bool) time.Time {
	now := time.Now().UTC().Truncate(time.Second)
	if hasLocal && !now.After(latestLocal.Timestamp) {
		return latestLocal.Timestamp.Add(time.Second)
	}
	return now
}

func priorChecksumsFor(pileName string, latestLocal types.OperationLogEntry, hasLocal bool) map[string]types.Checksum {
	out := map[string]types.Checksum{}
	if !hasLocal {
		return out
	}
	pile, ok := latestLocal.PerPile[pileName]
	if !ok {
		return out
	}
	for relPath, f := range pile.Files {
		if f.NewChecksum != nil {
			out[relPath] = *f.NewChecksum
		}
	}
	return out
}

// withStage attaches the failing stage to a *herr.HoardError as context,
// without changing its code: CLI exit-code mapping keys off the original
// code, the stage is diagnostic detail only.
func withStage(err error, stage Stage) error {
	if err == nil {
		return nil
	}
	if he, ok := err.(*herr.HoardError); ok {
		return he.WithDetail("stage", string(stage))
	}
	return err
}
