package copier

import (
	"context"
	"crypto/md5"
	"hash"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"

	sha256simd "github.com/minio/sha256-simd"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/types"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// hashDigest is the subset of hash.Hash the copier needs while streaming.
type hashDigest = hash.Hash

// backupFileMode and backupDirMode are forced on every file and
// directory written into the hoard during a backup, regardless of the
// pile's configured permissions.
const (
	backupFileMode fs.FileMode = 0o600
	backupDirMode  fs.FileMode = 0o700
)

// Options configures one pile's copy.
type Options struct {
	Direction types.Direction

	// FilePermissions and FolderPermissions are applied on restore only;
	// backup always forces owner-only mode.
	FilePermissions   fs.FileMode
	FolderPermissions fs.FileMode

	// PriorChecksums is the previous authoritative state for this pile,
	// by pile-relative path, used to classify each file's Action. A nil
	// or empty map means every copied file is a Create.
	PriorChecksums map[string]types.Checksum

	Algorithm   types.HashAlgorithm
	Concurrency int
}

// Copy streams every item in items from sourceRoot to destRoot,
// returning the resulting per-file log entries (computed here, in
// PileLogEntry.Files shape, so the operation log writer doesn't need to
// re-hash anything). Any single-file error aborts the
// whole pile; files already written stay as they are, since each one
// was itself written atomically.
func Copy(ctx context.Context, fsys hoardfs.FS, sourceRoot, destRoot string, items []types.HoardItem, opts Options) (map[string]types.FileLogEntry, error) {
	concurrency := int64(opts.Concurrency)
	if concurrency <= 0 {
		concurrency = int64(runtime.NumCPU())
	}

	sem := semaphore.NewWeighted(concurrency)
	g, gctx := errgroup.WithContext(ctx)

	results := make([]types.FileLogEntry, len(items))
	seen := make([]bool, len(items))

	for i, item := range items {
		i, item := i, item
		srcPath := filepath.Join(sourceRoot, item.RelPath)
		destPath := filepath.Join(destRoot, item.RelPath)

		switch item.Kind {
		case types.ItemDir:
			if err := fsys.MkdirAll(destPath, folderMode(opts)); err != nil {
				return nil, herr.Wrapf(err, herr.ErrIoFailure, "creating directory %s", destPath)
			}
			continue
		case types.ItemSymlink:
			if err := sem.Acquire(gctx, 1); err != nil {
				return nil, err
			}
			g.Go(func() error {
				defer sem.Release(1)
				return copySymlink(fsys, srcPath, destPath)
			})
			continue
		}

		if err := sem.Acquire(gctx, 1); err != nil {
			return nil, err
		}
		seen[i] = true
		g.Go(func() error {
			defer sem.Release(1)
			if err := fsys.MkdirAll(filepath.Dir(destPath), folderMode(opts)); err != nil {
				return herr.Wrapf(err, herr.ErrIoFailure, "creating parent directory for %s", destPath)
			}
			checksum, err := copyFile(fsys, srcPath, destPath, fileMode(opts), opts.Algorithm)
			if err != nil {
				return err
			}
			results[i] = buildFileLogEntry(item.RelPath, checksum, opts.PriorChecksums)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make(map[string]types.FileLogEntry, len(items))
	for i, item := range items {
		if seen[i] {
			files[item.RelPath] = results[i]
		}
	}
	markDeletions(files, items, opts.PriorChecksums)
	return files, nil
}

func folderMode(opts Options) fs.FileMode {
	if opts.Direction == types.DirectionBackup {
		return backupDirMode
	}
	return opts.FolderPermissions
}

func fileMode(opts Options) fs.FileMode {
	if opts.Direction == types.DirectionBackup {
		return backupFileMode
	}
	return opts.FilePermissions
}

// copyFile streams src to a temp file beside dest, then renames into
// place, then chmods - permissions are the last operation on the file,
// so a reader never observes a file with its final mode but incomplete
// content.
func copyFile(fsys hoardfs.FS, src, dest string, mode fs.FileMode, algorithm types.HashAlgorithm) (types.Checksum, error) {
	r, err := fsys.Open(src)
	if err != nil {
		return types.Checksum{}, herr.Wrapf(err, herr.ErrIoFailure, "opening %s", src)
	}
	defer func() { _ = r.Close() }()

	tmp := dest + ".tmp"
	w, err := fsys.Create(tmp)
	if err != nil {
		return types.Checksum{}, herr.Wrapf(err, herr.ErrIoFailure, "creating temp file %s", tmp)
	}

	var digest hashDigest
	switch algorithm {
	case types.HashMD5:
		digest = md5.New()
	default:
		digest = sha256simd.New()
		algorithm = types.HashSHA256
	}

	if _, err := io.Copy(io.MultiWriter(w, digest), r); err != nil {
		_ = w.Close()
		_ = fsys.Remove(tmp)
		return types.Checksum{}, herr.Wrapf(err, herr.ErrIoFailure, "copying %s to %s", src, tmp)
	}
	if err := w.Close(); err != nil {
		_ = fsys.Remove(tmp)
		return types.Checksum{}, herr.Wrapf(err, herr.ErrIoFailure, "closing temp file %s", tmp)
	}

	if err := fsys.Rename(tmp, dest); err != nil {
		_ = fsys.Remove(tmp)
		return types.Checksum{}, herr.Wrapf(err, herr.ErrIoFailure, "renaming %s into place at %s", tmp, dest)
	}
	if err := fsys.Chmod(dest, mode); err != nil {
		return types.Checksum{}, herr.Wrapf(err, herr.ErrIoFailure, "setting permissions on %s", dest)
	}

	return types.Checksum{Algorithm: algorithm, Digest: digest.Sum(nil)}, nil
}

func copySymlink(fsys hoardfs.FS, src, dest string) error {
	target, err := fsys.Readlink(src)
	if err != nil {
		return herr.Wrapf(err, herr.ErrIoFailure, "reading symlink %s", src)
	}
	_ = fsys.Remove(dest)
	if err := fsys.Symlink(target, dest); err != nil {
		return herr.Wrapf(err, herr.ErrIoFailure, "creating symlink %s", dest)
	}
	return nil
}

func buildFileLogEntry(relPath string, newChecksum types.Checksum, prior map[string]types.Checksum) types.FileLogEntry {
	entry := types.FileLogEntry{NewChecksum: &newChecksum}
	prev, ok := prior[relPath]
	switch {
	case !ok:
		entry.Action = types.ActionCreate
	case prev.Equal(newChecksum):
		entry.Action = types.ActionUnchanged
		entry.PriorChecksum = &prev
	default:
		entry.Action = types.ActionModify
		entry.PriorChecksum = &prev
	}
	return entry
}

// markDeletions adds a types.ActionDelete entry for every pile-relative
// path that was authoritative before this run but wasn't touched by it.
func markDeletions(files map[string]types.FileLogEntry, items []types.HoardItem, prior map[string]types.Checksum) {
	touched := make(map[string]bool, len(items))
	for _, item := range items {
		touched[item.RelPath] = true
	}
	for relPath, checksum := range prior {
		if touched[relPath] {
			continue
		}
		c := checksum
		files[relPath] = types.FileLogEntry{PriorChecksum: &c, Action: types.ActionDelete}
	}
}
