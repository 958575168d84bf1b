// Package hasher streams hoard items through SHA-256 or MD5, bounded to
// N in-flight hashes per pile.
package hasher

import (
	"context"
	"crypto/md5"
	"io"
	"runtime"

	sha256simd "github.com/minio/sha256-simd"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/types"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Result pairs a pile-relative path with its computed checksum.
type Result struct {
	RelPath  string
	Checksum types.Checksum
}

// Hasher hashes files found under a pile's root.
type Hasher struct {
	fs          hoardfs.FS
	concurrency int64
}

// New builds a Hasher with the default concurrency limit (the number of
// logical CPUs).
func New(fsys hoardfs.FS) *Hasher {
	return &Hasher{fs: fsys, concurrency: int64(runtime.NumCPU())}
}

// WithConcurrency overrides the default in-flight hash limit.
func (h *Hasher) WithConcurrency(n int) *Hasher {
	if n > 0 {
		h.concurrency = int64(n)
	}
	return h
}

// HashAll hashes every file item under absRoot (absolute path joined
// with each item's RelPath), bounded by h.concurrency. Directory and
// symlink-to-directory items are skipped; the overall yield order is the
// walker's order, reassembled here after concurrent completion.
func (h *Hasher) HashAll(ctx context.Context, absRootFor func(relPath string) string, items []types.HoardItem, algorithm types.HashAlgorithm) ([]Result, error) {
	results := make([]Result, len(items))
	sem := semaphore.NewWeighted(h.concurrency)
	g, gctx := errgroup.WithContext(ctx)

	for i, item := range items {
		if item.Kind != types.ItemFile {
			continue
		}
		i, item := i, item
		if err := sem.Acquire(gctx, 1); err != nil {
			return nil, err
		}
		g.Go(func() error {
			defer sem.Release(1)
			sum, err := h.hashOne(absRootFor(item.RelPath), algorithm)
			if err != nil {
				return err
			}
			results[i] = Result{RelPath: item.RelPath, Checksum: sum}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(items))
	for i, item := range items {
		if item.Kind == types.ItemFile {
			out = append(out, results[i])
		}
	}
	return out, nil
}

func (h *Hasher) hashOne(path string, algorithm types.HashAlgorithm) (types.Checksum, error) {
	f, err := h.fs.Open(path)
	if err != nil {
		return types.Checksum{}, herr.Wrapf(err, herr.ErrIoFailure, "opening %s for hashing", path)
	}
	defer func() { _ = f.Close() }()

	var w io.Writer
	var sumFunc func() []byte

	switch algorithm {
	case types.HashMD5:
		digest := md5.New()
		w = digest
		sumFunc = func() []byte { return digest.Sum(nil) }
	default:
		digest := sha256simd.New()
		w = digest
		sumFunc = func() []byte { return digest.Sum(nil) }
		algorithm = types.HashSHA256
	}

	if _, err := io.Copy(w, f); err != nil {
		return types.Checksum{}, herr.Wrapf(err, herr.ErrIoFailure, "hashing %s", path)
	}

	return types.Checksum{Algorithm: algorithm, Digest: sumFunc()}, nil
}
