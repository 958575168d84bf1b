package walker

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/shadow53/hoard-go/pkg/types"
)

// Walker enumerates a pile's root into a stable sequence of HoardItems.
type Walker struct {
	fs hoardfs.FS
}

// New builds a Walker over the given filesystem.
func New(fsys hoardfs.FS) *Walker {
	return &Walker{fs: fsys}
}

// Walk yields root's contents depth-first, lexicographic by raw byte
// sequence within each directory, skipping anything matched by
// ignoreGlobs.
func (w *Walker) Walk(root string, ignoreGlobs []string) ([]types.HoardItem, error) {
	matcher := newIgnoreMatcher(ignoreGlobs)

	rootInfo, err := w.fs.Lstat(root)
	if err != nil {
		return nil, herr.Wrapf(err, herr.ErrIoFailure, "stat %s", root)
	}

	if rootInfo.Mode()&fs.ModeSymlink != 0 || !rootInfo.IsDir() {
		statInfo, err := w.fs.Stat(root)
		if err != nil {
			return nil, herr.Wrapf(err, herr.ErrIoFailure, "stat %s", root)
		}
		if !statInfo.IsDir() {
			return []types.HoardItem{{
				RelPath: "",
				Kind:    types.ItemFile,
				Size:    statInfo.Size(),
				Mode:    statInfo.Mode(),
			}}, nil
		}
	}

	var items []types.HoardItem
	if err := w.walkDir(root, "", matcher, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (w *Walker) walkDir(absDir, relDir string, matcher *ignoreMatcher, items *[]types.HoardItem) error {
	entries, err := w.fs.ReadDir(absDir)
	if err != nil {
		return herr.Wrapf(err, herr.ErrIoFailure, "reading directory %s", absDir)
	}

	names := make([]string, len(entries))
	byName := make(map[string]fs.DirEntry, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
		byName[e.Name()] = e
	}
	sort.Strings(names)

	for _, name := range names {
		relPath := name
		if relDir != "" {
			relPath = path.Join(relDir, name)
		}
		absPath := filepath.Join(absDir, name)

		if matcher.matches(relPath) {
			continue
		}

		lstatInfo, err := w.fs.Lstat(absPath)
		if err != nil {
			return herr.Wrapf(err, herr.ErrIoFailure, "stat %s", absPath)
		}

		if lstatInfo.Mode()&fs.ModeSymlink != 0 {
			statInfo, err := w.fs.Stat(absPath)
			if err != nil {
				return herr.Wrapf(err, herr.ErrIoFailure, "stat symlink target %s", absPath)
			}
			if statInfo.IsDir() {
				// A symlinked directory is never recursed into.
				*items = append(*items, types.HoardItem{RelPath: relPath, Kind: types.ItemSymlink, Mode: lstatInfo.Mode()})
				continue
			}
			*items = append(*items, types.HoardItem{RelPath: relPath, Kind: types.ItemFile, Size: statInfo.Size(), Mode: statInfo.Mode()})
			continue
		}

		if lstatInfo.IsDir() {
			*items = append(*items, types.HoardItem{RelPath: relPath, Kind: types.ItemDir, Mode: lstatInfo.Mode()})
			if err := w.walkDir(absPath, relPath, matcher, items); err != nil {
				return err
			}
			continue
		}

		*items = append(*items, types.HoardItem{RelPath: relPath, Kind: types.ItemFile, Size: lstatInfo.Size(), Mode: lstatInfo.Mode()})
	}

	return nil
}
