package filesystem

import (
	"io"
	"io/fs"
	"os"

	"github.com/shadow53/hoard-go/pkg/hoardfs"
	"github.com/spf13/afero"
)

// aferoFS adapts an afero.Fs to hoardfs.FS. Production code wraps
// afero.NewOsFs(); tests wrap afero.NewMemMapFs() to exercise the
// walker/hasher/checker/copier without touching disk.
type aferoFS struct {
	fs afero.Fs
}

// NewAfero wraps an afero.Fs as a hoardfs.FS.
func NewAfero(fs afero.Fs) hoardfs.FS {
	return &aferoFS{fs: fs}
}

// NewMemMap returns an in-memory hoardfs.FS suitable for tests.
func NewMemMap() hoardfs.FS {
	return &aferoFS{fs: afero.NewMemMapFs()}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) { return a.fs.Stat(name) }

// Lstat only does something different from Stat on backends implementing
// afero.Lstater (the OS backend); MemMapFs falls through to Stat.
func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if lf, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lf.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

func (a *aferoFS) Open(name string) (io.ReadCloser, error) { return a.fs.Open(name) }

func (a *aferoFS) Create(name string) (io.WriteCloser, error) {
	return a.fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error { return a.fs.MkdirAll(path, perm) }
func (a *aferoFS) Remove(name string) error                     { return a.fs.Remove(name) }
func (a *aferoFS) RemoveAll(path string) error                  { return a.fs.RemoveAll(path) }
func (a *aferoFS) Rename(oldpath, newpath string) error         { return a.fs.Rename(oldpath, newpath) }
func (a *aferoFS) Chmod(name string, mode fs.FileMode) error    { return a.fs.Chmod(name, mode) }

// Symlink simulates a symlink on backends without native support (notably
// MemMapFs) by writing the target path as the file's content, tagged with
// ModeSymlink. Backends implementing afero.Linker (the OS backend) get a
// real symlink instead.
func (a *aferoFS) Symlink(oldname, newname string) error {
	if l, ok := a.fs.(afero.Linker); ok {
		return l.SymlinkIfPossible(oldname, newname)
	}
	return afero.WriteFile(a.fs, newname, []byte(oldname), 0o777|os.ModeSymlink)
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if l, ok := a.fs.(afero.LinkReader); ok {
		return l.ReadlinkIfPossible(name)
	}
	data, err := afero.ReadFile(a.fs, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
