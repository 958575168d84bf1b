package filesystem

import (
	"io"
	"io/fs"
	"os"

	"github.com/shadow53/hoard-go/pkg/hoardfs"
)

// osFS implements hoardfs.FS directly against the OS filesystem.
type osFS struct{}

// NewOS creates a hoardfs.FS backed by the real filesystem.
func NewOS() hoardfs.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error)  { return os.Stat(name) }
func (o *osFS) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

func (o *osFS) Open(name string) (io.ReadCloser, error) { return os.Open(name) }

func (o *osFS) Create(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
func (o *osFS) Remove(name string) error                     { return os.Remove(name) }
func (o *osFS) RemoveAll(path string) error                  { return os.RemoveAll(path) }
func (o *osFS) Rename(oldpath, newpath string) error         { return os.Rename(oldpath, newpath) }
func (o *osFS) Chmod(name string, mode fs.FileMode) error    { return os.Chmod(name, mode) }

func (o *osFS) Symlink(oldname, newname string) error { return os.Symlink(oldname, newname) }
func (o *osFS) Readlink(name string) (string, error)  { return os.Readlink(name) }
