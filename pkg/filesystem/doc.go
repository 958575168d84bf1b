// Package filesystem provides concrete implementations of the
// hoardfs.FS interface: one backed by the real OS filesystem, one backed
// by afero for production and for in-memory tests.
package filesystem
