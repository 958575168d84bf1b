// Package oplog reads and writes the per-host, per-hoard operation log
// files. Every log file is a YAML document with a leading version tag;
// the reader accepts both schema versions in use, the writer only ever
// emits the current one.
package oplog
