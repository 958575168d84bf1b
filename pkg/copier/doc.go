// Package copier streams a walker's output from one pile root to
// another, in either direction. It copies atomically
// (temp file + rename), sets permissions last, and never touches a
// destination path that isn't part of the source walk.
package copier
