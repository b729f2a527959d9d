// Package fsum computes the total logical size of a set of paths.
//
// Directories are expanded recursively by a fixed pool of workers sharing a
// job queue. Every physical object, identified by its device and inode, is
// counted once no matter how many hard links or symbolic links lead to it.
// Symbolic links to directories are followed; cycles end when the target
// has already been seen.
package fsum
