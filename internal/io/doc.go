// Package ioutils provides file system utilities shared by the fetch and
// convert pipelines.
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/downloads")
//
//	// Skip work that is already done
//	if ioutils.Exists("/downloads/Game (USA).zip") { ... }
//
// # Selective Cleanup
//
// Remove everything in a directory except files with a wanted extension,
// then drop the directory if nothing is left:
//
//	err := ioutils.RemoveAllExcept("/roms/Game", ".chd")
//	removed, err := ioutils.RemoveIfEmpty("/roms/Game")
package ioutils
