//go:build !windows

package core

// IsReparsePoint is always false outside Windows; symlinks are caught by
// Lstat mode bits there.
func IsReparsePoint(string) bool { return false }

// LongPath returns path unchanged outside Windows.
func LongPath(path string) string { return path }
