//go:build windows

package core

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

// IsReparsePoint reports whether path is a junction or symlink
// (FILE_ATTRIBUTE_REPARSE_POINT). Lstat does not report every junction as
// a symlink, so the walker must check this before descending.
func IsReparsePoint(path string) bool {
	p, err := windows.UTF16PtrFromString(LongPath(path))
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0
}

// LongPath adds the \\?\ prefix for paths exceeding MAX_PATH.
func LongPath(path string) string {
	if len(path) >= 260 && !strings.HasPrefix(path, `\\?\`) {
		return `\\?\` + filepath.Clean(path)
	}
	return path
}
