package sweep

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LastModified returns the modification time of the directory entry
// itself. Edits deep inside the tree do not necessarily change it; the age
// check relies on exactly this value.
func LastModified(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// DirSize sums the sizes of regular files below path, ignoring symlinks.
// An unreadable subtree stops contributing and is reported to sink; the
// rest of the tree is still counted.
func DirSize(path string, sink Sink) int64 {
	if sink == nil {
		sink = NopSink
	}

	var total int64
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			sink.Handle(Event{Kind: EventSizeError, Path: p, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			sink.Handle(Event{Kind: EventSizeError, Path: p, Err: err})
			return nil
		}
		total += info.Size()
		return nil
	})
	return total
}
