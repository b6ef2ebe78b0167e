// Package watcher implements a polling directory watcher. On every
// tick it walks the watched tree, records each regular file's
// modification time and size, and emits an event for everything that
// changed since the previous walk.
package watcher

import (
	"os"
	"path/filepath"
	"time"
)

// UnlimitedDepth disables the recursion depth limit.
const UnlimitedDepth = -1

// FileRecord is one regular file's observable state at snapshot time.
type FileRecord struct {
	ModTime time.Time
	Size    int64
}

// Snapshot maps absolute file paths to their records. Directories are
// never recorded; only regular files appear as keys.
type Snapshot map[string]FileRecord

// Options configures a Watcher.
type Options struct {
	// Recursive descends into subdirectories.
	Recursive bool
	// Interval is the delay between polls.
	Interval time.Duration
	// MaxDepth limits recursion. Depth 0 is the watch root itself;
	// UnlimitedDepth removes the limit.
	MaxDepth int
}

// DefaultOptions returns the options used when the caller does not
// care: recursive, half-second polls, no depth limit.
func DefaultOptions() Options {
	return Options{
		Recursive: true,
		Interval:  500 * time.Millisecond,
		MaxDepth:  UnlimitedDepth,
	}
}

// Capture walks root and records every reachable regular file.
// Unreadable directories and files that vanish mid-walk are skipped: a
// partial snapshot beats no snapshot.
func Capture(root string, opts Options) Snapshot {
	snap := make(Snapshot)
	capture(root, opts, 0, snap)
	return snap
}

func capture(dir string, opts Options, depth int, snap Snapshot) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if opts.Recursive && (opts.MaxDepth < 0 || depth < opts.MaxDepth) {
				capture(path, opts, depth+1, snap)
			}
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		snap[path] = FileRecord{ModTime: info.ModTime(), Size: info.Size()}
	}
}
