package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Recursive: true,
		Interval:  20 * time.Millisecond,
		MaxDepth:  UnlimitedDepth,
	}
}

// waitFor reads events until one satisfies the predicate or the
// deadline passes.
func waitFor(t *testing.T, w *Watcher, want Event) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-w.Events:
			if ev == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %+v", want)
		}
	}
}

func TestWatcherEmitsCreate(t *testing.T) {
	root := t.TempDir()
	w := Watch(root, testOptions())
	defer w.Close()

	time.Sleep(50 * time.Millisecond) // let the initial snapshot land

	path := filepath.Join(root, "new.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	waitFor(t, w, Event{Path: path, Op: OpCreate})
}

func TestWatcherEmitsRemove(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "doomed.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	w := Watch(root, testOptions())
	defer w.Close()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.Remove(path))

	waitFor(t, w, Event{Path: path, Op: OpRemove})
}

func TestWatcherEmitsModify(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "grow.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	w := Watch(root, testOptions())
	defer w.Close()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("xxxx"), 0644))

	waitFor(t, w, Event{Path: path, Op: OpModify})
}

func TestWatcherCloseDrainsAndCloses(t *testing.T) {
	root := t.TempDir()
	w := Watch(root, testOptions())

	w.Close()
	w.Close() // second close is a no-op

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Events was not closed after Close")
		}
	}
}

// The queue between producer and consumer is unbounded: many events
// from one cycle arrive even when nobody reads during the poll.
func TestWatcherDoesNotDropBursts(t *testing.T) {
	root := t.TempDir()
	w := Watch(root, testOptions())
	defer w.Close()

	time.Sleep(50 * time.Millisecond)

	const n = 100
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("f%03d.txt", i)
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0644))
	}

	// Give the watcher time to observe everything, then drain.
	time.Sleep(200 * time.Millisecond)

	seen := map[string]bool{}
	timeout := time.After(5 * time.Second)
	for len(seen) < n {
		select {
		case ev := <-w.Events:
			if ev.Op == OpCreate {
				seen[ev.Path] = true
			}
		case <-timeout:
			t.Fatalf("only saw %d of %d created files", len(seen), n)
		}
	}
	assert.Len(t, seen, n)
}
