package organize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamancini/ferry/internal/rules"
	"github.com/adamancini/ferry/internal/watcher"
)

func TestHandleCreatedMatchMoves(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "invoice.pdf")
	require.NoError(t, os.WriteFile(src, []byte("pdf"), 0644))

	bills := filepath.Join(tmp, "bills")
	d := NewDispatcher([]rules.Rule{rules.New([]string{"*.pdf"}, bills)})

	d.Handle(watcher.Event{Path: src, Op: watcher.OpCreate})

	_, err := os.Stat(filepath.Join(bills, "invoice.pdf"))
	assert.NoError(t, err, "matched file must end up in the destination")
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "watch root must no longer contain the file")
}

func TestHandleRemovedIsIgnored(t *testing.T) {
	var calls int
	d := NewDispatcher([]rules.Rule{rules.New([]string{"*"}, "anywhere")})
	d.move = func(src, dstDir string) (string, error) {
		calls++
		return "", nil
	}

	d.Handle(watcher.Event{Path: "/watch/gone.pdf", Op: watcher.OpRemove})

	assert.Zero(t, calls, "removed events must not trigger relocation")
}

func TestHandleNoMatch(t *testing.T) {
	var calls int
	d := NewDispatcher([]rules.Rule{rules.New([]string{"*.pdf"}, "bills")})
	d.move = func(src, dstDir string) (string, error) {
		calls++
		return "", nil
	}

	d.Handle(watcher.Event{Path: "/watch/song.mp3", Op: watcher.OpCreate})

	assert.Zero(t, calls)
}

func TestHandleAllMatchingRulesFireInOrder(t *testing.T) {
	var destinations []string
	d := NewDispatcher([]rules.Rule{
		rules.New([]string{"*.pdf"}, "first"),
		rules.New([]string{"*.mp3"}, "skipped"),
		rules.New([]string{"inv*"}, "second"),
	})
	d.move = func(src, dstDir string) (string, error) {
		destinations = append(destinations, dstDir)
		return filepath.Join(dstDir, filepath.Base(src)), nil
	}

	d.Handle(watcher.Event{Path: "/watch/invoice.pdf", Op: watcher.OpModify})

	assert.Equal(t, []string{"first", "second"}, destinations,
		"every matching rule fires, in declaration order")
}

func TestHandleFailureDoesNotHaltRemainingRules(t *testing.T) {
	var destinations []string
	d := NewDispatcher([]rules.Rule{
		rules.New([]string{"*.pdf"}, "broken"),
		rules.New([]string{"*.pdf"}, "working"),
	})
	d.move = func(src, dstDir string) (string, error) {
		destinations = append(destinations, dstDir)
		if dstDir == "broken" {
			return "", errors.New("destination unwritable")
		}
		return filepath.Join(dstDir, filepath.Base(src)), nil
	}

	d.Handle(watcher.Event{Path: "/watch/doc.pdf", Op: watcher.OpCreate})

	assert.Equal(t, []string{"broken", "working"}, destinations)
}

// End-to-end through the real watcher: an empty root gains a pdf, one
// poll later it has been routed to bills/.
func TestDispatcherWithWatcher(t *testing.T) {
	root := t.TempDir()
	bills := filepath.Join(t.TempDir(), "bills")

	w := watcher.Watch(root, watcher.Options{
		Recursive: true,
		Interval:  20 * time.Millisecond,
		MaxDepth:  watcher.UnlimitedDepth,
	})
	defer w.Close()

	d := NewDispatcher([]rules.Rule{rules.New([]string{"*.pdf"}, bills)})
	done := make(chan struct{})
	go func() {
		d.Run(w.Events)
		close(done)
	}()

	// Let the watcher take its initial (empty) snapshot first.
	time.Sleep(50 * time.Millisecond)

	src := filepath.Join(root, "invoice.pdf")
	require.NoError(t, os.WriteFile(src, []byte("pdf"), 0644))

	dst := filepath.Join(bills, "invoice.pdf")
	require.Eventually(t, func() bool {
		_, err := os.Stat(dst)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond, "file should be relocated within a few polls")

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	w.Close()
	<-done
}
