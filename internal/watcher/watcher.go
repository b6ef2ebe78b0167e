package watcher

import (
	"sync"
	"time"

	"github.com/adamancini/ferry/internal/logging"
)

// Watcher polls a directory tree on a fixed interval and publishes the
// changes between successive snapshots.
//
// Events within one poll cycle arrive in the order the diff produced
// them. Delivery is unbounded: the poll loop never blocks on a slow
// consumer and no event is dropped, at the cost of queue growth while
// the consumer stalls.
type Watcher struct {
	// Events delivers changes to the single consumer. Closed after
	// Close once all pending events have been delivered.
	Events <-chan Event

	root string
	opts Options

	stop     chan struct{}
	stopOnce sync.Once
}

// Watch starts polling root in a background goroutine. A nonpositive
// interval falls back to the default.
func Watch(root string, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = DefaultOptions().Interval
	}

	out := make(chan Event)
	in := make(chan Event)

	w := &Watcher{
		Events: out,
		root:   root,
		opts:   opts,
		stop:   make(chan struct{}),
	}

	go forward(in, out)
	go w.poll(in)

	return w
}

// Close stops the poll loop. Pending events are still delivered, then
// Events is closed. Safe to call more than once.
func (w *Watcher) Close() {
	w.stopOnce.Do(func() { close(w.stop) })
}

// poll is the snapshot/sleep/diff loop. It only suspends while
// sleeping between polls.
func (w *Watcher) poll(in chan<- Event) {
	logger := logging.GetLogger("watcher")

	prev := Capture(w.root, w.opts)
	logger.Debug().
		Str("root", w.root).
		Int("files", len(prev)).
		Msg("initial snapshot")

	for {
		select {
		case <-w.stop:
			close(in)
			return
		case <-time.After(w.opts.Interval):
		}

		curr := Capture(w.root, w.opts)
		events := Diff(prev, curr)
		if len(events) > 0 {
			logger.Debug().Int("events", len(events)).Msg("poll cycle produced changes")
		}
		for _, ev := range events {
			in <- ev
		}
		prev = curr
	}
}

// forward is the unbounded queue between the poll loop and the
// consumer. It buffers in memory so the producer can always make
// progress.
func forward(in <-chan Event, out chan<- Event) {
	var queue []Event

	for {
		var (
			send chan<- Event
			next Event
		)
		if len(queue) > 0 {
			send = out
			next = queue[0]
		}

		select {
		case ev, ok := <-in:
			if !ok {
				for _, pending := range queue {
					out <- pending
				}
				close(out)
				return
			}
			queue = append(queue, ev)
		case send <- next:
			queue = queue[1:]
		}
	}
}
