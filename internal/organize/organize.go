// Package organize consumes watch events and routes matching files to
// their configured destinations.
package organize

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/adamancini/ferry/internal/logging"
	"github.com/adamancini/ferry/internal/rules"
	"github.com/adamancini/ferry/internal/watcher"
)

// Dispatcher evaluates each event against the rule set and drives
// relocations. It holds the rules read-only for the life of the
// process.
type Dispatcher struct {
	rules  []rules.Rule
	logger zerolog.Logger

	// move is Move, replaceable in tests.
	move func(src, dstDir string) (string, error)
}

// NewDispatcher creates a dispatcher over the given rules. Rules fire
// in declaration order.
func NewDispatcher(rs []rules.Rule) *Dispatcher {
	return &Dispatcher{
		rules:  rs,
		logger: logging.GetLogger("organize"),
		move:   Move,
	}
}

// Run consumes events until the channel closes. This is the main
// control loop of a running ferry; it blocks while waiting for the
// next event.
func (d *Dispatcher) Run(events <-chan watcher.Event) {
	for ev := range events {
		d.Handle(ev)
	}
}

// Handle processes a single event. Removed files need no action — the
// relocation workflow only acts on files that still exist. A file may
// match several rules; every matching relocation is attempted, and a
// failure for one rule never suppresses the rest.
func (d *Dispatcher) Handle(ev watcher.Event) {
	if ev.Op == watcher.OpRemove {
		return
	}

	filename := filepath.Base(ev.Path)

	for _, r := range d.rules {
		if !r.Matches(ev.Path, filename) {
			continue
		}

		d.logger.Debug().
			Str("path", ev.Path).
			Str("op", ev.Op.String()).
			Strs("patterns", r.Patterns()).
			Str("destination", r.Destination).
			Msg("rule matched")

		dst, err := d.move(ev.Path, r.Destination)
		if err != nil {
			d.logger.Error().
				Err(err).
				Str("path", ev.Path).
				Str("destination", r.Destination).
				Msg("failed to move file")
			continue
		}

		d.logger.Info().
			Str("from", ev.Path).
			Str("to", dst).
			Msg("moved file")
	}
}
