package watcher

// Op is the kind of change an Event describes.
type Op uint8

const (
	// OpCreate indicates a file appeared since the previous snapshot.
	OpCreate Op = iota
	// OpModify indicates a file's modification time or size changed.
	OpModify
	// OpRemove indicates a file disappeared.
	OpRemove
)

// String returns the operation name for logging.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpModify:
		return "modify"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event is one observed filesystem change. It is a plain value; it
// holds no reference into any snapshot.
type Event struct {
	Path string
	Op   Op
}

// Diff compares two successive snapshots. Records are compared exactly
// on modification time and size, so a rewrite that preserves both
// within one poll interval is invisible — the accepted limit of
// polling. No ordering is guaranteed among the returned events.
func Diff(prev, curr Snapshot) []Event {
	var events []Event

	for path, rec := range curr {
		old, ok := prev[path]
		switch {
		case !ok:
			events = append(events, Event{Path: path, Op: OpCreate})
		case old != rec:
			events = append(events, Event{Path: path, Op: OpModify})
		}
	}

	for path := range prev {
		if _, ok := curr[path]; !ok {
			events = append(events, Event{Path: path, Op: OpRemove})
		}
	}

	return events
}
