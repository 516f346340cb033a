package docxsdt

// stateTracker maintains nesting-depth counters per element name and a
// "last-closed" marker while events are consumed one at a time by the
// indexer, per §4.D of the specification.
type stateTracker struct {
	depth      map[string]int
	lastClosed string
	sawClose   bool
	counter    int
	eof        bool
}

func newStateTracker() *stateTracker {
	return &stateTracker{depth: make(map[string]int)}
}

// isIn reports whether name is currently open (its Start has been consumed
// and its End has not).
func (s *stateTracker) isIn(name string) bool {
	return s.depth[name] > 0
}

// isAt reports whether name is open, OR was the element most recently
// closed by the event just consumed. The latter half keeps a
// property-block close attributed to its own block while that closing
// event itself is being written out.
func (s *stateTracker) isAt(name string) bool {
	return s.isIn(name) || (s.sawClose && s.lastClosed == name)
}

// open records the Start of name.
func (s *stateTracker) open(name string) {
	s.depth[name]++
}

// close records the End of name.
func (s *stateTracker) close(name string) {
	s.depth[name]--
	s.lastClosed = name
	s.sawClose = true
}

// advance bumps the event counter. It must be called once per consumed
// event, after any
// open/close calls for that event and after isIn/isAt have been consulted
// for it.
func (s *stateTracker) advance() {
	s.counter++
}

// beginEvent must be called at the start of processing each event, before
// open/close/isIn/isAt are consulted for it: it clears the "just closed"
// marker, so that lastClosed is visible only during the event that
// performed the close.
func (s *stateTracker) beginEvent() {
	s.sawClose = false
}
