package sequence

import "sync/atomic"

// Sequencer generates the strictly monotonic sequence stamped on every
// committed operation and published event. It is replay-safe.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer starting from a given value.
// On fresh start → start = 0
// On restore → start = last replayed seq
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}

// Reset sets the sequencer to a specific value.
// This is ONLY used after snapshot load + WAL replay.
func (s *Sequencer) Reset(v uint64) {
	s.next.Store(v)
}
