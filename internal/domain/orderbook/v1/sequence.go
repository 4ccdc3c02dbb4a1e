package orderbookv1

import "sync/atomic"

// Sequencer generates strictly monotonic sequence tokens used for time priority.
// A token is assigned to an order under the owning book's lock so that two
// orders can never share a priority token.
type Sequencer struct {
	next atomic.Int64
}

// NewSequencer creates a sequencer starting from zero.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Next returns the next sequence token.
func (s *Sequencer) Next() int64 {
	return s.next.Add(1)
}

// Current returns the last issued token.
func (s *Sequencer) Current() int64 {
	return s.next.Load()
}
