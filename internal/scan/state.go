package scan

import "sync/atomic"

// State tracks a single scan's lifecycle signals: "initialized" fires
// exactly once when the first row batch begins, "finished" exactly once
// when the reader drains. Both transitions are single-assignment, guarded
// by atomic compare-and-swap, so a caller may poll
// State concurrently with the scan itself (e.g. a progress indicator).
type State struct {
	initialized atomic.Bool
	finished    atomic.Bool
}

// NewState returns a fresh, unstarted State.
func NewState() *State { return &State{} }

func (s *State) markInitialized() {
	if s == nil {
		return
	}
	s.initialized.CompareAndSwap(false, true)
}

func (s *State) markFinished() {
	if s == nil {
		return
	}
	s.finished.CompareAndSwap(false, true)
}

// Initialized reports whether the scan has begun emitting rows.
func (s *State) Initialized() bool { return s != nil && s.initialized.Load() }

// Finished reports whether the scan has drained every input.
func (s *State) Finished() bool { return s != nil && s.finished.Load() }
