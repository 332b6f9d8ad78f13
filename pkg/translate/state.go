package translate

import (
	"sync"
)

// State tracks translation proxy health for one session. After
// maxFailures consecutive failures the client stops calling the proxy
// entirely; ReEnable arms it again. The state is injected into the client
// rather than held in a package variable so tests and sessions can't leak
// into each other.
type State struct {
	mu          sync.Mutex
	failures    int
	maxFailures int
	disabled    bool
}

// NewState creates a breaker state allowing maxFailures consecutive
// failures before disabling. Non-positive maxFailures means 3.
func NewState(maxFailures int) *State {
	if maxFailures <= 0 {
		maxFailures = 3
	}
	return &State{maxFailures: maxFailures}
}

// RecordFailure counts one failed call and reports whether the breaker
// just tripped
func (s *State) RecordFailure() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return false
	}
	s.failures++
	if s.failures >= s.maxFailures {
		s.disabled = true
		return true
	}
	return false
}

// RecordSuccess resets the consecutive-failure count
func (s *State) RecordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = 0
}

// Disabled reports whether the breaker is tripped
func (s *State) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled
}

// Failures returns the current consecutive-failure count
func (s *State) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// ReEnable arms the breaker again, clearing the failure count
func (s *State) ReEnable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = false
	s.failures = 0
}
