package service

import (
	"sync"
	"time"
)

// Scheduler runs delayed tasks grouped under a cancellation key. The
// companion service keys tasks by conversation ID so superseding a
// conversation cancels everything still pending against it.
type Scheduler interface {
	Schedule(key string, delay time.Duration, fn func())
	CancelKey(key string) int
	Stop()
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc
type TimerScheduler struct {
	mu      sync.Mutex
	seq     uint64
	timers  map[string]map[uint64]*time.Timer
	stopped bool
}

// NewTimerScheduler creates an empty scheduler
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[string]map[uint64]*time.Timer),
	}
}

// Schedule runs fn after delay unless the key is cancelled first
func (s *TimerScheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	s.seq++
	id := s.seq

	timer := time.AfterFunc(delay, func() {
		s.mu.Lock()
		if pending, ok := s.timers[key]; ok {
			delete(pending, id)
			if len(pending) == 0 {
				delete(s.timers, key)
			}
		}
		s.mu.Unlock()
		fn()
	})

	if s.timers[key] == nil {
		s.timers[key] = make(map[uint64]*time.Timer)
	}
	s.timers[key][id] = timer
}

// CancelKey stops every task still pending under key and returns how many
// were cancelled. Timers that already fired are not counted.
func (s *TimerScheduler) CancelKey(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelKeyLocked(key)
}

func (s *TimerScheduler) cancelKeyLocked(key string) int {
	cancelled := 0
	for _, t := range s.timers[key] {
		if t.Stop() {
			cancelled++
		}
	}
	delete(s.timers, key)
	return cancelled
}

// Stop cancels all pending tasks and refuses new ones
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for key, pending := range s.timers {
		for _, t := range pending {
			t.Stop()
		}
		delete(s.timers, key)
	}
}
