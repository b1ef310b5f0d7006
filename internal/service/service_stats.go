package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/agrolab/backoffice/internal/logger"
)

// ActiveSessionTTL is the inactivity threshold after which a recorded
// session no longer counts as active.
const ActiveSessionTTL = 30 * time.Minute

// statsService is the concrete implementation of StatsService.
//
// State is a lock-free counter plus a concurrent map keyed by username; no
// coarse lock serialises logins. The structure is owned by a single instance
// created at process start and injected where needed.
type statsService struct {
	// totalVisitors counts successful logins; never decremented.
	totalVisitors atomic.Int64

	// activeUsers maps username → last-activity time.Time.
	activeUsers sync.Map

	// now is the clock source; replaceable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewStatsService constructs a StatsService with the wall clock as its time
// source.
func NewStatsService(logger *logger.Logger) StatsService {
	return &statsService{
		now:    time.Now,
		logger: logger,
	}
}

// RecordVisit atomically increments the total-visitor counter.
func (s *statsService) RecordVisit() {
	s.totalVisitors.Add(1)
}

// RecordActive sets or overwrites the last-activity timestamp for username.
func (s *statsService) RecordActive(username string) {
	s.activeUsers.Store(username, s.now())
}

// RemoveActive removes the entry for username if present. Calling it for an
// absent username is a no-op.
func (s *statsService) RemoveActive(username string) {
	s.activeUsers.Delete(username)
}

// ActiveCount purges every entry whose age exceeds [ActiveSessionTTL] and
// returns the remaining entry count.
//
// An insert racing with the sweep may or may not be counted; entries are
// visited at most once per Range pass, so the count can never go negative or
// double-count.
func (s *statsService) ActiveCount() int {
	cutoff := s.now().Add(-ActiveSessionTTL)

	count := 0
	s.activeUsers.Range(func(key, value any) bool {
		lastSeen, ok := value.(time.Time)
		if !ok || lastSeen.Before(cutoff) {
			s.activeUsers.Delete(key)
			return true
		}
		count++
		return true
	})

	return count
}

// TotalVisitors returns the current visitor counter value.
func (s *statsService) TotalVisitors() int64 {
	return s.totalVisitors.Load()
}
