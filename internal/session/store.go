package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/job-market-dashboard/internal/metrics"
	"github.com/octobees/job-market-dashboard/internal/search"
)

// Store keeps live dashboard sessions in memory. Idle sessions expire after ttl and are
// evicted lazily on access.
type Store struct {
	ttl      time.Duration
	pageSize int
	now      func() time.Time

	mu        sync.Mutex
	sessions  map[string]*search.Session
	lastSweep time.Time
}

// NewStore creates an empty store.
func NewStore(ttl time.Duration, pageSize int) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{
		ttl:      ttl,
		pageSize: pageSize,
		now:      time.Now,
		sessions: make(map[string]*search.Session),
	}
}

// Get returns the live session for id.
func (s *Store) Get(id string) (*search.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.expired(sess) {
		s.deleteLocked(id)
		return nil, false
	}
	sess.Touch()
	return sess, true
}

// Create starts a new idle session and returns its id.
func (s *Store) Create() (string, *search.Session) {
	id := uuid.NewString()
	sess := search.NewSession(s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[id] = sess
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return id, sess
}

// Len reports the number of stored sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *search.Session) bool {
	return s.now().Sub(sess.LastTouched()) > s.ttl
}

// sweepLocked evicts expired sessions at most once per minute.
func (s *Store) sweepLocked() {
	now := s.now()
	if now.Sub(s.lastSweep) < time.Minute {
		return
	}
	s.lastSweep = now
	for id, sess := range s.sessions {
		if s.expired(sess) {
			s.deleteLocked(id)
		}
	}
}

func (s *Store) deleteLocked(id string) {
	delete(s.sessions, id)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}
