package search

import (
	"sync"
	"time"
)

// State is the position of a session in the fetch/render cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Ticket identifies one in-flight fetch. Only the latest ticket may settle the session.
type Ticket struct {
	seq    uint64
	Filter FilterState
}

// Session owns the filter state and the last rendered result of one browser session.
// A failed or superseded fetch never changes the committed filter or result.
type Session struct {
	mu       sync.Mutex
	state    State
	filter   FilterState
	result   *SearchResult
	errMsg   string
	seq      uint64
	touched  time.Time
	pageSize int
}

// NewSession creates an idle session with an empty filter.
func NewSession(pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{pageSize: pageSize, touched: time.Now()}
}

// Snapshot is a consistent, read-only copy of a session.
type Snapshot struct {
	State    State
	Filter   FilterState
	Result   *SearchResult
	Error    string
	PageSize int
}

// Pager returns navigation state for the committed result.
func (s Snapshot) Pager() Pager {
	total := 0
	if s.Result != nil {
		total = s.Result.TotalCount
	}
	return NewPager(s.Filter.Page, total, s.PageSize)
}

// TotalPages of the committed result, at least one.
func (s Snapshot) TotalPages() int {
	return s.Pager().TotalPages
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		State:    s.state,
		Filter:   s.filter.Clone(),
		Error:    s.errMsg,
		PageSize: s.pageSize,
	}
	if s.result != nil {
		res := *s.result
		snap.Result = &res
	}
	return snap
}

// Begin moves the session to Loading for a candidate filter and returns its ticket.
// Any ticket issued earlier becomes stale.
func (s *Session) Begin(candidate FilterState) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = StateLoading
	s.touched = time.Now()
	return Ticket{seq: s.seq, Filter: candidate.Clone()}
}

// Complete commits the ticket's filter and result. It returns false and changes nothing
// when a newer ticket exists.
func (s *Session) Complete(t Ticket, result SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.seq != s.seq {
		return false
	}
	s.filter = t.Filter.Clone()
	s.result = &result
	s.errMsg = ""
	s.state = StateLoaded
	return true
}

// Fail records an error for the latest ticket, keeping the previous filter and result.
func (s *Session) Fail(t Ticket, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.seq != s.seq {
		return false
	}
	s.errMsg = message
	s.state = StateError
	return true
}

// PageSize is the fixed number of offers per page for this session.
func (s *Session) PageSize() int {
	return s.pageSize
}

// LastTouched reports when the session last started a fetch or was created.
func (s *Session) LastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// Touch marks the session as used.
func (s *Session) Touch() {
	s.mu.Lock()
	s.touched = time.Now()
	s.mu.Unlock()
}
