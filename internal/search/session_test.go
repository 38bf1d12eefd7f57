package search

import "testing"

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(20)
	if snap := s.Snapshot(); snap.State != StateIdle || snap.Result != nil {
		t.Fatalf("expected idle session, got %+v", snap)
	}

	var candidate FilterState
	candidate.SetCities([]string{"Paris"})
	ticket := s.Begin(candidate)
	if s.Snapshot().State != StateLoading {
		t.Fatalf("expected loading state")
	}
	if len(s.Snapshot().Filter.Cities) != 0 {
		t.Fatalf("candidate filter must not be committed while loading")
	}

	if !s.Complete(ticket, SearchResult{Items: []JobOffer{{Title: "A"}}, TotalCount: 45}) {
		t.Fatalf("expected latest ticket to commit")
	}
	snap := s.Snapshot()
	if snap.State != StateLoaded || snap.Filter.Cities[0] != "Paris" || snap.Result.TotalCount != 45 {
		t.Fatalf("unexpected loaded snapshot: %+v", snap)
	}
	if snap.TotalPages() != 3 {
		t.Fatalf("expected 3 pages, got %d", snap.TotalPages())
	}
}

func TestSessionFailureKeepsPreviousState(t *testing.T) {
	s := NewSession(20)
	first := FilterState{Cities: []string{"Lyon"}}
	s.Complete(s.Begin(first), SearchResult{TotalCount: 5})

	next := first.Clone()
	next.SetSkills([]string{"Go"})
	ticket := s.Begin(next)
	if !s.Fail(ticket, "Erreur API: 500") {
		t.Fatalf("expected failure to apply to latest ticket")
	}

	snap := s.Snapshot()
	if snap.State != StateError || snap.Error != "Erreur API: 500" {
		t.Fatalf("expected error state, got %+v", snap)
	}
	if len(snap.Filter.Skills) != 0 || snap.Filter.Cities[0] != "Lyon" {
		t.Fatalf("filter must be unchanged after failure: %+v", snap.Filter)
	}
	if snap.Result == nil || snap.Result.TotalCount != 5 {
		t.Fatalf("previous result must be kept after failure")
	}

	// error returns to loading on the next action
	retry := s.Begin(next)
	if s.Snapshot().State != StateLoading {
		t.Fatalf("expected loading after error")
	}
	s.Complete(retry, SearchResult{TotalCount: 1})
	if snap := s.Snapshot(); snap.State != StateLoaded || snap.Error != "" {
		t.Fatalf("expected error cleared on success, got %+v", snap)
	}
}

func TestSessionDiscardsStaleResponses(t *testing.T) {
	s := NewSession(20)
	slow := s.Begin(FilterState{Cities: []string{"Paris"}})
	fast := s.Begin(FilterState{Cities: []string{"Nantes"}})

	if !s.Complete(fast, SearchResult{TotalCount: 2}) {
		t.Fatalf("expected most recent fetch to win")
	}
	if s.Complete(slow, SearchResult{TotalCount: 99}) {
		t.Fatalf("expected stale fetch to be discarded")
	}
	if s.Fail(slow, "late failure") {
		t.Fatalf("expected stale failure to be discarded")
	}

	snap := s.Snapshot()
	if snap.Filter.Cities[0] != "Nantes" || snap.Result.TotalCount != 2 || snap.State != StateLoaded {
		t.Fatalf("stale response overwrote newer state: %+v", snap)
	}
}

func TestStateString(t *testing.T) {
	names := map[State]string{StateIdle: "idle", StateLoading: "loading", StateLoaded: "loaded", StateError: "error", State(42): "unknown"}
	for st, want := range names {
		if st.String() != want {
			t.Fatalf("expected %s, got %s", want, st.String())
		}
	}
}
