package session

import (
	"sync"

	authapi "sketwhint/cmd/internal/auth/api"
)

// Snapshot is the published authentication state observed by screens.
// User is nil exactly when Authenticated is false.
type Snapshot struct {
	Authenticated bool
	User          *authapi.User
}

// State is an explicit, injectable session-state store with subscribe/notify
// semantics. Screens hold a *State and either poll Snapshot or Subscribe.
//
// Writes happen only through orchestrator operations (single designated
// writer); subscribers receive snapshots in write order, with intermediate
// values coalesced if a subscriber lags (last write wins).
type State struct {
	mu     sync.Mutex
	cur    Snapshot
	subs   map[uint64]chan Snapshot
	nextID uint64
}

// NewState constructs an unauthenticated State.
func NewState() *State {
	return &State{subs: make(map[uint64]chan Snapshot)}
}

// Snapshot returns the current published state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Subscribe registers an observer. The returned channel delivers the current
// snapshot immediately, then every subsequent write (coalesced under lag).
// cancel unregisters and closes the channel.
func (s *State) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan Snapshot, 1)
	ch <- s.cur
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// set publishes a new snapshot. Package-internal: only orchestrator
// operations write.
func (s *State) set(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = snap
	for _, ch := range s.subs {
		// Coalesce: drop the undelivered snapshot so the subscriber always
		// sees the latest state next.
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
