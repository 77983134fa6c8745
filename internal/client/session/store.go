package session

import (
	"sync"

	"github.com/dmitrijs2005/signkeeper/internal/client/models"
)

// State is a snapshot of both auth cells.
//
// Authenticated normally implies User != nil, but a login whose follow-up
// user fetch failed leaves a placeholder user with an empty ID.
type State struct {
	Authenticated bool
	User          *models.User
}

// Store is the pair of reactive auth cells.
//
// The two cells are independent: callers set them one after the other and
// subscribers observe each write. Concurrent writers race with
// last-write-wins semantics.
type Store interface {
	State() State
	SetAuthenticated(v bool)
	// SetUser replaces the current user; nil clears it. The value is copied.
	SetUser(u *models.User)
	// Clear sets the flag to false and the user to nil.
	Clear()
	// Subscribe registers fn and returns a function that removes it.
	Subscribe(fn func(State)) (unsubscribe func())
}

// MemoryStore is the in-process Store used by interactive clients.
type MemoryStore struct {
	mu    sync.RWMutex
	state State
	subs  map[int]func(State)
	next  int
}

// NewMemoryStore returns an unauthenticated store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[int]func(State))}
}

func (s *MemoryStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Authenticated: s.state.Authenticated, User: s.state.User.Clone()}
}

func (s *MemoryStore) SetAuthenticated(v bool) {
	s.update(func(st *State) { st.Authenticated = v })
}

func (s *MemoryStore) SetUser(u *models.User) {
	u = u.Clone()
	s.update(func(st *State) { st.User = u })
}

func (s *MemoryStore) Clear() {
	s.update(func(st *State) { st.Authenticated = false })
	s.update(func(st *State) { st.User = nil })
}

func (s *MemoryStore) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// update applies fn under the lock and notifies subscribers outside of it,
// so a subscriber may read the store again.
func (s *MemoryStore) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := State{Authenticated: s.state.Authenticated, User: s.state.User.Clone()}
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}

type discard struct{}

// Discard is a Store that is always unauthenticated and ignores writes.
var Discard Store = discard{}

func (discard) State() State                 { return State{} }
func (discard) SetAuthenticated(bool)        {}
func (discard) SetUser(*models.User)         {}
func (discard) Clear()                       {}
func (discard) Subscribe(func(State)) func() { return func() {} }
