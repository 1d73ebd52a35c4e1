// Package session holds the decoded session state of the running client.
//
// The auth service is the only writer. Any goroutine may read a snapshot
// with Get or register a listener with Subscribe. Listeners are called
// after every write, outside the state lock, in registration order, and
// each gets its own copy of the snapshot. Deliveries are serialized so
// listeners observe writes in the order they were applied; a listener
// may read the store but must not write to it.
package session

import (
	"sync"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
)

// State is a snapshot of the session.
type State struct {
	User    *models.Identity
	Loading bool
}

// Authenticated reports whether a user is signed in.
func (s State) Authenticated() bool {
	return s.User != nil
}

// Store is a mutex-guarded State container.
type Store struct {
	// notifyMu is held for a whole write including delivery
	notifyMu sync.Mutex

	mu        sync.RWMutex
	state     State
	nextID    int
	listeners map[int]func(State)
	order     []int
}

func NewStore() *Store {
	return &Store{listeners: map[int]func(State){}}
}

// Get returns a copy of the current state. The identity is copied as well
// so callers cannot mutate the stored one.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// User returns the signed-in identity or nil.
func (s *Store) User() *models.Identity {
	return s.Get().User
}

// SetUser replaces the identity.
func (s *Store) SetUser(u *models.Identity) {
	s.update(func(st *State) { st.User = cloneIdentity(u) })
}

// SetLoading flips the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.update(func(st *State) { st.Loading = loading })
}

// Reset clears the identity and the loading flag.
func (s *Store) Reset() {
	s.update(func(st *State) { *st = State{} })
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) update(fn func(*State)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snapshot := cloneState(s.state)
	listeners := make([]func(State), 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(cloneState(snapshot))
	}
}

func cloneState(st State) State {
	return State{User: cloneIdentity(st.User), Loading: st.Loading}
}

func cloneIdentity(u *models.Identity) *models.Identity {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
