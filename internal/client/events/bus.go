// Package events is the in-process notification channel between the auth
// service and the front end.
package events

import (
	"sync"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
)

// Type names an auth state change.
type Type string

const (
	Login        Type = "login"
	Logout       Type = "logout"
	Unauthorized Type = "unauthorized"
)

// Event is published after the session changed. User is set for Login.
type Event struct {
	Type Type
	User *models.Identity
}

// Handler receives events synchronously on the publisher's goroutine.
type Handler func(Event)

// Bus delivers events to an explicit list of subscribers.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers []subscription
}

type subscription struct {
	id int
	fn Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers = append(b.handlers, subscription{id: id, fn: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every subscriber in registration order. Handlers may
// subscribe or unsubscribe; changes take effect from the next Publish.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	for i, s := range b.handlers {
		handlers[i] = s.fn
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
