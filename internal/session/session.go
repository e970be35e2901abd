// Package session tracks who is using the dashboard: nobody, a signed-in
// user, or a guest in demo mode.
package session

import (
	"sync"

	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
)

type Kind int

const (
	Unauthenticated Kind = iota
	Authenticated
	Demo
)

func (k Kind) String() string {
	switch k {
	case Authenticated:
		return "authenticated"
	case Demo:
		return "demo"
	default:
		return "unauthenticated"
	}
}

// State is one resolved session. Identity is nil when unauthenticated.
type State struct {
	Kind     Kind
	Identity *identity.Identity
}

// Manager holds the current State and publishes every change.
type Manager struct {
	mu    sync.Mutex
	state State
	subs  map[int]chan State
	next  int
}

func NewManager() *Manager {
	return &Manager{subs: make(map[int]chan State)}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// EnterDemo switches to the demo identity. It is ignored while a real user
// is signed in and reports whether the switch happened.
func (m *Manager) EnterDemo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state.Kind {
	case Authenticated:
		return false
	case Demo:
		return true
	}

	id := identity.Demo()
	m.set(State{Kind: Demo, Identity: &id})

	return true
}

// SignIn replaces any current session, including demo mode.
func (m *Manager) SignIn(p identity.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := identity.New(p)
	m.set(State{Kind: Authenticated, Identity: &id})
}

func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Kind == Unauthenticated {
		return
	}

	m.set(State{Kind: Unauthenticated})
}

// Subscribe returns a channel that first receives the current state and then
// every change. A slow reader only ever sees the latest state.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan State, 1)
	ch <- m.state

	id := m.next
	m.next++
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
}

// set must be called with mu held.
func (m *Manager) set(s State) {
	m.state = s

	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}

		ch <- s
	}
}
