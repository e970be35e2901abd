package datasync

import "sync"

type key struct {
	userID     string
	collection Collection
}

// Hub fans change notifications out to the subscriptions watching them.
// Signals coalesce: a watcher that has not consumed its last signal gets no
// second one.
type Hub struct {
	mu       sync.Mutex
	watchers map[key]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{watchers: make(map[key]map[chan struct{}]struct{})}
}

// Notify signals every watcher of the user's collection.
func (h *Hub) Notify(userID string, c Collection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.watchers[key{userID, c}] {
		signal(ch)
	}
}

// Broadcast signals every watcher. Used after notifications may have been lost.
func (h *Hub) Broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, set := range h.watchers {
		for ch := range set {
			signal(ch)
		}
	}
}

// Watching returns the number of registered watchers.
func (h *Hub) Watching() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, set := range h.watchers {
		n += len(set)
	}

	return n
}

func (h *Hub) watch(userID string, c Collection) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	k := key{userID, c}

	h.mu.Lock()
	if h.watchers[k] == nil {
		h.watchers[k] = make(map[chan struct{}]struct{})
	}
	h.watchers[k][ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		delete(h.watchers[k], ch)

		if len(h.watchers[k]) == 0 {
			delete(h.watchers, k)
		}
	}
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
