package categorize

import (
	"context"
	"strings"
	"sync"
)

type mapping struct {
	pattern  string
	category string
}

// Memory is a process-local Repository for demo sessions.
type Memory struct {
	mu       sync.RWMutex
	mappings map[string][]mapping
}

func NewMemory() *Memory {
	return &Memory{mappings: make(map[string][]mapping)}
}

func (m *Memory) FindMatch(_ context.Context, userID, description string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	desc := strings.ToLower(description)

	var best mapping

	// Later mappings win ties, as in the SQL store.
	for _, mp := range m.mappings[userID] {
		if len(mp.pattern) >= len(best.pattern) && strings.Contains(desc, mp.pattern) {
			best = mp
		}
	}

	return best.category, nil
}

func (m *Memory) CreateMapping(_ context.Context, userID, rawPattern, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mappings[userID] = append(m.mappings[userID], mapping{
		pattern:  strings.ToLower(rawPattern),
		category: category,
	})

	return nil
}
