package recorder

import (
	"fmt"
	"sync"
)

// Memory keeps everything in process.
type Memory struct {
	matches   map[uint]Match
	events    []CombatEvent
	idCounter uint
	mu        sync.RWMutex
}

// NewMemory creates an empty in-process backend.
func NewMemory() *Memory {
	return &Memory{matches: make(map[uint]Match)}
}

func (b *Memory) Init() error { return nil }
func (b *Memory) Close() error { return nil }
func (b *Memory) Flush() error { return nil }

// StartMatch assigns the next id to m.
func (b *Memory) StartMatch(m *Match) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.idCounter++
	m.ID = b.idCounter
	b.matches[m.ID] = *m
	return nil
}

// EndMatch overwrites the stored match row.
func (b *Memory) EndMatch(m *Match) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.matches[m.ID]; !ok {
		return fmt.Errorf("match %d not started", m.ID)
	}
	b.matches[m.ID] = *m
	return nil
}

// RecordEvents appends events, assigning ids.
func (b *Memory) RecordEvents(events []CombatEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range events {
		e.ID = uint(len(b.events) + 1)
		b.events = append(b.events, e)
	}
	return nil
}

// Events returns the events of one match in recording order.
func (b *Memory) Events(matchID uint) ([]CombatEvent, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []CombatEvent
	for _, e := range b.events {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (b *Memory) CountByKind(matchID uint) (map[string]int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	counts := make(map[string]int)
	for _, e := range b.events {
		if e.MatchID == matchID {
			counts[e.Kind]++
		}
	}
	return counts, nil
}

// Match returns a stored match row.
func (b *Memory) Match(id uint) (Match, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m, ok := b.matches[id]
	return m, ok
}
