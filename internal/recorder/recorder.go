// Package recorder persists match events for later analysis.
package recorder

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/config"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/world"
)

// Backend is the interface all storage implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Match management (assigns ID to the passed pointer)
	StartMatch(m *Match) error
	EndMatch(m *Match) error

	// Event recording
	RecordEvents(events []CombatEvent) error
	Flush() error

	// Queries
	Events(matchID uint) ([]CombatEvent, error)
	CountByKind(matchID uint) (map[string]int, error)
}

// NewBackend creates a storage backend based on configuration.
func NewBackend(cfg config.RecorderConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.GetBackend() {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(cfg.DSN, cfg.GetBatchSize(), log)
	default:
		return nil, fmt.Errorf("unknown recorder backend: %s", cfg.Backend)
	}
}

// Session records one world into a backend. Subscribing happens in Attach;
// Finish closes the match row.
type Session struct {
	backend Backend
	match   Match
	w       *world.World
	log     zerolog.Logger
	err     error
}

// Attach starts a match and subscribes to w's events.
func Attach(b Backend, w *world.World, label string, log zerolog.Logger) (*Session, error) {
	s := &Session{
		backend: b,
		w:       w,
		log:     log,
		match: Match{
			Label:     label,
			Seed:      w.Config().Simulation.Seed,
			StartedAt: time.Now(),
		},
	}
	if err := b.StartMatch(&s.match); err != nil {
		return nil, fmt.Errorf("failed to start match: %w", err)
	}
	w.Subscribe(s.record)
	return s, nil
}

// MatchID is the id the backend assigned.
func (s *Session) MatchID() uint { return s.match.ID }

func (s *Session) record(ev world.Event) {
	if s.err != nil {
		return
	}
	switch ev.Kind {
	case world.EventDeath:
		if ev.Archetype == world.PlayerArchetype {
			s.match.Deaths++
		} else {
			s.match.Kills++
		}
	}
	if err := s.backend.RecordEvents([]CombatEvent{FromEvent(s.match.ID, ev)}); err != nil {
		s.err = err
		s.log.Error().Err(err).Uint("match", s.match.ID).Msg("recording stopped")
	}
}

// Finish flushes pending rows and stamps the match summary. It returns the
// first recording error, if any.
func (s *Session) Finish() (Match, error) {
	s.match.EndedAt = time.Now()
	s.match.SimTime = s.w.Now()
	s.match.Ticks = s.w.Clock().Ticks()
	if s.err != nil {
		return s.match, s.err
	}
	if err := s.backend.Flush(); err != nil {
		return s.match, err
	}
	if err := s.backend.EndMatch(&s.match); err != nil {
		return s.match, fmt.Errorf("failed to end match: %w", err)
	}
	return s.match, nil
}
