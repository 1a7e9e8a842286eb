package board

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/synergysphere/sphere/internal/domain"
)

// EventTaskMoved is the only event type emitted today.
const EventTaskMoved = "task_moved"

// Event is published on the board's channel after every applied move.
type Event struct {
	Type    string          `json:"type"`
	BoardID uuid.UUID       `json:"board_id"`
	TaskID  string          `json:"task_id"`
	From    domain.Location `json:"from"`
	To      domain.Location `json:"to"`
	Version int             `json:"version"`
	MovedBy uuid.UUID       `json:"moved_by"`
	At      time.Time       `json:"at"`
}

// Publisher broadcasts an event to everyone watching a board. *redis.PubSub
// satisfies this interface.
type Publisher interface {
	PublishBoard(ctx context.Context, boardID uuid.UUID, event any) error
}

// Generator fabricates demo boards. *fixture.Generator satisfies this interface.
type Generator interface {
	TeamName() string
	Board(name string) *domain.Board
}

// Service owns the current value of every board. Moves are serialized so each
// one is applied against the latest value; readers get immutable snapshots.
type Service struct {
	publisher Publisher // may be nil

	mu     sync.RWMutex
	boards map[uuid.UUID]*domain.Board
}

// NewService creates an empty board service. publisher may be nil, in which
// case moves are not broadcast.
func NewService(publisher Publisher) *Service {
	return &Service{
		publisher: publisher,
		boards:    make(map[uuid.UUID]*domain.Board),
	}
}

// Add validates b and stores a private copy of it.
func (s *Service) Add(_ context.Context, b *domain.Board) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("board.Add: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[b.ID]; exists {
		return fmt.Errorf("board.Add: board %s: %w", b.ID, domain.ErrConflict)
	}
	s.boards[b.ID] = b.Clone()

	return nil
}

// Seed adds n generated boards and returns them.
func (s *Service) Seed(ctx context.Context, gen Generator, n int) ([]*domain.Board, error) {
	seeded := make([]*domain.Board, 0, n)
	for range n {
		b := gen.Board(gen.TeamName())
		if err := s.Add(ctx, b); err != nil {
			return seeded, fmt.Errorf("board.Seed: %w", err)
		}
		seeded = append(seeded, b)
	}
	return seeded, nil
}

// Get returns the current snapshot of a board. Callers must not mutate it.
func (s *Service) Get(_ context.Context, id uuid.UUID) (*domain.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[id]
	if !ok {
		return nil, fmt.Errorf("board.Get: board %s: %w", id, domain.ErrNotFound)
	}
	return b, nil
}

// List returns snapshots of all boards ordered by name, then ID.
func (s *Service) List(_ context.Context) ([]*domain.Board, error) {
	s.mu.RLock()
	out := make([]*domain.Board, 0, len(s.boards))
	for _, b := range s.boards {
		out = append(out, b)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *domain.Board) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

// Move applies m to the board and replaces its current value. When the move
// changed the board, a task_moved event is published; publish failures are
// logged only since the move has already taken effect.
func (s *Service) Move(ctx context.Context, boardID, userID uuid.UUID, m domain.Move) (*domain.Board, error) {
	s.mu.Lock()
	current, ok := s.boards[boardID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("board.Move: board %s: %w", boardID, domain.ErrNotFound)
	}

	next, err := current.Apply(m)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("board.Move: %w", err)
	}
	if next == current {
		s.mu.Unlock()
		return current, nil
	}
	s.boards[boardID] = next
	s.mu.Unlock()

	log.Debug().
		Str("board_id", boardID.String()).
		Str("task_id", m.TaskID).
		Str("from", m.Source.ColumnID).
		Str("to", m.Destination.ColumnID).
		Int("version", next.Version).
		Msg("board: task moved")

	s.publish(ctx, Event{
		Type:    EventTaskMoved,
		BoardID: boardID,
		TaskID:  m.TaskID,
		From:    m.Source,
		To:      *m.Destination,
		Version: next.Version,
		MovedBy: userID,
		At:      time.Now().UTC(),
	})

	return next, nil
}

func (s *Service) publish(ctx context.Context, ev Event) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishBoard(ctx, ev.BoardID, ev); err != nil {
		log.Warn().Err(err).Str("board_id", ev.BoardID.String()).Msg("board: publish event")
	}
}
