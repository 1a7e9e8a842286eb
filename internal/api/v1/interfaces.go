package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/synergysphere/sphere/internal/domain"
)

// AuthService abstracts account operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, name, email, password, teamName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
}

// BoardService abstracts board reads and moves for handler testing.
// *board.Service satisfies this interface.
type BoardService interface {
	List(ctx context.Context) ([]*domain.Board, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	Move(ctx context.Context, boardID, userID uuid.UUID, m domain.Move) (*domain.Board, error)
}
