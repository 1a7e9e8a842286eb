package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/synergysphere/sphere/internal/domain"
	"github.com/synergysphere/sphere/internal/server/middleware"
)

// userCtx injects an authenticated user into context for DoCtx.
func userCtx(userID uuid.UUID) context.Context {
	return middleware.WithUserID(context.Background(), userID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc func(ctx context.Context, name, email, password, teamName string) (*domain.User, error)
	loginFunc    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password, teamName string) (*domain.User, error) {
	return m.registerFunc(ctx, name, email, password, teamName)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return m.loginFunc(ctx, email, password)
}

// ---------------------------------------------------------------------------
// Mock BoardService
// ---------------------------------------------------------------------------

type mockBoardService struct {
	listFunc func(ctx context.Context) ([]*domain.Board, error)
	getFunc  func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	moveFunc func(ctx context.Context, boardID, userID uuid.UUID, m domain.Move) (*domain.Board, error)
}

func (m *mockBoardService) List(ctx context.Context) ([]*domain.Board, error) {
	return m.listFunc(ctx)
}

func (m *mockBoardService) Get(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	return m.getFunc(ctx, id)
}

func (m *mockBoardService) Move(ctx context.Context, boardID, userID uuid.UUID, mv domain.Move) (*domain.Board, error) {
	return m.moveFunc(ctx, boardID, userID, mv)
}

// twoColumnBoard returns To-Do=[A,B], Done=[C].
func twoColumnBoard() *domain.Board {
	return &domain.Board{
		ID:   uuid.MustParse("5b0f3a2e-8c4d-4f6e-9a1b-2c3d4e5f6a7b"),
		Name: "Launch",
		Tasks: map[string]domain.Task{
			"A": {ID: "A", Content: "Write copy"},
			"B": {ID: "B", Content: "Pick colors"},
			"C": {ID: "C", Content: "Buy domain"},
		},
		Columns: map[string]domain.Column{
			"todo": {ID: "todo", Title: "To-Do", TaskIDs: []string{"A", "B"}},
			"done": {ID: "done", Title: "Done", TaskIDs: []string{"C"}},
		},
		ColumnOrder: []string{"todo", "done"},
	}
}
