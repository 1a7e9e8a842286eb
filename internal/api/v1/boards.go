package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/synergysphere/sphere/internal/domain"
	"github.com/synergysphere/sphere/internal/server/middleware"
)

type BoardSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	Columns   int       `json:"columns"`
	TaskCount int       `json:"task_count"`
}

type ColumnView struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Tasks []domain.Task `json:"tasks"`
}

// BoardView renders a board the way the UI draws it: columns in display
// order, each carrying its tasks in display order.
type BoardView struct {
	ID      uuid.UUID    `json:"id"`
	Name    string       `json:"name"`
	Version int          `json:"version"`
	Columns []ColumnView `json:"columns"`
}

func newBoardView(b *domain.Board) *BoardView {
	view := &BoardView{
		ID:      b.ID,
		Name:    b.Name,
		Version: b.Version,
		Columns: make([]ColumnView, 0, len(b.ColumnOrder)),
	}
	for _, colID := range b.ColumnOrder {
		tasks, _ := b.ColumnTasks(colID)
		view.Columns = append(view.Columns, ColumnView{
			ID:    colID,
			Title: b.Columns[colID].Title,
			Tasks: tasks,
		})
	}
	return view
}

type ListBoardsInput struct{}

type ListBoardsOutput struct {
	Body []BoardSummary
}

type GetBoardInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
}

type BoardOutput struct {
	Body *BoardView
}

type MoveTaskInput struct {
	BoardID uuid.UUID `path:"boardID" doc:"Board ID"`
	Body    struct {
		TaskID      string           `json:"task_id" minLength:"1" doc:"Task being dragged"`
		Source      domain.Location  `json:"source" doc:"Where the drag started"`
		Destination *domain.Location `json:"destination,omitempty" doc:"Where the task was dropped; omit when dropped outside every column"`
	}
}

func RegisterBoardRoutes(api huma.API, boards BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-boards",
		Method:      http.MethodGet,
		Path:        "/boards",
		Summary:     "List boards",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, _ *ListBoardsInput) (*ListBoardsOutput, error) {
		list, err := boards.List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list boards", err)
		}

		out := &ListBoardsOutput{Body: make([]BoardSummary, 0, len(list))}
		for _, b := range list {
			out.Body = append(out.Body, BoardSummary{
				ID:        b.ID,
				Name:      b.Name,
				Version:   b.Version,
				Columns:   len(b.ColumnOrder),
				TaskCount: b.TaskCount(),
			})
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-board",
		Method:      http.MethodGet,
		Path:        "/boards/{boardID}",
		Summary:     "Get a board with its columns in display order",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *GetBoardInput) (*BoardOutput, error) {
		b, err := boards.Get(ctx, input.BoardID)
		if err != nil {
			return nil, boardError(err)
		}
		return &BoardOutput{Body: newBoardView(b)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-task",
		Method:      http.MethodPost,
		Path:        "/boards/{boardID}/moves",
		Summary:     "Move a task within or across columns",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *MoveTaskInput) (*BoardOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		b, err := boards.Move(ctx, input.BoardID, userID, domain.Move{
			TaskID:      input.Body.TaskID,
			Source:      input.Body.Source,
			Destination: input.Body.Destination,
		})
		if err != nil {
			return nil, boardError(err)
		}
		return &BoardOutput{Body: newBoardView(b)}, nil
	})
}

func boardError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound("board not found")
	case errors.Is(err, domain.ErrInvalidMove):
		return huma.Error400BadRequest("invalid move", err)
	default:
		log.Error().Err(err).Msg("api: board operation failed")
		return huma.Error500InternalServerError("board operation failed", err)
	}
}
