package domain

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

type TeamMember struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Nickname string    `json:"nickname"`
	Avatar   string    `json:"avatar"` // initials
}

type Task struct {
	ID       string     `json:"id"`
	Content  string     `json:"content"`
	Assignee TeamMember `json:"assignee"`
	Streak   int        `json:"streak"`
}

type Column struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	TaskIDs []string `json:"task_ids"` // display order
}

// Board is the aggregate behind one task-tracking view. A Board is treated as
// an immutable value: Apply returns a new Board and never mutates the receiver,
// so unchanged columns and the task map are shared between versions.
type Board struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Version     int               `json:"version"`
	Tasks       map[string]Task   `json:"tasks"`
	Columns     map[string]Column `json:"columns"`
	ColumnOrder []string          `json:"column_order"`
}

// Location addresses a slot within a column.
type Location struct {
	ColumnID string `json:"column_id"`
	Index    int    `json:"index"`
}

// Move relocates one task from Source to Destination. A nil Destination
// means the drop landed outside every column.
type Move struct {
	TaskID      string
	Source      Location
	Destination *Location
}

// Validate checks the board invariants: column order and column map agree,
// every referenced task exists, and no task sits in more than one slot.
func (b *Board) Validate() error {
	if len(b.ColumnOrder) != len(b.Columns) {
		return fmt.Errorf("board.Validate: column order lists %d columns, board has %d: %w",
			len(b.ColumnOrder), len(b.Columns), ErrInvalidBoard)
	}

	ordered := make(map[string]struct{}, len(b.ColumnOrder))
	for _, id := range b.ColumnOrder {
		if _, ok := b.Columns[id]; !ok {
			return fmt.Errorf("board.Validate: unknown column %q in order: %w", id, ErrInvalidBoard)
		}
		if _, dup := ordered[id]; dup {
			return fmt.Errorf("board.Validate: column %q ordered twice: %w", id, ErrInvalidBoard)
		}
		ordered[id] = struct{}{}
	}

	for id, t := range b.Tasks {
		if t.ID != id {
			return fmt.Errorf("board.Validate: task key %q holds task %q: %w", id, t.ID, ErrInvalidBoard)
		}
	}

	placed := make(map[string]string, len(b.Tasks))
	for id, col := range b.Columns {
		if col.ID != id {
			return fmt.Errorf("board.Validate: column key %q holds column %q: %w", id, col.ID, ErrInvalidBoard)
		}
		for _, taskID := range col.TaskIDs {
			if _, ok := b.Tasks[taskID]; !ok {
				return fmt.Errorf("board.Validate: column %q references unknown task %q: %w", id, taskID, ErrInvalidBoard)
			}
			if prev, dup := placed[taskID]; dup {
				return fmt.Errorf("board.Validate: task %q placed in %q and %q: %w", taskID, prev, id, ErrInvalidBoard)
			}
			placed[taskID] = id
		}
	}

	return nil
}

// Apply returns the board that results from m. No-op moves (nil destination,
// or the same column and index) return the receiver itself.
//
// The destination index is interpreted against the destination sequence after
// the task has been removed from its source, so a same-column move accepts
// indexes in [0, len-1] and a cross-column move accepts [0, len(dest)].
// Anything out of range fails with ErrInvalidMove; indexes are never clamped.
func (b *Board) Apply(m Move) (*Board, error) {
	if m.Destination == nil {
		return b, nil
	}

	src, ok := b.Columns[m.Source.ColumnID]
	if !ok {
		return nil, fmt.Errorf("board.Apply: unknown source column %q: %w", m.Source.ColumnID, ErrInvalidMove)
	}
	dst, ok := b.Columns[m.Destination.ColumnID]
	if !ok {
		return nil, fmt.Errorf("board.Apply: unknown destination column %q: %w", m.Destination.ColumnID, ErrInvalidMove)
	}
	if m.Source.Index < 0 || m.Source.Index >= len(src.TaskIDs) {
		return nil, fmt.Errorf("board.Apply: source index %d out of range for column %q (len %d): %w",
			m.Source.Index, src.ID, len(src.TaskIDs), ErrInvalidMove)
	}
	if got := src.TaskIDs[m.Source.Index]; got != m.TaskID {
		return nil, fmt.Errorf("board.Apply: %s[%d] holds task %q, not %q: %w",
			src.ID, m.Source.Index, got, m.TaskID, ErrInvalidMove)
	}
	if _, ok := b.Tasks[m.TaskID]; !ok {
		return nil, fmt.Errorf("board.Apply: unknown task %q: %w", m.TaskID, ErrInvalidMove)
	}

	if src.ID == dst.ID && m.Source.Index == m.Destination.Index {
		return b, nil
	}

	srcIDs := slices.Delete(slices.Clone(src.TaskIDs), m.Source.Index, m.Source.Index+1)

	columns := make(map[string]Column, len(b.Columns))
	for id, col := range b.Columns {
		columns[id] = col
	}

	if src.ID == dst.ID {
		if err := checkInsertIndex(m.Destination.Index, len(srcIDs), dst.ID); err != nil {
			return nil, err
		}
		src.TaskIDs = slices.Insert(srcIDs, m.Destination.Index, m.TaskID)
		columns[src.ID] = src
	} else {
		if err := checkInsertIndex(m.Destination.Index, len(dst.TaskIDs), dst.ID); err != nil {
			return nil, err
		}
		src.TaskIDs = srcIDs
		dst.TaskIDs = slices.Insert(slices.Clone(dst.TaskIDs), m.Destination.Index, m.TaskID)
		columns[src.ID] = src
		columns[dst.ID] = dst
	}

	return &Board{
		ID:          b.ID,
		Name:        b.Name,
		Version:     b.Version + 1,
		Tasks:       b.Tasks,
		Columns:     columns,
		ColumnOrder: b.ColumnOrder,
	}, nil
}

func checkInsertIndex(idx, length int, columnID string) error {
	if idx < 0 || idx > length {
		return fmt.Errorf("board.Apply: destination index %d out of range for column %q (max %d): %w",
			idx, columnID, length, ErrInvalidMove)
	}
	return nil
}

// ColumnTasks returns the tasks of a column in display order.
func (b *Board) ColumnTasks(columnID string) ([]Task, bool) {
	col, ok := b.Columns[columnID]
	if !ok {
		return nil, false
	}
	tasks := make([]Task, 0, len(col.TaskIDs))
	for _, id := range col.TaskIDs {
		tasks = append(tasks, b.Tasks[id])
	}
	return tasks, true
}

// TaskCount counts task IDs across all columns.
func (b *Board) TaskCount() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.TaskIDs)
	}
	return n
}

// Clone returns a deep copy that shares no maps or slices with b.
func (b *Board) Clone() *Board {
	out := &Board{
		ID:          b.ID,
		Name:        b.Name,
		Version:     b.Version,
		Tasks:       make(map[string]Task, len(b.Tasks)),
		Columns:     make(map[string]Column, len(b.Columns)),
		ColumnOrder: slices.Clone(b.ColumnOrder),
	}
	for id, t := range b.Tasks {
		out.Tasks[id] = t
	}
	for id, col := range b.Columns {
		col.TaskIDs = slices.Clone(col.TaskIDs)
		out.Columns[id] = col
	}
	return out
}
