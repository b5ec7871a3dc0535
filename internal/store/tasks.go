package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ideaforge/internal/types"
)

// CreateTask inserts a task bound to its idea. The ID is generated when
// empty and the status defaults to todo.
func (s *Store) CreateTask(ctx context.Context, task *types.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Status == "" {
		task.Status = types.StatusTodo
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, idea_id, title, description, phase, status, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.IdeaID, task.Title, task.Description, task.Phase,
		string(task.Status), task.Position, task.CreatedAt.Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// CreateSubtasks bulk-inserts subtasks as a single multi-row statement.
// IDs and defaults are filled in place.
func (s *Store) CreateSubtasks(ctx context.Context, subtasks []*types.Subtask) error {
	if len(subtasks) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(subtasks))
	args := make([]any, 0, len(subtasks)*7)
	for _, sub := range subtasks {
		if sub.ID == "" {
			sub.ID = uuid.New().String()
		}
		if sub.Status == "" {
			sub.Status = types.StatusTodo
		}
		if sub.CreatedAt.IsZero() {
			sub.CreatedAt = time.Now().UTC()
		}
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, sub.ID, sub.TaskID, sub.Title, sub.Description,
			string(sub.Status), sub.Position, sub.CreatedAt.Format(timeFormat))
	}

	query := `INSERT INTO subtasks (id, task_id, title, description, status, position, created_at) VALUES ` +
		strings.Join(placeholders, ", ")
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert subtasks: %w", err)
	}
	return nil
}

// ListTasks returns an idea's tasks ordered by position.
func (s *Store) ListTasks(ctx context.Context, ideaID string) ([]types.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, idea_id, title, description, phase, status, position, created_at, deleted_at
		 FROM tasks WHERE idea_id = ? AND deleted_at IS NULL
		 ORDER BY position ASC`, ideaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []types.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// ListSubtasks returns a task's subtasks ordered by position.
func (s *Store) ListSubtasks(ctx context.Context, taskID string) ([]types.Subtask, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, title, description, status, position, created_at, deleted_at
		 FROM subtasks WHERE task_id = ? AND deleted_at IS NULL
		 ORDER BY position ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	defer rows.Close()

	var subtasks []types.Subtask
	for rows.Next() {
		var sub types.Subtask
		var status, createdAt string
		var deletedAt sql.NullString
		if err := rows.Scan(&sub.ID, &sub.TaskID, &sub.Title, &sub.Description,
			&status, &sub.Position, &createdAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subtask: %w", err)
		}
		sub.Status = types.Status(status)
		sub.CreatedAt = parseTime(createdAt)
		sub.DeletedAt = parseNullTime(deletedAt)
		subtasks = append(subtasks, sub)
	}
	return subtasks, rows.Err()
}

func scanTask(rows *sql.Rows) (types.Task, error) {
	var task types.Task
	var status, createdAt string
	var deletedAt sql.NullString
	if err := rows.Scan(&task.ID, &task.IdeaID, &task.Title, &task.Description,
		&task.Phase, &status, &task.Position, &createdAt, &deletedAt); err != nil {
		return task, fmt.Errorf("failed to scan task: %w", err)
	}
	task.Status = types.Status(status)
	task.CreatedAt = parseTime(createdAt)
	task.DeletedAt = parseNullTime(deletedAt)
	return task, nil
}
