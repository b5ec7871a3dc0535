// Package types holds the domain entities shared across ideaforge.
package types

import "time"

// Status is the lifecycle state of a task or subtask.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Valid reports whether s is one of the known status codes.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// User owns ideas. Ideaforge never mutates users beyond creation.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Idea is a submitted product concept plus its generated narrative
// plan. Plan is empty until plan generation succeeds and is immutable
// afterwards; regeneration creates a new Idea rather than rewriting
// history.
type Idea struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Plan        string     `json:"plan,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Task is a top-level phase of work derived from an idea's plan.
// Position preserves generation order, which encodes the intended
// execution sequence (Design before Develop before Market).
type Task struct {
	ID          string     `json:"id"`
	IdeaID      string     `json:"idea_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Phase       string     `json:"phase,omitempty"`
	Status      Status     `json:"status"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Subtask is an actionable unit of work under a task.
type Subtask struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}
