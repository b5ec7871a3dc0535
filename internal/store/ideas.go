package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ideaforge/internal/types"
)

// CreateIdea inserts an idea with its plan set atomically with the row.
// The ID is generated when empty.
func (s *Store) CreateIdea(ctx context.Context, idea *types.Idea) error {
	if idea.ID == "" {
		idea.ID = uuid.New().String()
	}
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ideas (id, user_id, title, description, plan, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		idea.ID, idea.UserID, idea.Title, idea.Description, idea.Plan,
		idea.CreatedAt.Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to insert idea: %w", err)
	}
	return nil
}

// GetIdea loads an idea by id. Soft-deleted ideas are not found.
func (s *Store) GetIdea(ctx context.Context, id string) (*types.Idea, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, plan, created_at, deleted_at
		 FROM ideas WHERE id = ? AND deleted_at IS NULL`, id)

	var idea types.Idea
	var createdAt string
	var deletedAt sql.NullString
	if err := row.Scan(&idea.ID, &idea.UserID, &idea.Title, &idea.Description,
		&idea.Plan, &createdAt, &deletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load idea: %w", err)
	}
	idea.CreatedAt = parseTime(createdAt)
	idea.DeletedAt = parseNullTime(deletedAt)
	return &idea, nil
}

// ListIdeas returns a user's ideas, newest first.
func (s *Store) ListIdeas(ctx context.Context, userID string) ([]types.Idea, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, plan, created_at, deleted_at
		 FROM ideas WHERE user_id = ? AND deleted_at IS NULL
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	var ideas []types.Idea
	for rows.Next() {
		var idea types.Idea
		var createdAt string
		var deletedAt sql.NullString
		if err := rows.Scan(&idea.ID, &idea.UserID, &idea.Title, &idea.Description,
			&idea.Plan, &createdAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		idea.CreatedAt = parseTime(createdAt)
		idea.DeletedAt = parseNullTime(deletedAt)
		ideas = append(ideas, idea)
	}
	return ideas, rows.Err()
}

// SoftDeleteIdea marks an idea as deleted. Tasks are left in place;
// there is no cascading delete, deletion is logical only.
func (s *Store) SoftDeleteIdea(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE ideas SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(timeFormat), id)
	if err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
