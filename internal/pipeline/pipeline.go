// Package pipeline sequences the generation-to-hierarchy flow:
// validate inputs, build the prompt, call the generation service,
// validate the completion, persist the result.
//
// Failures before generation are surfaced immediately; persistence
// failures after a successful generation are absorbed into a
// best-effort report so an expensive completion is never thrown away
// because of a single write hiccup.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ideaforge/internal/breakdown"
	"ideaforge/internal/llm"
	"ideaforge/internal/prompt"
	"ideaforge/internal/store"
	"ideaforge/internal/types"
)

var (
	// ErrInputInvalid means a required field is missing or unusable.
	// Rejected before any side effect.
	ErrInputInvalid = errors.New("pipeline: invalid input")

	// ErrForbidden means the caller does not own the idea.
	ErrForbidden = errors.New("pipeline: not the idea owner")
)

// Store is the persistence surface the pipeline needs. *store.Store
// satisfies it; tests substitute stubs.
type Store interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	CreateIdea(ctx context.Context, idea *types.Idea) error
	GetIdea(ctx context.Context, id string) (*types.Idea, error)
	CreateTask(ctx context.Context, task *types.Task) error
	CreateSubtasks(ctx context.Context, subtasks []*types.Subtask) error
}

// Pipeline orchestrates plan generation and breakdown generation.
type Pipeline struct {
	llm   llm.Client
	store Store
	log   *zap.Logger
}

// New creates a pipeline with explicit dependencies. A nil logger is
// replaced with a no-op logger.
func New(client llm.Client, st Store, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		llm:   client,
		store: st,
		log:   log.Named("pipeline"),
	}
}

// PlanRequest asks for a narrative plan for a new idea.
type PlanRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
}

// BreakdownRequest asks for the task hierarchy of an existing idea.
type BreakdownRequest struct {
	IdeaID string `json:"idea_id"`
	UserID string `json:"user_id"`
}

// GeneratePlan runs the plan pipeline: it creates the Idea row with its
// generated plan set atomically with the insert. The owner must be an
// existing, non-deleted user; ideas are never created against an
// auto-generated owner.
func (p *Pipeline) GeneratePlan(ctx context.Context, req PlanRequest) (*types.Idea, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInputInvalid)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInputInvalid)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInputInvalid)
	}

	if _, err := p.store.GetUser(ctx, req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s does not exist", ErrInputInvalid, req.UserID)
		}
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}

	pr := prompt.PlanPrompt(req.Title, req.Description)
	completion, err := p.llm.Complete(ctx, pr.System, pr.User, llm.FreeText)
	if err != nil {
		return nil, err
	}

	plan, err := breakdown.ParsePlan(completion)
	if err != nil {
		return nil, err
	}

	idea := &types.Idea{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Plan:        plan,
	}
	if err := p.store.CreateIdea(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to persist idea: %w", err)
	}

	p.log.Info("plan generated",
		zap.String("idea_id", idea.ID),
		zap.String("user_id", idea.UserID),
		zap.Int("plan_len", len(idea.Plan)))
	return idea, nil
}

// GenerateBreakdown runs the breakdown pipeline against an
// already-persisted idea and returns the best-effort persistence
// report. Individual task or subtask write failures do not fail the
// call; they are recorded in the report and logged.
func (p *Pipeline) GenerateBreakdown(ctx context.Context, req BreakdownRequest) (*Report, error) {
	if strings.TrimSpace(req.IdeaID) == "" {
		return nil, fmt.Errorf("%w: idea_id is required", ErrInputInvalid)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInputInvalid)
	}

	idea, err := p.store.GetIdea(ctx, req.IdeaID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve idea: %w", err)
	}
	if idea.UserID != req.UserID {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(idea.Plan) == "" {
		return nil, fmt.Errorf("%w: idea %s has no plan", ErrInputInvalid, idea.ID)
	}

	pr := prompt.BreakdownPrompt(idea.Title, idea.Description, idea.Plan)
	completion, err := p.llm.Complete(ctx, pr.System, pr.User, llm.StrictJSON)
	if err != nil {
		return nil, err
	}

	bd, err := breakdown.Parse(completion)
	if err != nil {
		return nil, err
	}

	report := p.persistBreakdown(ctx, idea.ID, bd.Tasks)

	p.log.Info("breakdown persisted",
		zap.String("idea_id", idea.ID),
		zap.Int("tasks_created", report.TasksCreated()),
		zap.Int("tasks_failed", report.TasksFailed()),
		zap.Int("subtasks_created", report.SubtasksCreated()),
		zap.Int("subtasks_failed", report.SubtasksFailed()))
	return report, nil
}
