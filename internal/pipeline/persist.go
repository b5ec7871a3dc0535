package pipeline

import (
	"context"

	"go.uber.org/zap"

	"ideaforge/internal/breakdown"
	"ideaforge/internal/types"
)

// Report enumerates per-task and per-subtask persistence outcomes in
// document order.
type Report struct {
	IdeaID string        `json:"idea_id"`
	Tasks  []TaskOutcome `json:"tasks"`
}

// TaskOutcome records one task write plus its subtask batch. Err is
// empty on success. TaskID is empty when the insert failed.
type TaskOutcome struct {
	Title    string           `json:"title"`
	TaskID   string           `json:"task_id,omitempty"`
	Err      string           `json:"error,omitempty"`
	Subtasks []SubtaskOutcome `json:"subtasks,omitempty"`
}

// SubtaskOutcome records one subtask write.
type SubtaskOutcome struct {
	Title     string `json:"title"`
	SubtaskID string `json:"subtask_id,omitempty"`
	Err       string `json:"error,omitempty"`
}

// Ok reports whether every entity was written.
func (r *Report) Ok() bool {
	for _, t := range r.Tasks {
		if t.Err != "" {
			return false
		}
		for _, s := range t.Subtasks {
			if s.Err != "" {
				return false
			}
		}
	}
	return true
}

// TasksCreated counts successful task inserts.
func (r *Report) TasksCreated() int {
	n := 0
	for _, t := range r.Tasks {
		if t.Err == "" {
			n++
		}
	}
	return n
}

// TasksFailed counts failed task inserts.
func (r *Report) TasksFailed() int {
	return len(r.Tasks) - r.TasksCreated()
}

// SubtasksCreated counts successful subtask inserts.
func (r *Report) SubtasksCreated() int {
	n := 0
	for _, t := range r.Tasks {
		for _, s := range t.Subtasks {
			if s.Err == "" {
				n++
			}
		}
	}
	return n
}

// SubtasksFailed counts failed subtask inserts.
func (r *Report) SubtasksFailed() int {
	n := 0
	for _, t := range r.Tasks {
		for _, s := range t.Subtasks {
			if s.Err != "" {
				n++
			}
		}
	}
	return n
}

// persistBreakdown writes the validated hierarchy in dependency order
// with per-task containment: a failed task insert skips only that
// task's subtasks, and a failed subtask batch never undoes its task
// row nor aborts the remaining tasks. The slice index becomes the
// persisted position so the generated execution sequence survives.
func (p *Pipeline) persistBreakdown(ctx context.Context, ideaID string, tasks []breakdown.TaskSpec) *Report {
	report := &Report{
		IdeaID: ideaID,
		Tasks:  make([]TaskOutcome, 0, len(tasks)),
	}

	for i, spec := range tasks {
		task := &types.Task{
			IdeaID:      ideaID,
			Title:       spec.Title,
			Description: spec.Description,
			Phase:       spec.Phase,
			Status:      types.StatusTodo,
			Position:    i,
		}

		outcome := TaskOutcome{Title: spec.Title}
		if err := p.store.CreateTask(ctx, task); err != nil {
			p.log.Warn("task insert failed, continuing",
				zap.String("idea_id", ideaID),
				zap.String("title", spec.Title),
				zap.Int("position", i),
				zap.Error(err))
			outcome.Err = err.Error()
			report.Tasks = append(report.Tasks, outcome)
			continue
		}
		outcome.TaskID = task.ID

		subtasks := make([]*types.Subtask, 0, len(spec.Subtasks))
		for j, sub := range spec.Subtasks {
			subtasks = append(subtasks, &types.Subtask{
				TaskID:      task.ID,
				Title:       sub.Title,
				Description: sub.Description,
				Status:      types.StatusTodo,
				Position:    j,
			})
		}

		if err := p.store.CreateSubtasks(ctx, subtasks); err != nil {
			p.log.Warn("subtask batch failed, task row kept",
				zap.String("task_id", task.ID),
				zap.Int("count", len(subtasks)),
				zap.Error(err))
			for _, sub := range subtasks {
				outcome.Subtasks = append(outcome.Subtasks, SubtaskOutcome{
					Title: sub.Title,
					Err:   err.Error(),
				})
			}
		} else {
			for _, sub := range subtasks {
				outcome.Subtasks = append(outcome.Subtasks, SubtaskOutcome{
					Title:     sub.Title,
					SubtaskID: sub.ID,
				})
			}
		}

		report.Tasks = append(report.Tasks, outcome)
	}

	return report
}
