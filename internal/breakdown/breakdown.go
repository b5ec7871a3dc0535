// Package breakdown validates text-generation output against the
// shapes the pipeline expects: a free-text plan, or the strict
// {"tasks": [...]} document.
//
// Validation is all-or-nothing at the document level. A malformed
// document yields no partial structure.
package breakdown

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyPlan means the plan completion was blank or whitespace.
	ErrEmptyPlan = errors.New("breakdown: empty plan")

	// ErrMalformedBreakdown means the completion did not satisfy the
	// tasks document schema.
	ErrMalformedBreakdown = errors.New("breakdown: malformed tasks document")
)

// SubtaskSpec is one validated subtask entry. Unknown fields in the
// source document (such as an advisory "prompt" hint) are discarded by
// the decoder, never persisted and never a validation failure.
type SubtaskSpec struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskSpec is one validated task entry with its subtasks in document
// order.
type TaskSpec struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Phase       string        `json:"phase"`
	Subtasks    []SubtaskSpec `json:"subtasks"`
}

// Breakdown is the validated {"tasks": [...]} document.
type Breakdown struct {
	Tasks []TaskSpec `json:"tasks"`
}

// document mirrors Breakdown with a pointer slice so a missing "tasks"
// key can be told apart from an empty list.
type document struct {
	Tasks *[]TaskSpec `json:"tasks"`
}

// ParsePlan accepts a plan completion as-is if it has content.
func ParsePlan(text string) (string, error) {
	plan := strings.TrimSpace(text)
	if plan == "" {
		return "", ErrEmptyPlan
	}
	return plan, nil
}

// Parse validates a completion against the tasks document schema.
// Markdown code fences around the JSON are stripped first; models wrap
// output in fences even when told not to.
func Parse(text string) (*Breakdown, error) {
	cleaned := cleanJSONResponse(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedBreakdown)
	}

	var doc document
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBreakdown, err)
	}
	if doc.Tasks == nil {
		return nil, fmt.Errorf("%w: missing tasks key", ErrMalformedBreakdown)
	}

	tasks := *doc.Tasks
	for i, task := range tasks {
		if strings.TrimSpace(task.Title) == "" {
			return nil, fmt.Errorf("%w: task %d has no title", ErrMalformedBreakdown, i)
		}
		for j, sub := range task.Subtasks {
			if strings.TrimSpace(sub.Title) == "" {
				return nil, fmt.Errorf("%w: task %d subtask %d has no title", ErrMalformedBreakdown, i, j)
			}
		}
	}

	return &Breakdown{Tasks: tasks}, nil
}

// cleanJSONResponse strips markdown code fences from an LLM response.
func cleanJSONResponse(resp string) string {
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	return strings.TrimSpace(resp)
}
