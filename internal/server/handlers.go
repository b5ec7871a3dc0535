package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"ideaforge/internal/breakdown"
	"ideaforge/internal/llm"
	"ideaforge/internal/pipeline"
	"ideaforge/internal/store"
	"ideaforge/internal/types"
)

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	user := &types.User{Name: req.Name, Email: req.Email}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		s.log.Error("create user failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    user,
	})
}

func (s *Server) handleCreateIdea(w http.ResponseWriter, r *http.Request) {
	var req pipeline.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	idea, err := s.pipeline.GeneratePlan(r.Context(), req)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"idea":    idea,
	})
}

func (s *Server) handleCreateIdeaTasks(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	report, err := s.pipeline.GenerateBreakdown(r.Context(), pipeline.BreakdownRequest{
		IdeaID: r.PathValue("id"),
		UserID: body.UserID,
	})
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	// Partial persistence failures still count as success; the report
	// carries the per-entity outcomes.
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"report":  report,
	})
}

func (s *Server) handleGetIdea(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idea, err := s.store.GetIdea(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "idea not found")
			return
		}
		s.log.Error("get idea failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load idea")
		return
	}

	tasks, err := s.store.ListTasks(ctx, idea.ID)
	if err != nil {
		s.log.Error("list tasks failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	type taskWithSubtasks struct {
		types.Task
		Subtasks []types.Subtask `json:"subtasks"`
	}
	out := make([]taskWithSubtasks, 0, len(tasks))
	for _, task := range tasks {
		subtasks, err := s.store.ListSubtasks(ctx, task.ID)
		if err != nil {
			s.log.Error("list subtasks failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load subtasks")
			return
		}
		out = append(out, taskWithSubtasks{Task: task, Subtasks: subtasks})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"idea":    idea,
		"tasks":   out,
	})
}

// writePipelineError maps pipeline error kinds onto HTTP statuses:
// client mistakes to 400-class, upstream failures to 500-class.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrInputInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "idea not found")
	case errors.Is(err, pipeline.ErrForbidden):
		writeError(w, http.StatusForbidden, "not the idea owner")
	case errors.Is(err, llm.ErrCredentialMissing):
		s.log.Error("generation credential missing")
		writeError(w, http.StatusInternalServerError, "generation service not configured")
	case errors.Is(err, llm.ErrServiceUnavailable):
		s.log.Warn("generation service unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, "generation service unavailable")
	case errors.Is(err, llm.ErrEmptyCompletion),
		errors.Is(err, breakdown.ErrEmptyPlan),
		errors.Is(err, breakdown.ErrMalformedBreakdown):
		// Generation answered but with unusable content; a retry may
		// succeed.
		s.log.Warn("generation output rejected", zap.Error(err))
		writeError(w, http.StatusBadGateway, "generation output was unusable, retry the request")
	default:
		s.log.Error("pipeline failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}
