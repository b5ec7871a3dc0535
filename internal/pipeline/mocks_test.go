package pipeline

import (
	"context"
	"fmt"

	"ideaforge/internal/llm"
	"ideaforge/internal/store"
	"ideaforge/internal/types"
)

// mockLLM implements llm.Client with a func field.
type mockLLM struct {
	completeFunc func(ctx context.Context, systemPrompt, userPrompt string, contract llm.OutputContract) (string, error)
	calls        int
}

func (m *mockLLM) Complete(ctx context.Context, systemPrompt, userPrompt string, contract llm.OutputContract) (string, error) {
	m.calls++
	if m.completeFunc != nil {
		return m.completeFunc(ctx, systemPrompt, userPrompt, contract)
	}
	return "ok", nil
}

// mockStore implements Store in memory with per-method overrides for
// fault injection.
type mockStore struct {
	users    map[string]*types.User
	ideas    map[string]*types.Idea
	tasks    []*types.Task
	subtasks []*types.Subtask

	createIdeaFunc     func(ctx context.Context, idea *types.Idea) error
	createTaskFunc     func(ctx context.Context, task *types.Task) error
	createSubtasksFunc func(ctx context.Context, subtasks []*types.Subtask) error
}

func newMockStore() *mockStore {
	return &mockStore{
		users: make(map[string]*types.User),
		ideas: make(map[string]*types.Idea),
	}
}

func (m *mockStore) addUser(id string) *types.User {
	u := &types.User{ID: id, Name: id, Email: id + "@example.com"}
	m.users[id] = u
	return u
}

func (m *mockStore) addIdea(id, userID, plan string) *types.Idea {
	idea := &types.Idea{
		ID:          id,
		UserID:      userID,
		Title:       "Plant Tracker",
		Description: "App to track watering schedules",
		Plan:        plan,
	}
	m.ideas[id] = idea
	return idea
}

func (m *mockStore) GetUser(ctx context.Context, id string) (*types.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (m *mockStore) CreateIdea(ctx context.Context, idea *types.Idea) error {
	if m.createIdeaFunc != nil {
		return m.createIdeaFunc(ctx, idea)
	}
	if idea.ID == "" {
		idea.ID = fmt.Sprintf("idea-%d", len(m.ideas)+1)
	}
	m.ideas[idea.ID] = idea
	return nil
}

func (m *mockStore) GetIdea(ctx context.Context, id string) (*types.Idea, error) {
	idea, ok := m.ideas[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return idea, nil
}

func (m *mockStore) CreateTask(ctx context.Context, task *types.Task) error {
	if m.createTaskFunc != nil {
		if err := m.createTaskFunc(ctx, task); err != nil {
			return err
		}
	}
	if task.ID == "" {
		task.ID = fmt.Sprintf("task-%d", len(m.tasks)+1)
	}
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *mockStore) CreateSubtasks(ctx context.Context, subtasks []*types.Subtask) error {
	if m.createSubtasksFunc != nil {
		if err := m.createSubtasksFunc(ctx, subtasks); err != nil {
			return err
		}
	}
	for _, sub := range subtasks {
		if sub.ID == "" {
			sub.ID = fmt.Sprintf("subtask-%d", len(m.subtasks)+1)
		}
		m.subtasks = append(m.subtasks, sub)
	}
	return nil
}

var _ Store = (*mockStore)(nil)
var _ llm.Client = (*mockLLM)(nil)
