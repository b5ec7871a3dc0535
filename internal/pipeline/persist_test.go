package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/internal/llm"
	"ideaforge/internal/store"
	"ideaforge/internal/types"
)

const threeTaskDoc = `{"tasks": [
	{"title": "A", "description": "first", "subtasks": [{"title": "A1", "description": ""}, {"title": "A2", "description": ""}]},
	{"title": "B", "description": "second", "subtasks": [{"title": "B1", "description": ""}]},
	{"title": "C", "description": "third", "subtasks": [{"title": "C1", "description": ""}, {"title": "C2", "description": ""}]}
]}`

func breakdownPipeline(st Store, doc string) *Pipeline {
	return New(&mockLLM{
		completeFunc: func(ctx context.Context, system, user string, contract llm.OutputContract) (string, error) {
			return doc, nil
		},
	}, st, nil)
}

func TestPersist_TaskFailureContained(t *testing.T) {
	st := newMockStore()
	st.addUser("u1")
	st.addIdea("i1", "u1", "# Plan")
	st.createTaskFunc = func(ctx context.Context, task *types.Task) error {
		if task.Title == "B" {
			return errors.New("simulated store fault")
		}
		return nil
	}

	report, err := breakdownPipeline(st, threeTaskDoc).GenerateBreakdown(
		context.Background(), BreakdownRequest{IdeaID: "i1", UserID: "u1"})
	require.NoError(t, err, "partial persistence failure still reports success")

	assert.False(t, report.Ok())
	assert.Equal(t, 2, report.TasksCreated())
	assert.Equal(t, 1, report.TasksFailed())

	// A and C and their subtasks survive; B's subtasks were skipped.
	require.Len(t, st.tasks, 2)
	assert.Equal(t, "A", st.tasks[0].Title)
	assert.Equal(t, "C", st.tasks[1].Title)
	assert.Len(t, st.subtasks, 4)

	require.Len(t, report.Tasks, 3)
	assert.Empty(t, report.Tasks[0].Err)
	assert.Contains(t, report.Tasks[1].Err, "simulated store fault")
	assert.Empty(t, report.Tasks[1].Subtasks, "failed task's subtasks are skipped, not attempted")
	assert.Empty(t, report.Tasks[2].Err)

	// Order encodes the generated execution sequence even around the
	// failed insert.
	assert.Equal(t, 0, st.tasks[0].Position)
	assert.Equal(t, 2, st.tasks[1].Position)
}

func TestPersist_SubtaskFailureKeepsTaskRow(t *testing.T) {
	st := newMockStore()
	st.addUser("u1")
	st.addIdea("i1", "u1", "# Plan")
	st.createSubtasksFunc = func(ctx context.Context, subtasks []*types.Subtask) error {
		if len(subtasks) > 0 && subtasks[0].Title == "B1" {
			return errors.New("batch write failed")
		}
		return nil
	}

	report, err := breakdownPipeline(st, threeTaskDoc).GenerateBreakdown(
		context.Background(), BreakdownRequest{IdeaID: "i1", UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TasksCreated(), "subtask failure never undoes the task insert")
	assert.Equal(t, 4, report.SubtasksCreated())
	assert.Equal(t, 1, report.SubtasksFailed())
	require.Len(t, st.tasks, 3)

	assert.Contains(t, report.Tasks[1].Subtasks[0].Err, "batch write failed")
	assert.Empty(t, report.Tasks[2].Subtasks[0].Err, "later siblings are not aborted")
}

func TestPersist_ReportJSONShape(t *testing.T) {
	st := newMockStore()
	st.addUser("u1")
	st.addIdea("i1", "u1", "# Plan")

	report, err := breakdownPipeline(st, threeTaskDoc).GenerateBreakdown(
		context.Background(), BreakdownRequest{IdeaID: "i1", UserID: "u1"})
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`, "successful outcomes omit the error field")
}

// End-to-end against a real SQLite store: a 3-task, 5-subtasks-each
// document yields exactly 3 task rows and 15 subtask rows with parents
// and order intact.
func TestBreakdown_EndToEndSQLite(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "e2e.db"), nil)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	user := &types.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, st.CreateUser(ctx, user))

	doc := map[string]any{}
	var taskSpecs []map[string]any
	for _, title := range []string{"Design", "Develop", "Market"} {
		var subs []map[string]string
		for i := 1; i <= 5; i++ {
			subs = append(subs, map[string]string{
				"title":       fmt.Sprintf("%s step %d", title, i),
				"description": "do it",
			})
		}
		taskSpecs = append(taskSpecs, map[string]any{
			"title":       title,
			"description": title + " the product",
			"phase":       title,
			"subtasks":    subs,
		})
	}
	doc["tasks"] = taskSpecs
	docJSON, err := json.Marshal(doc)
	require.NoError(t, err)

	planCalls := 0
	client := &mockLLM{
		completeFunc: func(ctx context.Context, system, userPrompt string, contract llm.OutputContract) (string, error) {
			if contract == llm.FreeText {
				planCalls++
				return "# Plant Tracker Plan\nWater early, water often.", nil
			}
			return string(docJSON), nil
		},
	}
	p := New(client, st, nil)

	idea, err := p.GeneratePlan(ctx, PlanRequest{
		Title:       "Plant Tracker",
		Description: "App to track watering schedules",
		UserID:      user.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, planCalls)
	assert.NotEmpty(t, idea.Plan)

	report, err := p.GenerateBreakdown(ctx, BreakdownRequest{IdeaID: idea.ID, UserID: user.ID})
	require.NoError(t, err)
	assert.True(t, report.Ok())

	tasks, err := st.ListTasks(ctx, idea.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Design", tasks[0].Title)
	assert.Equal(t, "Develop", tasks[1].Title)
	assert.Equal(t, "Market", tasks[2].Title)

	total := 0
	for _, task := range tasks {
		assert.Equal(t, idea.ID, task.IdeaID)
		subtasks, err := st.ListSubtasks(ctx, task.ID)
		require.NoError(t, err)
		require.Len(t, subtasks, 5)
		for j, sub := range subtasks {
			assert.Equal(t, task.ID, sub.TaskID)
			assert.Equal(t, j, sub.Position)
		}
		total += len(subtasks)
	}
	assert.Equal(t, 15, total)
}
