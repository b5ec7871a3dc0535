package breakdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
	"tasks": [
		{
			"title": "Design",
			"description": "Sketch the product",
			"phase": "Design",
			"subtasks": [
				{"title": "Wireframes", "description": "Draw the main screens"},
				{"title": "Logo", "description": "Pick a name and logo"}
			]
		},
		{
			"title": "Develop",
			"description": "Build the MVP",
			"phase": "Develop",
			"subtasks": []
		}
	]
}`

func TestParse_ValidDocument(t *testing.T) {
	bd, err := Parse(validDoc)
	require.NoError(t, err)
	require.Len(t, bd.Tasks, 2)

	assert.Equal(t, "Design", bd.Tasks[0].Title)
	assert.Equal(t, "Design", bd.Tasks[0].Phase)
	require.Len(t, bd.Tasks[0].Subtasks, 2)
	assert.Equal(t, "Wireframes", bd.Tasks[0].Subtasks[0].Title)

	assert.Equal(t, "Develop", bd.Tasks[1].Title)
	assert.Empty(t, bd.Tasks[1].Subtasks)
}

func TestParse_StripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validDoc + "\n```"
	bd, err := Parse(fenced)
	require.NoError(t, err)
	assert.Len(t, bd.Tasks, 2)
}

func TestParse_Idempotent(t *testing.T) {
	first, err := Parse(validDoc)
	require.NoError(t, err)
	second, err := Parse(validDoc)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-parse produced different structure (-first +second):\n%s", diff)
	}
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty input", ""},
		{"whitespace", "   \n\t"},
		{"not JSON", "Sure! Here is your breakdown: Design, Develop, Market."},
		{"JSON array", `[{"title": "Design"}]`},
		{"missing tasks key", `{"items": []}`},
		{"tasks not a list", `{"tasks": "Design"}`},
		{"task without title", `{"tasks": [{"description": "no title"}]}`},
		{"task with blank title", `{"tasks": [{"title": "  "}]}`},
		{"subtask without title", `{"tasks": [{"title": "Design", "subtasks": [{"description": "orphan"}]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bd, err := Parse(tc.text)
			assert.Nil(t, bd, "no partial structure may be extracted")
			assert.ErrorIs(t, err, ErrMalformedBreakdown)
		})
	}
}

func TestParse_UnknownFieldsDiscarded(t *testing.T) {
	doc := `{
		"tasks": [
			{
				"title": "Market",
				"description": "Find users",
				"budget": 1000,
				"subtasks": [
					{"title": "Post on forums", "description": "Share the MVP", "prompt": "advisory hint"}
				]
			}
		],
		"confidence": 0.9
	}`
	bd, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, bd.Tasks, 1)
	require.Len(t, bd.Tasks[0].Subtasks, 1)
	assert.Equal(t, "Post on forums", bd.Tasks[0].Subtasks[0].Title)
}

func TestParse_EmptyTasksList(t *testing.T) {
	bd, err := Parse(`{"tasks": []}`)
	require.NoError(t, err)
	assert.Empty(t, bd.Tasks)
}

func TestParsePlan(t *testing.T) {
	plan, err := ParsePlan("  # MVP Plan\nShip it.  ")
	require.NoError(t, err)
	assert.Equal(t, "# MVP Plan\nShip it.", plan)

	_, err = ParsePlan("   \n\t  ")
	assert.ErrorIs(t, err, ErrEmptyPlan)

	_, err = ParsePlan("")
	assert.ErrorIs(t, err, ErrEmptyPlan)
}
