package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusTodo.Valid())
	assert.True(t, StatusDoing.Valid())
	assert.True(t, StatusDone.Valid())
	assert.False(t, Status("blocked").Valid())
	assert.False(t, Status("").Valid())
}

func TestUserJSONHidesCredentials(t *testing.T) {
	data, err := json.Marshal(User{ID: "u1", Name: "Ada", PasswordHash: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}
