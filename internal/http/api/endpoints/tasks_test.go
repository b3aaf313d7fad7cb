package endpoints

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

func TestTaskEndpoints(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/tasks", map[string]any{"title": "Write report", "priority": 3})
	require.Equal(t, http.StatusCreated, code)
	task := field[model.Task](t, env, "task")
	assert.Equal(t, model.TaskStatusTodo, task.Status)
	assert.Equal(t, 3, task.Priority)

	_, _ = s.do(http.MethodPost, "/api/tasks", map[string]any{"title": "Low", "priority": 1})

	code, env = s.do(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]any{"status": "in_progress"})
	require.Equal(t, http.StatusOK, code)
	updated := field[model.Task](t, env, "task")
	assert.Equal(t, model.TaskStatusInProgress, updated.Status)
	assert.Equal(t, "Write report", updated.Title)

	code, env = s.do(http.MethodGet, "/api/tasks/status/in_progress", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Results)
	assert.Equal(t, 1, *env.Results)

	code, env = s.do(http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, field[[]model.Task](t, env, "tasks"), 2)

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTaskValidation(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodPost, "/api/tasks", map[string]any{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/tasks", map[string]any{"title": "x", "status": "blocked"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodGet, "/api/tasks/status/blocked", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPut, "/api/tasks/77", map[string]any{"title": "ghost"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env := s.do(http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, *env.Results)
	assert.JSONEq(t, `[]`, string(env.Data["tasks"]))
}
