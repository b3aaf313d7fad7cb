package endpoints

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

func TestPomodoroSettingsEndpoints(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/pomodoro/settings", nil)
	require.Equal(t, http.StatusOK, code)
	settings := field[model.PomodoroSettings](t, env, "settings")
	assert.Equal(t, 25, settings.WorkDuration)

	code, env = s.do(http.MethodPut, "/api/pomodoro/settings", map[string]any{"workDuration": 50})
	require.Equal(t, http.StatusOK, code)
	settings = field[model.PomodoroSettings](t, env, "settings")
	assert.Equal(t, 50, settings.WorkDuration)
	assert.Equal(t, 5, settings.BreakDuration)

	code, _ = s.do(http.MethodPut, "/api/pomodoro/settings", map[string]any{"break_duration": 0})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPomodoroSessionEndpoints(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(http.MethodPost, "/api/tasks", map[string]any{"title": "Focus"})
	task := field[model.Task](t, env, "task")

	code, env := s.do(http.MethodPost, "/api/pomodoro/sessions", map[string]any{
		"taskId": task.ID, "duration": 25, "type": "work", "date": "2024-05-01T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, code)
	session := field[model.PomodoroSession](t, env, "session")
	require.NotNil(t, session.TaskTitle)
	assert.Equal(t, "Focus", *session.TaskTitle)
	assert.Nil(t, session.EndTime)

	code, env = s.do(http.MethodPost, "/api/pomodoro/sessions", map[string]any{"completed_sessions": 2})
	require.Equal(t, http.StatusCreated, code)
	summary := field[model.PomodoroSession](t, env, "session")
	assert.Equal(t, 25, summary.Duration)
	assert.Equal(t, model.SessionTypeWork, summary.Type)

	code, env = s.do(http.MethodGet, "/api/pomodoro/sessions/date/2024-05-01", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, *env.Results)

	code, env = s.do(http.MethodPut, fmt.Sprintf("/api/pomodoro/sessions/%d/complete", session.ID), map[string]any{"duration": 20})
	require.Equal(t, http.StatusOK, code)
	done := field[model.PomodoroSession](t, env, "session")
	require.NotNil(t, done.EndTime)
	assert.Equal(t, 20, done.Duration)

	code, _ = s.do(http.MethodPut, fmt.Sprintf("/api/pomodoro/sessions/%d/complete", summary.ID), nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/pomodoro/sessions", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, *env.Results)

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/pomodoro/sessions/%d", session.ID), nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/pomodoro/sessions/%d", session.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPomodoroSessionValidation(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/pomodoro/sessions", map[string]any{"duration": 25})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error", env.Status)

	code, _ = s.do(http.MethodPost, "/api/pomodoro/sessions", map[string]any{"duration": 25, "type": "work", "task_id": 999})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPut, "/api/pomodoro/sessions/999/complete", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/pomodoro/sessions/date/yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
