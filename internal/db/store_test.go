package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestMigrationsAreRerunnable(t *testing.T) {
	conn, err := Init(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	require.NoError(t, RunMigrations(ctx, conn))
	require.NoError(t, RunMigrations(ctx, conn))

	var count int
	require.NoError(t, conn.Get(&count, `SELECT COUNT(*) FROM pomodoro_settings;`))
	assert.Equal(t, 1, count)
}

func TestTaskStore(t *testing.T) {
	ctx := context.Background()
	store := NewTestStore(t)

	t.Run("create applies defaults", func(t *testing.T) {
		task, err := store.CreateTask(ctx, TaskInput{Title: "Write report"})
		require.NoError(t, err)
		assert.Greater(t, task.ID, 0)
		assert.Equal(t, model.TaskStatusTodo, task.Status)
		assert.Equal(t, 1, task.Priority)
		assert.NotEmpty(t, task.CreatedAt)
	})

	t.Run("create requires title", func(t *testing.T) {
		_, err := store.CreateTask(ctx, TaskInput{Title: "  "})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		task, err := store.CreateTask(ctx, TaskInput{Title: "Review", Description: "PR 12", Priority: ptr(3)})
		require.NoError(t, err)

		updated, err := store.UpdateTask(ctx, task.ID, TaskPatch{Status: ptr(model.TaskStatusDone)})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Review", updated.Title)
		assert.Equal(t, "PR 12", updated.Description)
		assert.Equal(t, 3, updated.Priority)
		assert.Equal(t, model.TaskStatusDone, updated.Status)
	})

	t.Run("update missing task returns nil", func(t *testing.T) {
		updated, err := store.UpdateTask(ctx, 9999, TaskPatch{Title: ptr("x")})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("by status orders by priority desc", func(t *testing.T) {
		_, err := store.CreateTask(ctx, TaskInput{Title: "low", Status: model.TaskStatusInProgress, Priority: ptr(1)})
		require.NoError(t, err)
		_, err = store.CreateTask(ctx, TaskInput{Title: "high", Status: model.TaskStatusInProgress, Priority: ptr(5)})
		require.NoError(t, err)

		tasks, err := store.ListTasksByStatus(ctx, model.TaskStatusInProgress)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "high", tasks[0].Title)
		assert.Equal(t, "low", tasks[1].Title)
	})

	t.Run("delete", func(t *testing.T) {
		task, err := store.CreateTask(ctx, TaskInput{Title: "gone"})
		require.NoError(t, err)

		ok, err := store.DeleteTask(ctx, task.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.DeleteTask(ctx, task.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := store.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestScheduleStore(t *testing.T) {
	ctx := context.Background()
	store := NewTestStore(t)

	sc := &model.Schedule{
		Title:     "Monday",
		Date:      "2024-05-06",
		StartDate: "2024-05-06T00:00:00",
		EndDate:   "2024-05-06T23:59:59",
		Events: []model.ScheduleEvent{
			{Title: "Lunch", StartTime: "12:00", EndTime: "13:00"},
			{Title: "Standup", StartTime: "09:00", EndTime: "09:15"},
		},
	}
	require.NoError(t, store.InsertSchedule(ctx, sc))
	require.Greater(t, sc.ID, 0)
	require.Len(t, sc.Events, 2)
	assert.Equal(t, sc.ID, sc.Events[0].ScheduleID)

	t.Run("events ordered by start time", func(t *testing.T) {
		events, err := store.ListScheduleEvents(ctx, sc.ID)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "Standup", events[0].Title)
		assert.Equal(t, "Lunch", events[1].Title)
	})

	t.Run("find by date and by day", func(t *testing.T) {
		got, err := store.FindScheduleByDate(ctx, "2024-05-06")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, sc.ID, got.ID)

		got, err = store.FindScheduleForDay(ctx, "2024-05-06", "2024-05-06T00:00:00", "2024-05-06T23:59:59")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, sc.ID, got.ID)

		got, err = store.FindScheduleByDate(ctx, "2024-05-07")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("event ownership is enforced", func(t *testing.T) {
		other := &model.Schedule{Title: "Other", Date: "2024-05-07", StartDate: "2024-05-07T00:00:00", EndDate: "2024-05-07T23:59:59"}
		require.NoError(t, store.InsertSchedule(ctx, other))

		ev, err := store.GetScheduleEvent(ctx, other.ID, sc.Events[0].ID)
		require.NoError(t, err)
		assert.Nil(t, ev)

		ok, err := store.DeleteScheduleEvent(ctx, other.ID, sc.Events[0].ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete cascades events", func(t *testing.T) {
		ok, err := store.DeleteSchedule(ctx, sc.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		events, err := store.ListScheduleEvents(ctx, sc.ID)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestPomodoroStore(t *testing.T) {
	ctx := context.Background()
	store := NewTestStore(t)

	t.Run("settings defaults and partial update", func(t *testing.T) {
		st, err := store.GetPomodoroSettings(ctx)
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Equal(t, 1, st.ID)
		assert.Equal(t, 25, st.WorkDuration)
		assert.Equal(t, 4, st.LongBreakInterval)

		st, err = store.UpdatePomodoroSettings(ctx, SettingsPatch{WorkDuration: ptr(50)})
		require.NoError(t, err)
		assert.Equal(t, 50, st.WorkDuration)
		assert.Equal(t, 5, st.BreakDuration)
		assert.Equal(t, 15, st.LongBreakDuration)

		_, err = store.UpdatePomodoroSettings(ctx, SettingsPatch{BreakDuration: ptr(0)})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("session lifecycle", func(t *testing.T) {
		task, err := store.CreateTask(ctx, TaskInput{Title: "Focus"})
		require.NoError(t, err)

		sess, err := store.CreateSession(ctx, SessionInput{
			TaskID:    &task.ID,
			StartTime: "2024-05-06T09:00:00Z",
			Duration:  25,
			Type:      model.SessionTypeWork,
		})
		require.NoError(t, err)
		require.NotNil(t, sess.TaskTitle)
		assert.Equal(t, "Focus", *sess.TaskTitle)
		assert.Nil(t, sess.EndTime)

		byDate, err := store.ListSessionsByDate(ctx, "2024-05-06")
		require.NoError(t, err)
		assert.Len(t, byDate, 1)

		done, err := store.CompleteSession(ctx, sess.ID, "2024-05-06T09:25:00Z", ptr(24))
		require.NoError(t, err)
		require.NotNil(t, done.EndTime)
		assert.Equal(t, 24, done.Duration)

		ok, err := store.DeleteTask(ctx, task.ID)
		require.NoError(t, err)
		require.True(t, ok)

		orphan, err := store.GetSession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Nil(t, orphan.TaskID)

		ok, err = store.DeleteSession(ctx, sess.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects unknown session type", func(t *testing.T) {
		_, err := store.CreateSession(ctx, SessionInput{Duration: 5, Type: "nap"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("complete missing session returns nil", func(t *testing.T) {
		got, err := store.CompleteSession(ctx, 4242, now(), nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
