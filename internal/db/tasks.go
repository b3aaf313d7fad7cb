package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

const taskColumns = `id, title, description, status, priority, created_at, updated_at`

// TaskInput carries the fields of a new task. Empty Status defaults to
// "todo", nil Priority to 1.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    *int
}

// TaskPatch fields left nil keep their stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *int
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil
}

func (s *sqlStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	out := []model.Task{}
	q := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, id DESC;`
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		log.Error().Err(err).Msg("[db] ListTasks failed")
		return nil, err
	}
	return out, nil
}

func (s *sqlStore) ListTasksByStatus(ctx context.Context, status string) ([]model.Task, error) {
	out := []model.Task{}
	q := s.q(`SELECT ` + taskColumns + ` FROM tasks WHERE status = ? ORDER BY priority DESC, id;`)
	if err := s.db.SelectContext(ctx, &out, q, status); err != nil {
		log.Error().Err(err).Str("status", status).Msg("[db] ListTasksByStatus failed")
		return nil, err
	}
	return out, nil
}

func (s *sqlStore) GetTask(ctx context.Context, id int) (*model.Task, error) {
	t, err := getOne[model.Task](ctx, s.db, s.q(`SELECT `+taskColumns+` FROM tasks WHERE id = ?;`), id)
	if err != nil {
		log.Error().Err(err).Int("task_id", id).Msg("[db] GetTask failed")
	}
	return t, err
}

func (s *sqlStore) CreateTask(ctx context.Context, in TaskInput) (*model.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = model.TaskStatusTodo
	}
	priority := 1
	if in.Priority != nil {
		priority = *in.Priority
	}

	ts := now()
	var t model.Task
	q := s.q(`
	INSERT INTO tasks (title, description, status, priority, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	RETURNING ` + taskColumns + `;`)
	if err := s.db.GetContext(ctx, &t, q, in.Title, in.Description, status, priority, ts, ts); err != nil {
		log.Error().Err(err).Msg("[db] CreateTask failed")
		return nil, err
	}
	return &t, nil
}

func (s *sqlStore) UpdateTask(ctx context.Context, id int, patch TaskPatch) (*model.Task, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
	UPDATE tasks
	SET
	  title       = COALESCE(?, title),
	  description = COALESCE(?, description),
	  status      = COALESCE(?, status),
	  priority    = COALESCE(?, priority),
	  updated_at  = ?
	WHERE id = ?;`),
		patch.Title, patch.Description, patch.Status, patch.Priority, now(), id,
	)
	if err != nil {
		log.Error().Err(err).Int("task_id", id).Msg("[db] UpdateTask failed")
		return nil, err
	}
	if ok, err := affected(res); err != nil || !ok {
		return nil, err
	}
	return s.GetTask(ctx, id)
}

// DeleteTask detaches the task's pomodoro sessions before removing it.
func (s *sqlStore) DeleteTask(ctx context.Context, id int) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.q(`UPDATE pomodoro_sessions SET task_id = NULL WHERE task_id = ?;`), id); err != nil {
		log.Error().Err(err).Int("task_id", id).Msg("[db] DeleteTask: detach sessions failed")
		return false, err
	}
	res, err := tx.ExecContext(ctx, s.q(`DELETE FROM tasks WHERE id = ?;`), id)
	if err != nil {
		log.Error().Err(err).Int("task_id", id).Msg("[db] DeleteTask failed")
		return false, err
	}
	ok, err := affected(res)
	if err != nil {
		return false, err
	}
	return ok, tx.Commit()
}
