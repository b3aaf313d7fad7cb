// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

// ErrValidation marks input the store refuses to persist.
var ErrValidation = errors.New("validation failed")

// Lookups return (nil, nil) when no row matches; only unexpected database
// failures are reported as errors.
type Store interface {
	// task functions
	ListTasks(ctx context.Context) ([]model.Task, error)
	ListTasksByStatus(ctx context.Context, status string) ([]model.Task, error)
	GetTask(ctx context.Context, id int) (*model.Task, error)
	CreateTask(ctx context.Context, in TaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id int, patch TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id int) (bool, error)

	// schedule functions
	ListSchedules(ctx context.Context) ([]model.Schedule, error)
	GetSchedule(ctx context.Context, id int) (*model.Schedule, error)
	FindScheduleByDate(ctx context.Context, date string) (*model.Schedule, error)
	FindScheduleForDay(ctx context.Context, day, dayStart, dayEnd string) (*model.Schedule, error)
	FindScheduleContaining(ctx context.Context, at string) (*model.Schedule, error)
	InsertSchedule(ctx context.Context, s *model.Schedule) error
	UpdateSchedule(ctx context.Context, s *model.Schedule) (bool, error)
	SetScheduleDate(ctx context.Context, id int, date string) error
	DeleteSchedule(ctx context.Context, id int) (bool, error)

	// schedule event functions
	ListScheduleEvents(ctx context.Context, scheduleID int) ([]model.ScheduleEvent, error)
	GetScheduleEvent(ctx context.Context, scheduleID, eventID int) (*model.ScheduleEvent, error)
	InsertScheduleEvent(ctx context.Context, e *model.ScheduleEvent) error
	UpdateScheduleEvent(ctx context.Context, e *model.ScheduleEvent) (bool, error)
	DeleteScheduleEvent(ctx context.Context, scheduleID, eventID int) (bool, error)

	// pomodoro functions
	GetPomodoroSettings(ctx context.Context) (*model.PomodoroSettings, error)
	UpdatePomodoroSettings(ctx context.Context, patch SettingsPatch) (*model.PomodoroSettings, error)
	ListSessions(ctx context.Context) ([]model.PomodoroSession, error)
	ListSessionsByDate(ctx context.Context, date string) ([]model.PomodoroSession, error)
	GetSession(ctx context.Context, id int) (*model.PomodoroSession, error)
	CreateSession(ctx context.Context, in SessionInput) (*model.PomodoroSession, error)
	CompleteSession(ctx context.Context, id int, endTime string, duration *int) (*model.PomodoroSession, error)
	DeleteSession(ctx context.Context, id int) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}

type sqlStore struct {
	db *sqlx.DB
}

// compile-time check that sqlStore implements Store
var _ Store = (*sqlStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &sqlStore{db: conn}
}

func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

// q rewrites "?" placeholders into the driver's bind style.
func (s *sqlStore) q(query string) string {
	return s.db.Rebind(query)
}

// getOne runs a single-row query, mapping sql.ErrNoRows to a nil result.
func getOne[T any](ctx context.Context, ext sqlx.QueryerContext, query string, args ...any) (*T, error) {
	var out T
	if err := sqlx.GetContext(ctx, ext, &out, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
