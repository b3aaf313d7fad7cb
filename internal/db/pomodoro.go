package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

const sessionSelect = `
	SELECT ps.id, ps.task_id, t.title AS task_title, ps.start_time, ps.end_time, ps.duration, ps.type
	  FROM pomodoro_sessions ps
	  LEFT JOIN tasks t ON ps.task_id = t.id`

// SettingsPatch fields left nil keep their stored value. Durations are minutes.
type SettingsPatch struct {
	WorkDuration      *int
	BreakDuration     *int
	LongBreakDuration *int
	LongBreakInterval *int
}

func (p SettingsPatch) validate() error {
	for name, v := range map[string]*int{
		"work_duration":       p.WorkDuration,
		"break_duration":      p.BreakDuration,
		"long_break_duration": p.LongBreakDuration,
		"long_break_interval": p.LongBreakInterval,
	} {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrValidation, name)
		}
	}
	return nil
}

// SessionInput describes a started session. Duration is minutes.
type SessionInput struct {
	TaskID    *int
	StartTime string
	Duration  int
	Type      string
}

func (s *sqlStore) GetPomodoroSettings(ctx context.Context) (*model.PomodoroSettings, error) {
	st, err := getOne[model.PomodoroSettings](ctx, s.db, `
	SELECT id, work_duration, break_duration, long_break_duration, long_break_interval
	  FROM pomodoro_settings
	 WHERE id = 1;`)
	if err != nil {
		log.Error().Err(err).Msg("[db] GetPomodoroSettings failed")
	}
	return st, err
}

func (s *sqlStore) UpdatePomodoroSettings(ctx context.Context, patch SettingsPatch) (*model.PomodoroSettings, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	_, err := s.db.ExecContext(ctx, s.q(`
	UPDATE pomodoro_settings
	SET
	  work_duration       = COALESCE(?, work_duration),
	  break_duration      = COALESCE(?, break_duration),
	  long_break_duration = COALESCE(?, long_break_duration),
	  long_break_interval = COALESCE(?, long_break_interval)
	WHERE id = 1;`),
		patch.WorkDuration, patch.BreakDuration, patch.LongBreakDuration, patch.LongBreakInterval,
	)
	if err != nil {
		log.Error().Err(err).Msg("[db] UpdatePomodoroSettings failed")
		return nil, err
	}
	return s.GetPomodoroSettings(ctx)
}

func (s *sqlStore) ListSessions(ctx context.Context) ([]model.PomodoroSession, error) {
	out := []model.PomodoroSession{}
	if err := s.db.SelectContext(ctx, &out, sessionSelect+` ORDER BY ps.start_time DESC, ps.id DESC;`); err != nil {
		log.Error().Err(err).Msg("[db] ListSessions failed")
		return nil, err
	}
	return out, nil
}

// ListSessionsByDate returns sessions whose start_time falls on date (YYYY-MM-DD).
func (s *sqlStore) ListSessionsByDate(ctx context.Context, date string) ([]model.PomodoroSession, error) {
	out := []model.PomodoroSession{}
	q := s.q(sessionSelect + ` WHERE substr(ps.start_time, 1, 10) = ? ORDER BY ps.start_time DESC, ps.id DESC;`)
	if err := s.db.SelectContext(ctx, &out, q, date); err != nil {
		log.Error().Err(err).Str("date", date).Msg("[db] ListSessionsByDate failed")
		return nil, err
	}
	return out, nil
}

func (s *sqlStore) GetSession(ctx context.Context, id int) (*model.PomodoroSession, error) {
	ps, err := getOne[model.PomodoroSession](ctx, s.db, s.q(sessionSelect+` WHERE ps.id = ?;`), id)
	if err != nil {
		log.Error().Err(err).Int("session_id", id).Msg("[db] GetSession failed")
	}
	return ps, err
}

func (s *sqlStore) CreateSession(ctx context.Context, in SessionInput) (*model.PomodoroSession, error) {
	if !model.ValidSessionType(in.Type) {
		return nil, fmt.Errorf("%w: unknown session type %q", ErrValidation, in.Type)
	}
	if in.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	start := in.StartTime
	if start == "" {
		start = now()
	}

	var id int
	err := s.db.GetContext(ctx, &id, s.q(`
	INSERT INTO pomodoro_sessions (task_id, start_time, duration, type)
	VALUES (?, ?, ?, ?)
	RETURNING id;`),
		in.TaskID, start, in.Duration, in.Type,
	)
	if err != nil {
		log.Error().Err(err).Msg("[db] CreateSession failed")
		return nil, err
	}
	return s.GetSession(ctx, id)
}

// CompleteSession stamps end_time and, when given, overrides the duration.
func (s *sqlStore) CompleteSession(ctx context.Context, id int, endTime string, duration *int) (*model.PomodoroSession, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
	UPDATE pomodoro_sessions
	SET
	  end_time = ?,
	  duration = COALESCE(?, duration)
	WHERE id = ?;`),
		endTime, duration, id,
	)
	if err != nil {
		log.Error().Err(err).Int("session_id", id).Msg("[db] CompleteSession failed")
		return nil, err
	}
	if ok, err := affected(res); err != nil || !ok {
		return nil, err
	}
	return s.GetSession(ctx, id)
}

func (s *sqlStore) DeleteSession(ctx context.Context, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM pomodoro_sessions WHERE id = ?;`), id)
	if err != nil {
		log.Error().Err(err).Int("session_id", id).Msg("[db] DeleteSession failed")
		return false, err
	}
	return affected(res)
}
