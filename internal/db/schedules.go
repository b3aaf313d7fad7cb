package db

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

const (
	scheduleColumns = `id, title, description, date, start_date, end_date, created_at, updated_at`
	eventColumns    = `id, schedule_id, title, description, start_time, end_time, created_at, updated_at`
)

func (s *sqlStore) ListSchedules(ctx context.Context) ([]model.Schedule, error) {
	out := []model.Schedule{}
	q := `SELECT ` + scheduleColumns + ` FROM schedule ORDER BY start_date ASC, id ASC;`
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		log.Error().Err(err).Msg("[db] ListSchedules failed")
		return nil, err
	}
	return out, nil
}

func (s *sqlStore) GetSchedule(ctx context.Context, id int) (*model.Schedule, error) {
	sc, err := getOne[model.Schedule](ctx, s.db, s.q(`SELECT `+scheduleColumns+` FROM schedule WHERE id = ?;`), id)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("[db] GetSchedule failed")
	}
	return sc, err
}

// FindScheduleByDate matches the stored date column exactly. When duplicates
// exist the oldest row wins.
func (s *sqlStore) FindScheduleByDate(ctx context.Context, date string) (*model.Schedule, error) {
	sc, err := getOne[model.Schedule](ctx, s.db, s.q(`
	SELECT `+scheduleColumns+`
	  FROM schedule
	 WHERE date = ?
	 ORDER BY id
	 LIMIT 1;`), date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("[db] FindScheduleByDate failed")
	}
	return sc, err
}

// FindScheduleForDay matches a header whose window covers the whole day, or
// whose start_date falls on that day.
func (s *sqlStore) FindScheduleForDay(ctx context.Context, day, dayStart, dayEnd string) (*model.Schedule, error) {
	sc, err := getOne[model.Schedule](ctx, s.db, s.q(`
	SELECT `+scheduleColumns+`
	  FROM schedule
	 WHERE (start_date <= ? AND end_date >= ?)
	    OR substr(start_date, 1, 10) = ?
	 ORDER BY id
	 LIMIT 1;`), dayStart, dayEnd, day)
	if err != nil {
		log.Error().Err(err).Str("date", day).Msg("[db] FindScheduleForDay failed")
	}
	return sc, err
}

func (s *sqlStore) FindScheduleContaining(ctx context.Context, at string) (*model.Schedule, error) {
	sc, err := getOne[model.Schedule](ctx, s.db, s.q(`
	SELECT `+scheduleColumns+`
	  FROM schedule
	 WHERE start_date <= ? AND end_date >= ?
	 ORDER BY id
	 LIMIT 1;`), at, at)
	if err != nil {
		log.Error().Err(err).Str("at", at).Msg("[db] FindScheduleContaining failed")
	}
	return sc, err
}

// InsertSchedule stores the header and any events attached to it in one
// transaction. IDs and timestamps are written back into sc.
func (s *sqlStore) InsertSchedule(ctx context.Context, sc *model.Schedule) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ts := now()
	var row model.Schedule
	err = tx.GetContext(ctx, &row, s.q(`
	INSERT INTO schedule (title, description, date, start_date, end_date, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING `+scheduleColumns+`;`),
		sc.Title, sc.Description, sc.Date, sc.StartDate, sc.EndDate, ts, ts,
	)
	if err != nil {
		log.Error().Err(err).Str("date", sc.Date).Msg("[db] InsertSchedule failed")
		return err
	}

	events := make([]model.ScheduleEvent, 0, len(sc.Events))
	for _, e := range sc.Events {
		var ev model.ScheduleEvent
		err := tx.GetContext(ctx, &ev, s.q(`
		INSERT INTO schedule_events (schedule_id, title, description, start_time, end_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+eventColumns+`;`),
			row.ID, e.Title, e.Description, e.StartTime, e.EndTime, ts, ts,
		)
		if err != nil {
			log.Error().Err(err).Int("schedule_id", row.ID).Msg("[db] InsertSchedule: event insert failed")
			return err
		}
		events = append(events, ev)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	row.Events = events
	*sc = row
	return nil
}

// UpdateSchedule replaces title, description, date and window of an existing
// header. It reports false when no row has sc.ID.
func (s *sqlStore) UpdateSchedule(ctx context.Context, sc *model.Schedule) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
	UPDATE schedule
	SET
	  title       = ?,
	  description = ?,
	  date        = ?,
	  start_date  = ?,
	  end_date    = ?,
	  updated_at  = ?
	WHERE id = ?;`),
		sc.Title, sc.Description, sc.Date, sc.StartDate, sc.EndDate, now(), sc.ID,
	)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", sc.ID).Msg("[db] UpdateSchedule failed")
		return false, err
	}
	return affected(res)
}

func (s *sqlStore) SetScheduleDate(ctx context.Context, id int, date string) error {
	_, err := s.db.ExecContext(ctx, s.q(`UPDATE schedule SET date = ? WHERE id = ?;`), date, id)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Str("date", date).Msg("[db] SetScheduleDate failed")
	}
	return err
}

// DeleteSchedule removes the header and every event it owns.
func (s *sqlStore) DeleteSchedule(ctx context.Context, id int) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM schedule_events WHERE schedule_id = ?;`), id); err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("[db] DeleteSchedule: event cascade failed")
		return false, err
	}
	res, err := tx.ExecContext(ctx, s.q(`DELETE FROM schedule WHERE id = ?;`), id)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("[db] DeleteSchedule failed")
		return false, err
	}
	ok, err := affected(res)
	if err != nil {
		return false, err
	}
	return ok, tx.Commit()
}

func (s *sqlStore) ListScheduleEvents(ctx context.Context, scheduleID int) ([]model.ScheduleEvent, error) {
	out := []model.ScheduleEvent{}
	q := s.q(`SELECT ` + eventColumns + ` FROM schedule_events WHERE schedule_id = ? ORDER BY start_time ASC, id ASC;`)
	if err := s.db.SelectContext(ctx, &out, q, scheduleID); err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("[db] ListScheduleEvents failed")
		return nil, err
	}
	return out, nil
}

func (s *sqlStore) GetScheduleEvent(ctx context.Context, scheduleID, eventID int) (*model.ScheduleEvent, error) {
	ev, err := getOne[model.ScheduleEvent](ctx, s.db,
		s.q(`SELECT `+eventColumns+` FROM schedule_events WHERE id = ? AND schedule_id = ?;`), eventID, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Int("event_id", eventID).Msg("[db] GetScheduleEvent failed")
	}
	return ev, err
}

func (s *sqlStore) InsertScheduleEvent(ctx context.Context, e *model.ScheduleEvent) error {
	ts := now()
	var row model.ScheduleEvent
	err := s.db.GetContext(ctx, &row, s.q(`
	INSERT INTO schedule_events (schedule_id, title, description, start_time, end_time, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING `+eventColumns+`;`),
		e.ScheduleID, e.Title, e.Description, e.StartTime, e.EndTime, ts, ts,
	)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", e.ScheduleID).Msg("[db] InsertScheduleEvent failed")
		return err
	}
	*e = row
	return nil
}

// UpdateScheduleEvent writes every mutable column of e, scoped to its owner.
func (s *sqlStore) UpdateScheduleEvent(ctx context.Context, e *model.ScheduleEvent) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
	UPDATE schedule_events
	SET
	  title       = ?,
	  description = ?,
	  start_time  = ?,
	  end_time    = ?,
	  updated_at  = ?
	WHERE id = ? AND schedule_id = ?;`),
		e.Title, e.Description, e.StartTime, e.EndTime, now(), e.ID, e.ScheduleID,
	)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", e.ScheduleID).Int("event_id", e.ID).Msg("[db] UpdateScheduleEvent failed")
		return false, err
	}
	return affected(res)
}

func (s *sqlStore) DeleteScheduleEvent(ctx context.Context, scheduleID, eventID int) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM schedule_events WHERE id = ? AND schedule_id = ?;`), eventID, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Int("event_id", eventID).Msg("[db] DeleteScheduleEvent failed")
		return false, err
	}
	return affected(res)
}
