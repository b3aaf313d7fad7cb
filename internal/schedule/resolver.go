// Package schedule resolves day schedules and owns the rules for creating,
// updating and deleting schedule headers and their events.
//
// Not-found conditions are reported as nil/false results, input problems as
// errors wrapping ErrValidation, and store failures are returned wrapped.
package schedule

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

// Store is the persistence the resolver needs. Lookups return (nil, nil)
// when nothing matches.
type Store interface {
	ListSchedules(ctx context.Context) ([]model.Schedule, error)
	GetSchedule(ctx context.Context, id int) (*model.Schedule, error)
	FindScheduleByDate(ctx context.Context, date string) (*model.Schedule, error)
	FindScheduleForDay(ctx context.Context, day, dayStart, dayEnd string) (*model.Schedule, error)
	FindScheduleContaining(ctx context.Context, at string) (*model.Schedule, error)
	InsertSchedule(ctx context.Context, s *model.Schedule) error
	UpdateSchedule(ctx context.Context, s *model.Schedule) (bool, error)
	SetScheduleDate(ctx context.Context, id int, date string) error
	DeleteSchedule(ctx context.Context, id int) (bool, error)

	ListScheduleEvents(ctx context.Context, scheduleID int) ([]model.ScheduleEvent, error)
	GetScheduleEvent(ctx context.Context, scheduleID, eventID int) (*model.ScheduleEvent, error)
	InsertScheduleEvent(ctx context.Context, e *model.ScheduleEvent) error
	UpdateScheduleEvent(ctx context.Context, e *model.ScheduleEvent) (bool, error)
	DeleteScheduleEvent(ctx context.Context, scheduleID, eventID int) (bool, error)
}

// DateCache remembers which schedule id answered a date lookup. Hits are
// always re-validated before use.
type DateCache interface {
	Get(ctx context.Context, date string) (int, bool, error)
	Set(ctx context.Context, date string, id int) error
	Delete(ctx context.Context, date string) error
}

type Resolver struct {
	store Store
	cache DateCache
}

type Option func(*Resolver)

// WithCache enables a date lookaside cache. A nil cache disables it.
func WithCache(c DateCache) Option {
	return func(r *Resolver) { r.cache = c }
}

func NewResolver(store Store, opts ...Option) *Resolver {
	r := &Resolver{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Placeholder is the unsaved schedule returned for a day without a header.
func Placeholder(date string) *model.Schedule {
	return &model.Schedule{ID: 0, Date: date, Events: []model.ScheduleEvent{}}
}

// List returns every header ordered by start_date, without events.
func (r *Resolver) List(ctx context.Context) ([]model.Schedule, error) {
	list, err := r.store.ListSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return list, nil
}

// GetByDate never returns a nil schedule on success: when no header exists
// for date the placeholder (id 0) is returned.
func (r *Resolver) GetByDate(ctx context.Context, date string) (*model.Schedule, error) {
	date = strings.TrimSpace(date)
	sc, err := r.resolve(ctx, date)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return Placeholder(date), nil
	}
	return r.withEvents(ctx, sc)
}

// GetByID returns nil for ids <= 0 without querying the store.
func (r *Resolver) GetByID(ctx context.Context, id int) (*model.Schedule, error) {
	sc, err := r.header(ctx, id)
	if err != nil || sc == nil {
		return nil, err
	}
	return r.withEvents(ctx, sc)
}

// Create stores a new header unless one already resolves for the same date,
// in which case that header is returned and created is false.
func (r *Resolver) Create(ctx context.Context, in CreateInput) (sc *model.Schedule, created bool, err error) {
	draft, err := Normalize(in)
	if err != nil {
		return nil, false, err
	}

	if draft.Date != "" {
		existing, err := r.resolve(ctx, draft.Date)
		if err != nil {
			return nil, false, err
		}
		if existing.Persisted() {
			log.Debug().Int("schedule_id", existing.ID).Str("date", draft.Date).Msg("[schedule] create: returning existing schedule")
			sc, err := r.withEvents(ctx, existing)
			return sc, false, err
		}
	}

	if err := r.store.InsertSchedule(ctx, draft); err != nil {
		return nil, false, fmt.Errorf("insert schedule: %w", err)
	}
	if draft.Date != "" {
		r.remember(ctx, draft.Date, draft.ID)
	}

	sc, err = r.withEvents(ctx, draft)
	return sc, true, err
}

// Update replaces the header fields and re-derives date from start_date.
func (r *Resolver) Update(ctx context.Context, id int, in UpdateInput) (*model.Schedule, error) {
	next := &model.Schedule{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartDate:   NormalizeTimestamp(in.StartDate),
		EndDate:     NormalizeTimestamp(in.EndDate),
	}
	next.Date = DatePortion(next.StartDate)

	prev, err := r.header(ctx, id)
	if err != nil || prev == nil {
		return nil, err
	}
	if err := validateHeader(next.Title, next.StartDate, next.EndDate); err != nil {
		return nil, err
	}

	ok, err := r.store.UpdateSchedule(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("update schedule %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	r.forget(ctx, prev.Date, next.Date)

	return r.GetByID(ctx, id)
}

// Delete removes the header together with all of its events.
func (r *Resolver) Delete(ctx context.Context, id int) (bool, error) {
	prev, err := r.header(ctx, id)
	if err != nil || prev == nil {
		return false, err
	}
	ok, err := r.store.DeleteSchedule(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete schedule %d: %w", id, err)
	}
	r.forget(ctx, prev.Date)
	return ok, nil
}

// Events returns the events of a schedule ordered by start_time.
func (r *Resolver) Events(ctx context.Context, scheduleID int) ([]model.ScheduleEvent, error) {
	events, err := r.store.ListScheduleEvents(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list events for schedule %d: %w", scheduleID, err)
	}
	if events == nil {
		events = []model.ScheduleEvent{}
	}
	slices.SortStableFunc(events, func(a, b model.ScheduleEvent) int {
		return strings.Compare(a.StartTime, b.StartTime)
	})
	return events, nil
}

// AddEvent returns nil when the schedule does not exist. Overlapping events
// are allowed.
func (r *Resolver) AddEvent(ctx context.Context, scheduleID int, in EventInput) (*model.ScheduleEvent, error) {
	sc, err := r.header(ctx, scheduleID)
	if err != nil || sc == nil {
		return nil, err
	}

	ev, err := in.event()
	if err != nil {
		return nil, err
	}
	ev.ScheduleID = sc.ID

	if err := r.store.InsertScheduleEvent(ctx, &ev); err != nil {
		return nil, fmt.Errorf("insert event for schedule %d: %w", scheduleID, err)
	}
	return &ev, nil
}

// UpdateEvent applies patch to an event owned by scheduleID. It returns nil
// when the event does not exist or belongs to another schedule.
func (r *Resolver) UpdateEvent(ctx context.Context, scheduleID, eventID int, patch EventPatch) (*model.ScheduleEvent, error) {
	if scheduleID <= 0 || eventID <= 0 {
		return nil, nil
	}
	ev, err := r.store.GetScheduleEvent(ctx, scheduleID, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", eventID, err)
	}
	if ev == nil {
		return nil, nil
	}

	if patch.Title != nil {
		ev.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		ev.Description = *patch.Description
	}
	if patch.StartTime != nil {
		ev.StartTime = normalizeClock(*patch.StartTime)
	}
	if patch.EndTime != nil {
		ev.EndTime = normalizeClock(*patch.EndTime)
	}
	if _, err := (EventInput{Title: ev.Title, StartTime: ev.StartTime, EndTime: ev.EndTime}).event(); err != nil {
		return nil, err
	}

	ok, err := r.store.UpdateScheduleEvent(ctx, ev)
	if err != nil {
		return nil, fmt.Errorf("update event %d: %w", eventID, err)
	}
	if !ok {
		return nil, nil
	}

	updated, err := r.store.GetScheduleEvent(ctx, scheduleID, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", eventID, err)
	}
	return updated, nil
}

// DeleteEvent reports whether an event owned by scheduleID was removed.
func (r *Resolver) DeleteEvent(ctx context.Context, scheduleID, eventID int) (bool, error) {
	if scheduleID <= 0 || eventID <= 0 {
		return false, nil
	}
	ok, err := r.store.DeleteScheduleEvent(ctx, scheduleID, eventID)
	if err != nil {
		return false, fmt.Errorf("delete event %d: %w", eventID, err)
	}
	return ok, nil
}

func (r *Resolver) header(ctx context.Context, id int) (*model.Schedule, error) {
	if id <= 0 {
		return nil, nil
	}
	sc, err := r.store.GetSchedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get schedule %d: %w", id, err)
	}
	return sc, nil
}

func (r *Resolver) withEvents(ctx context.Context, sc *model.Schedule) (*model.Schedule, error) {
	events, err := r.Events(ctx, sc.ID)
	if err != nil {
		return nil, err
	}
	sc.Events = events
	return sc, nil
}

// resolve finds the stored header for date, or nil. Order: cache hit that
// still matches, exact date column, then day window / start_date day for ISO
// dates or raw window containment otherwise.
func (r *Resolver) resolve(ctx context.Context, date string) (*model.Schedule, error) {
	if date == "" {
		return nil, nil
	}

	if sc, err := r.cached(ctx, date); err != nil || sc != nil {
		return sc, err
	}

	sc, err := r.store.FindScheduleByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find schedule by date %q: %w", date, err)
	}

	if sc == nil {
		if IsISODate(date) {
			start, end := DayBounds(date)
			sc, err = r.store.FindScheduleForDay(ctx, date, start, end)
		} else {
			sc, err = r.store.FindScheduleContaining(ctx, date)
		}
		if err != nil {
			return nil, fmt.Errorf("find schedule for %q: %w", date, err)
		}
		if sc != nil {
			r.healDate(ctx, sc)
		}
	}

	if sc != nil {
		r.remember(ctx, date, sc.ID)
	}
	return sc, nil
}

// healDate fills in the date column of legacy headers that have none (or a
// malformed one) from their start_date. A valid stored date is never
// rewritten. Failures are logged; the lookup result is still valid.
func (r *Resolver) healDate(ctx context.Context, sc *model.Schedule) {
	if IsISODate(sc.Date) {
		return
	}
	day := DatePortion(sc.StartDate)
	if day == "" {
		return
	}
	if err := r.store.SetScheduleDate(ctx, sc.ID, day); err != nil {
		log.Warn().Err(err).Int("schedule_id", sc.ID).Str("date", day).Msg("[schedule] could not repair stale date")
		return
	}
	log.Info().Int("schedule_id", sc.ID).Str("old_date", sc.Date).Str("date", day).Msg("[schedule] repaired stale date")
	sc.Date = day
}

func (r *Resolver) cached(ctx context.Context, date string) (*model.Schedule, error) {
	if r.cache == nil {
		return nil, nil
	}
	id, ok, err := r.cache.Get(ctx, date)
	if err != nil {
		log.Warn().Err(err).Str("date", date).Msg("[schedule] cache read failed")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}

	sc, err := r.header(ctx, id)
	if err != nil {
		return nil, err
	}
	if !Matches(sc, date) {
		log.Debug().Int("schedule_id", id).Str("date", date).Msg("[schedule] dropping stale cache entry")
		r.forget(ctx, date)
		return nil, nil
	}
	return sc, nil
}

func (r *Resolver) remember(ctx context.Context, date string, id int) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, date, id); err != nil {
		log.Warn().Err(err).Str("date", date).Int("schedule_id", id).Msg("[schedule] cache write failed")
	}
}

func (r *Resolver) forget(ctx context.Context, dates ...string) {
	if r.cache == nil {
		return
	}
	for _, d := range dates {
		if d == "" {
			continue
		}
		if err := r.cache.Delete(ctx, d); err != nil {
			log.Warn().Err(err).Str("date", d).Msg("[schedule] cache evict failed")
		}
	}
}
