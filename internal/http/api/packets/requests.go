package packets

// REQUESTS FOR /api/*
//
// The SPA has sent both camelCase and snake_case field names over time. Both
// are accepted here; snake_case wins when a body carries both.

import (
	"fmt"
	"strings"

	"github.com/Nixie-Tech-LLC/dayplan/internal/db"
	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
	"github.com/Nixie-Tech-LLC/dayplan/internal/schedule"
)

func pick[T any](canonical, legacy *T) *T {
	if canonical != nil {
		return canonical
	}
	return legacy
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type EventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`

	StartTimeLegacy *string `json:"startTime"`
	EndTimeLegacy   *string `json:"endTime"`
}

func (r EventRequest) Input() schedule.EventInput {
	return schedule.EventInput{
		Title:       deref(r.Title),
		Description: deref(r.Description),
		StartTime:   deref(pick(r.StartTime, r.StartTimeLegacy)),
		EndTime:     deref(pick(r.EndTime, r.EndTimeLegacy)),
	}
}

func (r EventRequest) Patch() schedule.EventPatch {
	return schedule.EventPatch{
		Title:       r.Title,
		Description: r.Description,
		StartTime:   pick(r.StartTime, r.StartTimeLegacy),
		EndTime:     pick(r.EndTime, r.EndTimeLegacy),
	}
}

// CreateScheduleRequest accepts either a date (optionally with inline
// events) or an explicit title and window.
type CreateScheduleRequest struct {
	Date        string         `json:"date"`
	Events      []EventRequest `json:"events"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartDate   *string        `json:"start_date"`
	EndDate     *string        `json:"end_date"`

	StartDateLegacy *string `json:"startDate"`
	EndDateLegacy   *string `json:"endDate"`
}

func (r CreateScheduleRequest) Input() schedule.CreateInput {
	start := deref(pick(r.StartDate, r.StartDateLegacy))
	end := deref(pick(r.EndDate, r.EndDateLegacy))

	if strings.TrimSpace(r.Date) == "" {
		return schedule.ExplicitWindow{
			Title:       r.Title,
			Description: r.Description,
			StartDate:   start,
			EndDate:     end,
		}
	}

	in := schedule.DayWithEvents{
		Date:        r.Date,
		Title:       r.Title,
		Description: r.Description,
		StartDate:   start,
		EndDate:     end,
	}
	for _, e := range r.Events {
		in.Events = append(in.Events, e.Input())
	}
	return in
}

type UpdateScheduleRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`

	StartDateLegacy *string `json:"startDate"`
	EndDateLegacy   *string `json:"endDate"`
}

func (r UpdateScheduleRequest) Input() schedule.UpdateInput {
	return schedule.UpdateInput{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   deref(pick(r.StartDate, r.StartDateLegacy)),
		EndDate:     deref(pick(r.EndDate, r.EndDateLegacy)),
	}
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    *int   `json:"priority"`
}

func (r CreateTaskRequest) Input() (db.TaskInput, error) {
	if r.Status != "" && !model.ValidTaskStatus(r.Status) {
		return db.TaskInput{}, fmt.Errorf("unknown status %q", r.Status)
	}
	return db.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
	}, nil
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *int    `json:"priority"`
}

func (r UpdateTaskRequest) Patch() (db.TaskPatch, error) {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return db.TaskPatch{}, fmt.Errorf("title cannot be empty")
	}
	if r.Status != nil && !model.ValidTaskStatus(*r.Status) {
		return db.TaskPatch{}, fmt.Errorf("unknown status %q", *r.Status)
	}
	return db.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
	}, nil
}

type SettingsRequest struct {
	WorkDuration      *int `json:"work_duration"`
	BreakDuration     *int `json:"break_duration"`
	LongBreakDuration *int `json:"long_break_duration"`
	LongBreakInterval *int `json:"long_break_interval"`

	WorkDurationLegacy      *int `json:"workDuration"`
	BreakDurationLegacy     *int `json:"breakDuration"`
	LongBreakDurationLegacy *int `json:"longBreakDuration"`
	LongBreakIntervalLegacy *int `json:"longBreakInterval"`
}

func (r SettingsRequest) Patch() db.SettingsPatch {
	return db.SettingsPatch{
		WorkDuration:      pick(r.WorkDuration, r.WorkDurationLegacy),
		BreakDuration:     pick(r.BreakDuration, r.BreakDurationLegacy),
		LongBreakDuration: pick(r.LongBreakDuration, r.LongBreakDurationLegacy),
		LongBreakInterval: pick(r.LongBreakInterval, r.LongBreakIntervalLegacy),
	}
}

// DefaultSessionMinutes is used for summary-shaped session bodies without a
// total_time.
const DefaultSessionMinutes = 25

// CreateSessionRequest is either a summary (completed_sessions/total_time)
// or an explicit session with duration and type. Durations are minutes.
type CreateSessionRequest struct {
	TaskID   *int    `json:"task_id"`
	Date     *string `json:"date"`
	Duration *int    `json:"duration"`
	Type     *string `json:"type"`

	CompletedSessions *int `json:"completed_sessions"`
	TotalTime         *int `json:"total_time"`

	TaskIDLegacy *int `json:"taskId"`
}

func (r CreateSessionRequest) Input() (db.SessionInput, error) {
	in := db.SessionInput{
		TaskID:    pick(r.TaskID, r.TaskIDLegacy),
		StartTime: deref(r.Date),
	}

	if r.CompletedSessions != nil || r.TotalTime != nil {
		in.Type = model.SessionTypeWork
		in.Duration = DefaultSessionMinutes
		if r.TotalTime != nil && *r.TotalTime > 0 {
			in.Duration = *r.TotalTime
		}
		return in, nil
	}

	if r.Duration == nil || *r.Duration <= 0 || r.Type == nil || *r.Type == "" {
		return in, fmt.Errorf("required fields: duration, type")
	}
	if !model.ValidSessionType(*r.Type) {
		return in, fmt.Errorf("unknown session type %q", *r.Type)
	}
	in.Duration = *r.Duration
	in.Type = *r.Type
	return in, nil
}

type CompleteSessionRequest struct {
	Duration *int `json:"duration"`
}
