package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

// ErrValidation is wrapped by every error caused by missing or malformed input.
var ErrValidation = errors.New("validation failed")

// DefaultTitle names a schedule created for a day without any inline event.
const DefaultTitle = "Untitled schedule"

// CreateInput is one of the accepted shapes for a new schedule:
// ExplicitWindow or DayWithEvents.
type CreateInput interface {
	isCreateInput()
}

// ExplicitWindow names the header fields directly.
type ExplicitWindow struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
}

// DayWithEvents creates the schedule for Date. Header fields that are left
// empty are derived from the first event, or from a full-day window when
// there are no events.
type DayWithEvents struct {
	Date        string
	Events      []EventInput
	Title       string
	Description string
	StartDate   string
	EndDate     string
}

func (ExplicitWindow) isCreateInput() {}
func (DayWithEvents) isCreateInput() {}

type EventInput struct {
	Title       string
	Description string
	StartTime   string
	EndTime     string
}

// EventPatch fields left nil keep their stored value.
type EventPatch struct {
	Title       *string
	Description *string
	StartTime   *string
	EndTime     *string
}

// UpdateInput replaces every header field.
type UpdateInput struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
}

// Normalize converts any CreateInput into the header (and inline events) to
// store. The returned schedule is validated and has its date derived.
func Normalize(in CreateInput) (*model.Schedule, error) {
	var sc *model.Schedule

	switch v := in.(type) {
	case ExplicitWindow:
		start := NormalizeTimestamp(v.StartDate)
		sc = &model.Schedule{
			Title:       strings.TrimSpace(v.Title),
			Description: v.Description,
			StartDate:   start,
			EndDate:     NormalizeTimestamp(v.EndDate),
			Date:        DatePortion(start),
		}

	case DayWithEvents:
		day := strings.TrimSpace(v.Date)
		if !IsISODate(day) {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrValidation, v.Date)
		}

		title, desc := DefaultTitle, ""
		startTOD, endTOD := dayStartTOD, dayEndTOD
		if len(v.Events) > 0 {
			first := v.Events[0]
			title, desc = first.Title, first.Description
			startTOD, endTOD = first.StartTime, first.EndTime
		}

		sc = &model.Schedule{
			Title:       coalesce(strings.TrimSpace(v.Title), strings.TrimSpace(title)),
			Description: coalesce(v.Description, desc),
			StartDate:   coalesce(NormalizeTimestamp(v.StartDate), joinDayTime(day, startTOD)),
			EndDate:     coalesce(NormalizeTimestamp(v.EndDate), joinDayTime(day, endTOD)),
			Date:        day,
		}

		for i, e := range v.Events {
			ev, err := e.event()
			if err != nil {
				return nil, fmt.Errorf("events[%d]: %w", i, err)
			}
			sc.Events = append(sc.Events, ev)
		}

	default:
		return nil, fmt.Errorf("%w: unsupported schedule input %T", ErrValidation, in)
	}

	if err := validateHeader(sc.Title, sc.StartDate, sc.EndDate); err != nil {
		return nil, err
	}
	return sc, nil
}

func validateHeader(title, start, end string) error {
	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if start == "" {
		missing = append(missing, "start_date")
	}
	if end == "" {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func (e EventInput) event() (model.ScheduleEvent, error) {
	ev := model.ScheduleEvent{
		Title:       strings.TrimSpace(e.Title),
		Description: e.Description,
		StartTime:   normalizeClock(e.StartTime),
		EndTime:     normalizeClock(e.EndTime),
	}
	var missing []string
	if ev.Title == "" {
		missing = append(missing, "title")
	}
	if ev.StartTime == "" {
		missing = append(missing, "start_time")
	}
	if ev.EndTime == "" {
		missing = append(missing, "end_time")
	}
	if len(missing) > 0 {
		return ev, fmt.Errorf("%w: required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return ev, nil
}

func coalesce(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
