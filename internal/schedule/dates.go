package schedule

import (
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

const (
	dayLayout   = "2006-01-02"
	dayStartTOD = "00:00:00"
	dayEndTOD   = "23:59:59"
)

// IsISODate reports whether s is a calendar day in YYYY-MM-DD form.
func IsISODate(s string) bool {
	if len(s) != len(dayLayout) {
		return false
	}
	_, err := time.Parse(dayLayout, s)
	return err == nil
}

// DatePortion returns the YYYY-MM-DD prefix of a timestamp, or "" when the
// value does not start with a calendar day.
func DatePortion(ts string) string {
	if len(ts) < len(dayLayout) || !IsISODate(ts[:len(dayLayout)]) {
		return ""
	}
	if len(ts) > len(dayLayout) && ts[len(dayLayout)] != 'T' && ts[len(dayLayout)] != ' ' {
		return ""
	}
	return ts[:len(dayLayout)]
}

// DayBounds returns the first and last second of day as timestamps.
func DayBounds(day string) (string, string) {
	return day + "T" + dayStartTOD, day + "T" + dayEndTOD
}

// NormalizeTimestamp pads "YYYY-MM-DDTHH:MM" to seconds precision and turns a
// space separator into "T" so that stored windows compare lexically.
func NormalizeTimestamp(ts string) string {
	ts = strings.TrimSpace(ts)
	if DatePortion(ts) == "" || len(ts) == len(dayLayout) {
		return ts
	}
	if ts[len(dayLayout)] == ' ' {
		ts = ts[:len(dayLayout)] + "T" + ts[len(dayLayout)+1:]
	}
	ts = ts[:len(dayLayout)+1] + padHour(ts[len(dayLayout)+1:])
	if len(ts) == len("2006-01-02T15:04") {
		ts += ":00"
	}
	return ts
}

// padHour zero-pads a single-digit hour ("9:00" -> "09:00") so that times
// compare lexically.
func padHour(tod string) string {
	if len(tod) >= 4 && tod[1] == ':' && tod[0] >= '0' && tod[0] <= '9' {
		return "0" + tod
	}
	return tod
}

// normalizeClock canonicalizes an event time, which is either a time of day
// or a full timestamp.
func normalizeClock(s string) string {
	s = strings.TrimSpace(s)
	if DatePortion(s) != "" {
		return NormalizeTimestamp(s)
	}
	return padHour(s)
}

// joinDayTime builds a timestamp for day from an event time that is either a
// time of day ("09:00") or already a full timestamp.
func joinDayTime(day, tod string) string {
	tod = normalizeClock(tod)
	if DatePortion(tod) != "" {
		return tod
	}
	if len(tod) == len("15:04") {
		tod += ":00"
	}
	return day + "T" + tod
}

// Matches reports whether sc is an acceptable answer for a lookup of date,
// using the same rules as the store-side resolution.
func Matches(sc *model.Schedule, date string) bool {
	if sc == nil || date == "" {
		return false
	}
	if sc.Date == date {
		return true
	}
	if IsISODate(date) {
		start, end := DayBounds(date)
		return (sc.StartDate <= start && sc.EndDate >= end) || DatePortion(sc.StartDate) == date
	}
	return sc.StartDate <= date && sc.EndDate >= date
}
