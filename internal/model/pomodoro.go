package model

const (
	SessionTypeWork      = "work"
	SessionTypeBreak     = "break"
	SessionTypeLongBreak = "long_break"
)

// PomodoroSettings is a singleton row (id 1). Durations are minutes.
type PomodoroSettings struct {
	ID                int `db:"id"                  json:"id"`
	WorkDuration      int `db:"work_duration"       json:"work_duration"`
	BreakDuration     int `db:"break_duration"      json:"break_duration"`
	LongBreakDuration int `db:"long_break_duration" json:"long_break_duration"`
	LongBreakInterval int `db:"long_break_interval" json:"long_break_interval"`
}

// PomodoroSession duration is in minutes. EndTime stays nil until the
// session is completed.
type PomodoroSession struct {
	ID        int     `db:"id"         json:"id"`
	TaskID    *int    `db:"task_id"    json:"task_id"`
	TaskTitle *string `db:"task_title" json:"task_title"`
	StartTime string  `db:"start_time" json:"start_time"`
	EndTime   *string `db:"end_time"   json:"end_time"`
	Duration  int     `db:"duration"   json:"duration"`
	Type      string  `db:"type"       json:"type"`
}

func ValidSessionType(t string) bool {
	switch t {
	case SessionTypeWork, SessionTypeBreak, SessionTypeLongBreak:
		return true
	}
	return false
}
