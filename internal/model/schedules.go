package model

// Schedule is the per-day container that owns a list of events.
// ID 0 marks a placeholder that has not been persisted yet.
type Schedule struct {
	ID          int             `db:"id"          json:"id"`
	Title       string          `db:"title"       json:"title"`
	Description string          `db:"description" json:"description"`
	Date        string          `db:"date"        json:"date"`
	StartDate   string          `db:"start_date"  json:"start_date"`
	EndDate     string          `db:"end_date"    json:"end_date"`
	CreatedAt   string          `db:"created_at"  json:"created_at"`
	UpdatedAt   string          `db:"updated_at"  json:"updated_at"`
	Events      []ScheduleEvent `db:"-"           json:"events"`
}

// Persisted reports whether the schedule is backed by a stored row.
func (s *Schedule) Persisted() bool {
	return s != nil && s.ID > 0
}

type ScheduleEvent struct {
	ID          int    `db:"id"          json:"id"`
	ScheduleID  int    `db:"schedule_id" json:"schedule_id"`
	Title       string `db:"title"       json:"title"`
	Description string `db:"description" json:"description"`
	StartTime   string `db:"start_time"  json:"start_time"`
	EndTime     string `db:"end_time"    json:"end_time"`
	CreatedAt   string `db:"created_at"  json:"created_at"`
	UpdatedAt   string `db:"updated_at"  json:"updated_at"`
}
