package model

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task priority: a higher value is more urgent.
type Task struct {
	ID          int    `db:"id"          json:"id"`
	Title       string `db:"title"       json:"title"`
	Description string `db:"description" json:"description"`
	Status      string `db:"status"      json:"status"`
	Priority    int    `db:"priority"    json:"priority"`
	CreatedAt   string `db:"created_at"  json:"created_at"`
	UpdatedAt   string `db:"updated_at"  json:"updated_at"`
}

func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}
