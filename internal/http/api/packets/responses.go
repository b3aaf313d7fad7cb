package packets

// RESPONSES FOR /api/*

import "github.com/Nixie-Tech-LLC/dayplan/internal/model"

type EventResponse struct {
	ID          int    `json:"id"`
	ScheduleID  int    `json:"schedule_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ScheduleResponse mirrors model.Schedule; Events is always an array, empty
// for the unsaved placeholder.
type ScheduleResponse struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
	Events      []EventResponse `json:"events"`
}

func NewEventResponse(e model.ScheduleEvent) EventResponse {
	return EventResponse{
		ID:          e.ID,
		ScheduleID:  e.ScheduleID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func NewScheduleResponse(sc *model.Schedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:          sc.ID,
		Title:       sc.Title,
		Description: sc.Description,
		Date:        sc.Date,
		StartDate:   sc.StartDate,
		EndDate:     sc.EndDate,
		CreatedAt:   sc.CreatedAt,
		UpdatedAt:   sc.UpdatedAt,
		Events:      make([]EventResponse, 0, len(sc.Events)),
	}
	for _, e := range sc.Events {
		resp.Events = append(resp.Events, NewEventResponse(e))
	}
	return resp
}

// ScheduleSummary is a list entry; events are not loaded.
type ScheduleSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func NewScheduleSummaries(list []model.Schedule) []ScheduleSummary {
	out := make([]ScheduleSummary, 0, len(list))
	for _, sc := range list {
		out = append(out, ScheduleSummary{
			ID:          sc.ID,
			Title:       sc.Title,
			Description: sc.Description,
			Date:        sc.Date,
			StartDate:   sc.StartDate,
			EndDate:     sc.EndDate,
			CreatedAt:   sc.CreatedAt,
			UpdatedAt:   sc.UpdatedAt,
		})
	}
	return out
}
