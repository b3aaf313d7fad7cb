package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDayWithoutEvents(t *testing.T) {
	sc, err := Normalize(DayWithEvents{Date: "2024-05-01"})
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, sc.Title)
	assert.Equal(t, "2024-05-01", sc.Date)
	assert.Equal(t, "2024-05-01T00:00:00", sc.StartDate)
	assert.Equal(t, "2024-05-01T23:59:59", sc.EndDate)
	assert.Empty(t, sc.Events)
}

func TestNormalizeDayFromFirstEvent(t *testing.T) {
	sc, err := Normalize(DayWithEvents{
		Date: "2024-05-01",
		Events: []EventInput{
			{Title: "Standup", Description: "daily", StartTime: "09:00", EndTime: "09:15"},
			{Title: "Review", StartTime: "14:00", EndTime: "15:00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Standup", sc.Title)
	assert.Equal(t, "daily", sc.Description)
	assert.Equal(t, "2024-05-01T09:00:00", sc.StartDate)
	assert.Equal(t, "2024-05-01T09:15:00", sc.EndDate)
	assert.Len(t, sc.Events, 2)
}

func TestNormalizeDayExplicitFieldsWin(t *testing.T) {
	sc, err := Normalize(DayWithEvents{
		Date:      "2024-05-01",
		Title:     "Conference",
		StartDate: "2024-05-01T08:00",
		EndDate:   "2024-05-01T18:00",
		Events:    []EventInput{{Title: "Keynote", StartTime: "09:00", EndTime: "10:00"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Conference", sc.Title)
	assert.Equal(t, "2024-05-01T08:00:00", sc.StartDate)
	assert.Equal(t, "2024-05-01T18:00:00", sc.EndDate)
}

func TestNormalizeDayRejectsBadDate(t *testing.T) {
	_, err := Normalize(DayWithEvents{Date: "May 1st"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizeDayRejectsIncompleteEvent(t *testing.T) {
	_, err := Normalize(DayWithEvents{Date: "2024-05-01", Events: []EventInput{{Title: "x"}}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizeExplicitWindow(t *testing.T) {
	sc, err := Normalize(ExplicitWindow{Title: "Trip", StartDate: "2024-07-01T06:00", EndDate: "2024-07-01T22:00"})
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", sc.Date)
	assert.Equal(t, "2024-07-01T06:00:00", sc.StartDate)

	_, err = Normalize(ExplicitWindow{Title: "Trip"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "start_date")
	assert.Contains(t, err.Error(), "end_date")
}
