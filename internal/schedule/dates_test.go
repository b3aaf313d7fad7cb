package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2024-05-01"))
	assert.False(t, IsISODate("2024-5-1"))
	assert.False(t, IsISODate("2024-02-30"))
	assert.False(t, IsISODate("2024-05-01T00:00:00"))
	assert.False(t, IsISODate("tomorrow"))
}

func TestDatePortion(t *testing.T) {
	cases := map[string]string{
		"2024-05-01":          "2024-05-01",
		"2024-05-01T09:00:00": "2024-05-01",
		"2024-05-01 09:00":    "2024-05-01",
		"2024-05-01X":         "",
		"09:00":               "",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, DatePortion(in), in)
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	assert.Equal(t, "2024-05-01T09:00:00", NormalizeTimestamp("2024-05-01T09:00"))
	assert.Equal(t, "2024-05-01T09:00:00", NormalizeTimestamp(" 2024-05-01 09:00 "))
	assert.Equal(t, "2024-05-01T09:00:30", NormalizeTimestamp("2024-05-01T09:00:30"))
	assert.Equal(t, "2024-05-01", NormalizeTimestamp("2024-05-01"))
	assert.Equal(t, "next week", NormalizeTimestamp("next week"))
	assert.Equal(t, "2024-05-01T09:00:00", NormalizeTimestamp("2024-05-01T9:00"))
	assert.Equal(t, "2024-05-01T09:05:00", NormalizeTimestamp("2024-05-01 9:05:00"))
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "09:00", normalizeClock(" 9:00 "))
	assert.Equal(t, "10:00", normalizeClock("10:00"))
	assert.Equal(t, "2024-05-01T22:00:00", normalizeClock("2024-05-01T22:00"))
	assert.Equal(t, "2024-05-01T09:00:00", joinDayTime("2024-05-01", "9:00"))
}

func TestMatches(t *testing.T) {
	fullDay := &model.Schedule{ID: 1, Date: "2024-05-01", StartDate: "2024-05-01T00:00:00", EndDate: "2024-05-01T23:59:59"}
	stale := &model.Schedule{ID: 2, Date: "", StartDate: "2024-05-02T09:00:00", EndDate: "2024-05-02T10:00:00"}
	multiDay := &model.Schedule{ID: 3, Date: "2024-06-01", StartDate: "2024-06-01T00:00:00", EndDate: "2024-06-03T23:59:59"}

	assert.True(t, Matches(fullDay, "2024-05-01"))
	assert.False(t, Matches(fullDay, "2024-05-02"))
	assert.True(t, Matches(stale, "2024-05-02"), "start_date day portion")
	assert.True(t, Matches(multiDay, "2024-06-02"), "window covers the whole day")
	assert.False(t, Matches(multiDay, "2024-06-04"))
	assert.True(t, Matches(multiDay, "2024-06-02T12:00:00"), "raw containment")
	assert.False(t, Matches(nil, "2024-05-01"))
	assert.False(t, Matches(fullDay, ""))
}
