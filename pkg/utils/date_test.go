package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, 3, 14, 23, 59, 58, 123, time.FixedZone("X", 3600))
	got := DateOnly(in)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestFormatAndParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", FormatDate(d))

	_, err = ParseDate("14.03.2025")
	assert.Error(t, err)
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend(saturday.AddDate(0, 0, 1)))
	assert.False(t, IsWeekend(saturday.AddDate(0, 0, 2)))
	assert.False(t, IsWeekend(saturday.AddDate(0, 0, -1)))
}

func TestDatesInRange(t *testing.T) {
	dates := DatesInRange(time.Date(2025, 3, 13, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 15, 20, 0, 0, 0, time.UTC))
	require.Len(t, dates, 3)
	assert.Equal(t, "2025-03-13", FormatDate(dates[0]))
	assert.Equal(t, "2025-03-14", FormatDate(dates[1]))
	assert.Equal(t, "2025-03-15", FormatDate(dates[2]))

	assert.Len(t, DatesInRange(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)), 1)
	assert.Empty(t, DatesInRange(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))
}
