package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEachDayInclusive(t *testing.T) {
	start, err := Parse("2025-03-01")
	require.NoError(t, err)
	end, err := Parse("2025-03-05")
	require.NoError(t, err)

	days, err := EachDay(start, end)
	require.NoError(t, err)
	require.Len(t, days, 5)
	assert.Equal(t, "2025-03-01", Format(days[0]))
	assert.Equal(t, "2025-03-05", Format(days[4]))
}

func TestEachDaySingleDay(t *testing.T) {
	day, _ := Parse("2025-03-01")
	days, err := EachDay(day, day)
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestEachDayReversedRange(t *testing.T) {
	start, _ := Parse("2025-03-05")
	end, _ := Parse("2025-03-01")
	_, err := EachDay(start, end)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestWeekday(t *testing.T) {
	// 2025-03-04 is a Tuesday.
	day, _ := Parse("2025-03-04")
	assert.Equal(t, 2, Weekday(day))

	sunday, _ := Parse("2025-03-02")
	assert.Equal(t, 0, Weekday(sunday))
}

func TestTruncateDropsTimeOfDay(t *testing.T) {
	at := time.Date(2025, 3, 4, 15, 30, 45, 12, time.UTC)
	assert.Equal(t, "2025-03-04", Format(Truncate(at)))
}
