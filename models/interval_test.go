package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyumba/errors"
)

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	itv, err := ParseInterval(start, end)
	require.NoError(t, err)
	return itv
}

func TestNewInterval_EndMustBeAfterStart(t *testing.T) {
	day := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)

	_, err := NewInterval(day, day)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInterval))

	_, err = NewInterval(day, day.AddDate(0, 0, -1))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInterval))

	itv, err := NewInterval(day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, itv.Nights())
}

func TestNewInterval_TruncatesToUTCMidnight(t *testing.T) {
	start := time.Date(2025, 9, 10, 15, 30, 0, 0, time.UTC)
	end := time.Date(2025, 9, 12, 8, 0, 0, 0, time.UTC)

	itv, err := NewInterval(start, end)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-10", itv.StartString())
	assert.Equal(t, "2025-09-12", itv.EndString())
	assert.Equal(t, 2, itv.Nights())
}

func TestParseInterval_MalformedDates(t *testing.T) {
	_, err := ParseInterval("10/09/2025", "2025-09-12")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = ParseInterval("2025-09-10", "không-phải-ngày")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestInterval_Overlaps(t *testing.T) {
	base := mustInterval(t, "2025-09-10", "2025-09-12")

	tests := []struct {
		name    string
		other   Interval
		overlap bool
	}{
		{"trùng hoàn toàn", mustInterval(t, "2025-09-10", "2025-09-12"), true},
		{"giao một đêm", mustInterval(t, "2025-09-11", "2025-09-13"), true},
		{"bao trùm", mustInterval(t, "2025-09-09", "2025-09-13"), true},
		{"nằm trong", mustInterval(t, "2025-09-10", "2025-09-11"), true},
		{"checkout trùng checkin, không giao", mustInterval(t, "2025-09-12", "2025-09-14"), false},
		{"checkin trùng checkout, không giao", mustInterval(t, "2025-09-08", "2025-09-10"), false},
		{"tách rời", mustInterval(t, "2025-09-20", "2025-09-22"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, base.Overlaps(tt.other))
			assert.Equal(t, tt.overlap, tt.other.Overlaps(base))
		})
	}
}

func TestInterval_Nights(t *testing.T) {
	assert.Equal(t, 1, mustInterval(t, "2025-09-10", "2025-09-11").Nights())
	assert.Equal(t, 2, mustInterval(t, "2025-09-10", "2025-09-12").Nights())
	assert.Equal(t, 31, mustInterval(t, "2025-01-01", "2025-02-01").Nights())
}

func TestInterval_Days_ExcludesCheckout(t *testing.T) {
	itv := mustInterval(t, "2025-09-10", "2025-09-13")
	assert.Equal(t, []string{"2025-09-10", "2025-09-11", "2025-09-12"}, itv.Days())

	oneNight := mustInterval(t, "2025-09-10", "2025-09-11")
	assert.Equal(t, []string{"2025-09-10"}, oneNight.Days())
}

func TestInterval_Days_CrossesMonthBoundary(t *testing.T) {
	itv := mustInterval(t, "2025-09-29", "2025-10-02")
	assert.Equal(t, []string{"2025-09-29", "2025-09-30", "2025-10-01"}, itv.Days())
}

func TestInterval_Contains(t *testing.T) {
	itv := mustInterval(t, "2025-09-10", "2025-09-12")

	assert.True(t, itv.Contains(time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, itv.Contains(time.Date(2025, 9, 11, 23, 0, 0, 0, time.UTC)))
	assert.False(t, itv.Contains(time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC)))
	assert.False(t, itv.Contains(time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC)))
}
