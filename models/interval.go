package models

import (
	"fmt"
	"time"

	"nyumba/constants"
	"nyumba/errors"
)

// Interval biểu diễn khoảng ngày [Start, End) của một booking.
// End là ngày checkout nên không tính là đêm ở.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval tạo interval từ hai ngày, chuẩn hóa về 0h UTC
func NewInterval(start, end time.Time) (Interval, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)

	if !end.After(start) {
		return Interval{}, errors.NewAppError(
			errors.ErrCodeInvalidInterval,
			"Ngày trả phòng phải sau ngày nhận phòng ít nhất 1 đêm",
			nil,
		)
	}

	return Interval{Start: start, End: end}, nil
}

// ParseInterval tạo interval từ chuỗi ngày dạng YYYY-MM-DD
func ParseInterval(startStr, endStr string) (Interval, error) {
	start, err := time.Parse(constants.DateLayout, startStr)
	if err != nil {
		return Interval{}, errors.NewAppError(
			errors.ErrCodeValidation,
			fmt.Sprintf("Ngày nhận phòng không hợp lệ, cần định dạng YYYY-MM-DD: %q", startStr),
			err,
		)
	}

	end, err := time.Parse(constants.DateLayout, endStr)
	if err != nil {
		return Interval{}, errors.NewAppError(
			errors.ErrCodeValidation,
			fmt.Sprintf("Ngày trả phòng không hợp lệ, cần định dạng YYYY-MM-DD: %q", endStr),
			err,
		)
	}

	return NewInterval(start, end)
}

// Overlaps kiểm tra hai interval có giao nhau không theo quy ước [start, end).
// Ngày checkout của booking này có thể là ngày checkin của booking khác.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Nights trả về số đêm ở, luôn >= 1 với interval hợp lệ
func (i Interval) Nights() int {
	return int(i.End.Sub(i.Start).Hours() / 24)
}

// Days liệt kê các ngày bị chiếm từ Start tới trước End (không gồm ngày checkout),
// định dạng YYYY-MM-DD
func (i Interval) Days() []string {
	days := make([]string, 0, i.Nights())
	for d := i.Start; d.Before(i.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(constants.DateLayout))
	}
	return days
}

// Contains kiểm tra một ngày có nằm trong interval không
func (i Interval) Contains(day time.Time) bool {
	day = truncateToDay(day)
	return !day.Before(i.Start) && day.Before(i.End)
}

// StartString trả về ngày nhận phòng dạng YYYY-MM-DD
func (i Interval) StartString() string {
	return i.Start.Format(constants.DateLayout)
}

// EndString trả về ngày trả phòng dạng YYYY-MM-DD
func (i Interval) EndString() string {
	return i.End.Format(constants.DateLayout)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
