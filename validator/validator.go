package validator

import (
	"fmt"
	"time"
	"unicode/utf8"

	"nyumba/constants"
	"nyumba/dto"
	"nyumba/errors"
	"nyumba/models"
)

// ValidateCreateBooking validate request tạo booking trước khi chạm tới DB.
// Lỗi validation phải được trả ngay, không tốn một round-trip mạng.
func ValidateCreateBooking(req *dto.CreateBookingRequest, now time.Time) (models.Interval, error) {
	if req.PropertyID == 0 {
		return models.Interval{}, errors.NewAppError(
			errors.ErrCodeRequiredField, "Thiếu property cần đặt", nil)
	}
	if req.StartDate == "" || req.EndDate == "" {
		return models.Interval{}, errors.NewAppError(
			errors.ErrCodeRequiredField, "Thiếu ngày nhận phòng hoặc ngày trả phòng", nil)
	}

	interval, err := models.ParseInterval(req.StartDate, req.EndDate)
	if err != nil {
		return models.Interval{}, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if interval.Start.Before(today) {
		return models.Interval{}, errors.NewAppError(
			errors.ErrCodeValidation,
			"Ngày nhận phòng không được nhỏ hơn ngày hiện tại",
			nil,
		)
	}

	if utf8.RuneCountInString(req.Notes) > constants.MaxBookingNotesLength {
		return models.Interval{}, errors.NewAppError(
			errors.ErrCodeValidation,
			fmt.Sprintf("Ghi chú không được vượt quá %d ký tự", constants.MaxBookingNotesLength),
			nil,
		)
	}

	return interval, nil
}

// ValidateProperty validate thông tin property trước khi lưu
func ValidateProperty(p *models.Property) error {
	if p.Title == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên property không được để trống", nil)
	}
	if p.Price < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidPrice, "Giá mỗi đêm không được âm", nil)
	}
	if p.CleaningFee < 0 || p.ServiceFee < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidPrice, "Phụ phí không được âm", nil)
	}
	if err := p.Validate(); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Thông tin property không hợp lệ", err)
	}
	return nil
}

// ValidateStatusValue kiểm tra chuỗi trạng thái từ client
func ValidateStatusValue(status string) (models.BookingStatus, error) {
	if !models.IsValidStatus(status) {
		return "", errors.NewAppError(
			errors.ErrCodeValidation,
			fmt.Sprintf("Trạng thái %q không hợp lệ, cần một trong PENDING, CONFIRMED, CANCELLED, COMPLETED", status),
			nil,
		)
	}
	return models.BookingStatus(status), nil
}
