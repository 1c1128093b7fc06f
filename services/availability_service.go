package services

import (
	"sort"

	"nyumba/errors"
	"nyumba/models"
	"nyumba/repositories"
)

// AvailabilityResult là kết quả kiểm tra lịch trống của một property
type AvailabilityResult struct {
	Available        bool     `json:"available"`
	ConflictingDates []string `json:"conflictingDates,omitempty"`
}

// AvailabilityService trả lời câu hỏi "property P có trống trong khoảng I không"
// dựa trên tập booking CONFIRMED. PENDING và các trạng thái kết thúc
// không giữ chỗ trên lịch.
type AvailabilityService struct {
	bookings repositories.BookingRepository
}

func NewAvailabilityService(bookings repositories.BookingRepository) *AvailabilityService {
	return &AvailabilityService{bookings: bookings}
}

// Check kiểm tra interval có trống không. excludeBookingID dùng khi kiểm tra lại
// một booking đã tồn tại (tránh booking tự xung đột với chính nó).
// Lỗi truy vấn luôn trả về AVAILABILITY_CHECK_FAILED, không bao giờ
// được hiểu là "còn trống".
func (s *AvailabilityService) Check(propertyID uint, interval models.Interval, excludeBookingID uint) (*AvailabilityResult, error) {
	confirmed, err := s.bookings.ConfirmedByProperty(propertyID, excludeBookingID)
	if err != nil {
		return nil, errors.NewAppError(
			errors.ErrCodeAvailabilityCheck,
			"Không kiểm tra được lịch trống, vui lòng thử lại",
			err,
		)
	}

	occupied, err := OccupiedDays(confirmed)
	if err != nil {
		return nil, errors.NewAppError(
			errors.ErrCodeAvailabilityCheck,
			"Dữ liệu booking không hợp lệ, không kiểm tra được lịch trống",
			err,
		)
	}

	var conflicts []string
	for _, day := range interval.Days() {
		if occupied[day] {
			conflicts = append(conflicts, day)
		}
	}

	return &AvailabilityResult{
		Available:        len(conflicts) == 0,
		ConflictingDates: conflicts,
	}, nil
}

// OccupiedDays gộp các ngày bị chiếm của một danh sách booking,
// theo quy ước [start, end): ngày checkout không tính
func OccupiedDays(bookings []models.Booking) (map[string]bool, error) {
	occupied := make(map[string]bool)
	for i := range bookings {
		interval, err := bookings[i].Interval()
		if err != nil {
			return nil, err
		}
		for _, day := range interval.Days() {
			occupied[day] = true
		}
	}
	return occupied, nil
}

// BookedDates trả về danh sách ngày đã bị chiếm của property, đã sort,
// cho client disable trên date picker
func (s *AvailabilityService) BookedDates(propertyID uint) ([]string, error) {
	confirmed, err := s.bookings.ConfirmedByProperty(propertyID, 0)
	if err != nil {
		return nil, errors.NewAppError(
			errors.ErrCodeAvailabilityCheck,
			"Không lấy được danh sách ngày đã đặt",
			err,
		)
	}

	occupied, err := OccupiedDays(confirmed)
	if err != nil {
		return nil, errors.NewAppError(
			errors.ErrCodeAvailabilityCheck,
			"Dữ liệu booking không hợp lệ",
			err,
		)
	}

	dates := make([]string, 0, len(occupied))
	for day := range occupied {
		dates = append(dates, day)
	}
	sort.Strings(dates)
	return dates, nil
}

// NextAvailableStart tìm ngày bắt đầu gần nhất từ interval yêu cầu mà đủ chỗ
// cho cùng số đêm, dùng để gợi ý khi ngày mong muốn đã kín.
// Trả về chuỗi rỗng nếu không tìm được trong searchDays ngày.
func (s *AvailabilityService) NextAvailableStart(propertyID uint, interval models.Interval, searchDays int) (string, error) {
	confirmed, err := s.bookings.ConfirmedByProperty(propertyID, 0)
	if err != nil {
		return "", errors.NewAppError(
			errors.ErrCodeAvailabilityCheck,
			"Không kiểm tra được lịch trống",
			err,
		)
	}

	occupied, err := OccupiedDays(confirmed)
	if err != nil {
		return "", errors.NewAppError(
			errors.ErrCodeAvailabilityCheck,
			"Dữ liệu booking không hợp lệ",
			err,
		)
	}

	nights := interval.Nights()
	for offset := 1; offset <= searchDays; offset++ {
		start := interval.Start.AddDate(0, 0, offset)
		candidate, err := models.NewInterval(start, start.AddDate(0, 0, nights))
		if err != nil {
			return "", err
		}
		free := true
		for _, day := range candidate.Days() {
			if occupied[day] {
				free = false
				break
			}
		}
		if free {
			return candidate.StartString(), nil
		}
	}
	return "", nil
}
