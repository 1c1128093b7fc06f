package dto

import (
	"time"

	"nyumba/models"
)

// CreateBookingRequest là DTO cho request tạo booking.
// TotalPrice client gửi lên chỉ để hiển thị, server luôn tự tính lại.
type CreateBookingRequest struct {
	PropertyID uint   `json:"property" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	TotalPrice int64  `json:"total_price"`
	Notes      string `json:"notes"`
}

// UpdateBookingStatusRequest là DTO cho request cập nhật trạng thái booking
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ActorResponse là DTO cho thông tin người liên quan tới booking
type ActorResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// BookingPropertyResponse là DTO rút gọn của property trong booking
type BookingPropertyResponse struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Price    int64  `json:"price"`
	OwnerID  uint   `json:"ownerId"`
}

type BookingResponse struct {
	ID           uint                    `json:"id"`
	User         ActorResponse           `json:"user"`
	Property     BookingPropertyResponse `json:"property"`
	StartDate    string                  `json:"start_date"`
	EndDate      string                  `json:"end_date"`
	Nights       int                     `json:"nights"`
	NightlyPrice int64                   `json:"nightlyPrice"`
	CleaningFee  int64                   `json:"cleaningFee"`
	ServiceFee   int64                   `json:"serviceFee"`
	TotalPrice   int64                   `json:"total_price"`
	Status       models.BookingStatus    `json:"status"`
	Notes        string                  `json:"notes,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

// PriceBreakdown là bảng giá chi tiết của một booking, đơn vị TZS
// (đơn vị tiền nhỏ nhất, không có phần lẻ)
type PriceBreakdown struct {
	Nights       int   `json:"nights"`
	NightlyPrice int64 `json:"nightlyPrice"`
	CleaningFee  int64 `json:"cleaningFee"`
	ServiceFee   int64 `json:"serviceFee"`
	TotalPrice   int64 `json:"totalPrice"`
}

// AvailabilityResponse là DTO cho kết quả kiểm tra lịch trống
type AvailabilityResponse struct {
	Available        bool     `json:"available"`
	ConflictingDates []string `json:"conflictingDates,omitempty"`
	Message          string   `json:"message,omitempty"`
}

// BookedDatesResponse là danh sách ngày đã bị chiếm của một property
type BookedDatesResponse struct {
	PropertyID uint     `json:"propertyId"`
	Dates      []string `json:"dates"`
}
