package builders

import (
	"nyumba/dto"
	"nyumba/models"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder tạo instance mới của BookingBuilder.
// Booking luôn bắt đầu ở trạng thái PENDING.
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{
			Status: models.BookingStatusPending,
		},
	}
}

// WithRequester thêm người gửi yêu cầu thuê
func (b *BookingBuilder) WithRequester(userID uint) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

// WithProperty thêm property được thuê
func (b *BookingBuilder) WithProperty(propertyID uint) *BookingBuilder {
	b.booking.PropertyID = propertyID
	return b
}

// WithInterval thêm khoảng ngày thuê
func (b *BookingBuilder) WithInterval(interval models.Interval) *BookingBuilder {
	b.booking.StartDate = interval.StartString()
	b.booking.EndDate = interval.EndString()
	b.booking.Nights = interval.Nights()
	return b
}

// WithPrice chốt bảng giá tại thời điểm tạo
func (b *BookingBuilder) WithPrice(breakdown *dto.PriceBreakdown) *BookingBuilder {
	b.booking.Nights = breakdown.Nights
	b.booking.NightlyPrice = breakdown.NightlyPrice
	b.booking.CleaningFee = breakdown.CleaningFee
	b.booking.ServiceFee = breakdown.ServiceFee
	b.booking.TotalPrice = breakdown.TotalPrice
	return b
}

// WithNotes thêm ghi chú
func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.booking.Notes = notes
	return b
}

// Build tạo booking hoàn chỉnh
func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
