package services

import (
	"encoding/json"

	"github.com/olahol/melody"

	"nyumba/models"
)

// BookingEvent là sự kiện vòng đời booking đẩy xuống dashboard qua websocket
type BookingEvent struct {
	Event      string               `json:"event"`
	BookingID  uint                 `json:"bookingId"`
	PropertyID uint                 `json:"propertyId"`
	Status     models.BookingStatus `json:"status"`
}

// NotificationService broadcast sự kiện booking cho các dashboard đang mở
type NotificationService struct {
	m *melody.Melody
}

func NewNotificationService(m *melody.Melody) *NotificationService {
	return &NotificationService{m: m}
}

// BroadcastBookingEvent gửi sự kiện cho tất cả client. Lỗi gửi không làm
// fail thao tác booking, caller chỉ log lại.
func (s *NotificationService) BroadcastBookingEvent(event string, booking *models.Booking) error {
	if s == nil || s.m == nil {
		return nil
	}

	payload, err := json.Marshal(BookingEvent{
		Event:      event,
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		Status:     booking.Status,
	})
	if err != nil {
		return err
	}
	return s.m.Broadcast(payload)
}
