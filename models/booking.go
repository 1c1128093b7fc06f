package models

import (
	"time"
)

// BookingStatus là trạng thái vòng đời của booking, đúng với giá trị trên wire
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// IsTerminal cho biết trạng thái có phải trạng thái kết thúc không.
// Booking ở trạng thái kết thúc được giữ lại để thống kê, không bao giờ xóa.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// IsValidStatus kiểm tra chuỗi trạng thái từ client
func IsValidStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	PropertyID uint     `json:"propertyId"`
	Property   Property `json:"property" gorm:"foreignKey:PropertyID"`
	UserID     uint     `json:"userId"` // Người gửi yêu cầu thuê
	User       *User    `json:"user" gorm:"foreignKey:UserID"`
	StartDate  string   `json:"startDate"` // YYYY-MM-DD, ngày nhận phòng
	EndDate    string   `json:"endDate"`   // YYYY-MM-DD, ngày trả phòng

	// Giá chốt tại thời điểm tạo booking, không đổi khi property đổi giá
	Nights       int   `json:"nights"`
	NightlyPrice int64 `json:"nightlyPrice"`
	CleaningFee  int64 `json:"cleaningFee"`
	ServiceFee   int64 `json:"serviceFee"`
	TotalPrice   int64 `json:"totalPrice"`

	Status    BookingStatus `json:"status" gorm:"type:varchar(20);default:PENDING"`
	Notes     string        `json:"notes" gorm:"type:varchar(500)"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Interval trả về khoảng ngày của booking
func (b *Booking) Interval() (Interval, error) {
	return ParseInterval(b.StartDate, b.EndDate)
}

// IsRequester kiểm tra actor có phải người tạo booking không
func (b *Booking) IsRequester(actor Actor) bool {
	return b.UserID == actor.UserID
}

// CanManage kiểm tra actor có quyền quản lý booking không:
// admin hệ thống hoặc chủ của property
func (b *Booking) CanManage(actor Actor) bool {
	return actor.IsAdmin() || actor.Owns(&b.Property)
}
