package repositories

import (
	stderrors "errors"

	"gorm.io/gorm"

	"nyumba/errors"
	"nyumba/models"
)

// BookingRepository định nghĩa interface truy cập dữ liệu booking.
// Core service chỉ làm việc qua interface này, không đụng trực tiếp
// tới DB, để test có thể thay bằng mock.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	Update(booking *models.Booking) error
	ConfirmedByProperty(propertyID uint, excludeBookingID uint) ([]models.Booking, error)
	ForRequester(userID uint) ([]models.Booking, error)
	ForOwner(ownerID uint) ([]models.Booking, error)
	All() ([]models.Booking, error)
	ConfirmedEndedBefore(date string) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository tạo repository trên một kết nối (hoặc transaction) gorm
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *bookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Preload("Property").Preload("Property.User").Preload("User").First(&booking, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Update(booking *models.Booking) error {
	return r.db.Save(booking).Error
}

// ConfirmedByProperty trả về các booking CONFIRMED của một property,
// bỏ qua excludeBookingID khi kiểm tra lại một booking đang sửa
func (r *bookingRepository) ConfirmedByProperty(propertyID uint, excludeBookingID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	tx := r.db.Where("property_id = ? AND status = ?", propertyID, models.BookingStatusConfirmed)
	if excludeBookingID != 0 {
		tx = tx.Where("id <> ?", excludeBookingID)
	}
	if err := tx.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ForRequester(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Preload("Property").Preload("User").
		Where("user_id = ?", userID).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ForOwner trả về các booking trên những property thuộc về ownerID
func (r *bookingRepository) ForOwner(ownerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Preload("Property").Preload("User").
		Where("property_id IN (?)",
			r.db.Model(&models.Property{}).Select("id").Where("user_id = ?", ownerID)).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) All() ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Preload("Property").Preload("User").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ConfirmedEndedBefore trả về các booking CONFIRMED có ngày trả phòng trước date,
// dùng cho job tự chuyển sang COMPLETED
func (r *bookingRepository) ConfirmedEndedBefore(date string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Preload("Property").
		Where("status = ? AND end_date <= ?", models.BookingStatusConfirmed, date).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
