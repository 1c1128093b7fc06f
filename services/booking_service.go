package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nyumba/builders"
	"nyumba/commands"
	"nyumba/constants"
	"nyumba/dto"
	"nyumba/errors"
	"nyumba/models"
	"nyumba/repositories"
	"nyumba/services/logger"
	"nyumba/validator"
)

// NextAvailableSearchDays là số ngày tối đa quét tới khi gợi ý ngày trống gần nhất
const NextAvailableSearchDays = 60

// BookingTxRunner chạy một thao tác booking trong ranh giới transaction:
// fn nhận repo gắn vào transaction và hàm khóa property làm điểm serialize
// cho mọi confirm trên cùng property.
type BookingTxRunner interface {
	RunInTransaction(fn func(bookings repositories.BookingRepository, lockProperty func(propertyID uint) error) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) RunInTransaction(fn func(bookings repositories.BookingRepository, lockProperty func(propertyID uint) error) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		lockProperty := func(propertyID uint) error {
			var property models.Property
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&property, propertyID).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không khóa được property để xác nhận", err)
			}
			return nil
		}
		return fn(repositories.NewBookingRepository(tx), lockProperty)
	})
}

// BookingServiceOptions gom dependency của BookingService
type BookingServiceOptions struct {
	DB         *gorm.DB
	Bookings   repositories.BookingRepository
	Properties repositories.PropertyRepository
	Tx         BookingTxRunner
	Notifier   *NotificationService
	Logger     logger.Logger

	// InvalidateView xóa cache danh sách booking sau khi trạng thái đổi
	// ngoài request HTTP (cron). Có thể nil.
	InvalidateView func()
}

// BookingService điều phối vòng đời booking: tạo PENDING, chuyển trạng thái
// theo state machine, và quét tự hoàn thành các stay đã qua ngày trả phòng
type BookingService struct {
	bookings       repositories.BookingRepository
	properties     repositories.PropertyRepository
	tx             BookingTxRunner
	pricing        *PricingService
	notifier       *NotificationService
	logger         logger.Logger
	invalidateView func()
}

// NewBookingService tạo instance mới của BookingService
func NewBookingService(opts BookingServiceOptions) *BookingService {
	if opts.Bookings == nil && opts.DB != nil {
		opts.Bookings = repositories.NewBookingRepository(opts.DB)
	}
	if opts.Properties == nil && opts.DB != nil {
		opts.Properties = repositories.NewPropertyRepository(opts.DB)
	}
	if opts.Tx == nil && opts.DB != nil {
		opts.Tx = &gormTxRunner{db: opts.DB}
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &BookingService{
		bookings:       opts.Bookings,
		properties:     opts.Properties,
		tx:             opts.Tx,
		pricing:        NewPricingService(),
		notifier:       opts.Notifier,
		logger:         opts.Logger,
		invalidateView: opts.InvalidateView,
	}
}

// Create tạo booking mới ở trạng thái PENDING. Giá được server tự tính,
// không tin giá client gửi lên.
func (s *BookingService) Create(req *dto.CreateBookingRequest, actor models.Actor, now time.Time) (*models.Booking, error) {
	interval, err := validator.ValidateCreateBooking(req, now)
	if err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(req.PropertyID)
	if err != nil {
		return nil, err
	}

	if property.Status != constants.PropertyStatusAvailable {
		return nil, errors.NewAppError(
			errors.ErrCodePropertyNotAvailable,
			"Property này hiện không nhận đặt chỗ",
			nil,
		)
	}

	if actor.Owns(property) {
		return nil, errors.NewAppError(
			errors.ErrCodeBookingOwnProperty,
			"Bạn không thể đặt chính property của mình",
			nil,
		)
	}

	availability := NewAvailabilityService(s.bookings)
	result, err := availability.Check(property.ID, interval, 0)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, s.datesUnavailableError(availability, property.ID, interval, result)
	}

	quote, err := s.pricing.Quote(property, interval)
	if err != nil {
		return nil, err
	}

	booking := builders.NewBookingBuilder().
		WithRequester(actor.UserID).
		WithProperty(property.ID).
		WithInterval(interval).
		WithPrice(quote).
		WithNotes(strings.TrimSpace(req.Notes)).
		Build()

	if err := commands.NewCreateBookingCommand(booking, s.bookings).Execute(); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không tạo được booking", err)
	}

	s.logger.Info("Đã tạo booking %d cho property %d, %d đêm, tổng %d",
		booking.ID, booking.PropertyID, booking.Nights, booking.TotalPrice)

	created, err := s.bookings.GetByID(booking.ID)
	if err != nil {
		return booking, nil
	}

	s.notify("booking.created", created)
	return created, nil
}

// Gợi ý ngày trống gần nhất khi khoảng yêu cầu đã kín
func (s *BookingService) datesUnavailableError(availability *AvailabilityService, propertyID uint, interval models.Interval, result *AvailabilityResult) error {
	message := fmt.Sprintf("Các ngày %s đã có người đặt, vui lòng chọn khoảng khác",
		strings.Join(result.ConflictingDates, ", "))

	suggestion, err := availability.NextAvailableStart(propertyID, interval, NextAvailableSearchDays)
	if err == nil && suggestion != "" {
		message += fmt.Sprintf(". Khoảng trống gần nhất bắt đầu từ %s", suggestion)
	}

	return errors.NewAppError(errors.ErrCodeDatesUnavailable, message, nil)
}

// Transition chuyển booking sang trạng thái mới theo state machine.
// Transition sang CONFIRMED chạy trong một transaction, khóa property
// để hai confirm chồng ngày không thể cùng thành công.
func (s *BookingService) Transition(bookingID uint, to models.BookingStatus, actor models.Actor) (*models.Booking, error) {
	if to == models.BookingStatusConfirmed {
		return s.confirm(bookingID, actor)
	}

	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if err := models.ApplyTransition(booking, to, actor); err != nil {
		return nil, err
	}

	if err := commands.NewUpdateBookingCommand(booking, s.bookings).Execute(); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được booking", err)
	}

	s.logger.Info("Booking %d chuyển sang %s bởi user %d", booking.ID, booking.Status, actor.UserID)
	s.notify("booking."+strings.ToLower(string(to)), booking)
	return booking, nil
}

// confirm xác nhận một booking PENDING. Kiểm tra lịch trống và ghi trạng thái
// là một đơn vị nguyên tử: khóa dòng property (FOR UPDATE) làm điểm serialize
// cho mọi confirm trên cùng property.
func (s *BookingService) confirm(bookingID uint, actor models.Actor) (*models.Booking, error) {
	if s.tx == nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Thiếu ranh giới transaction để xác nhận booking", nil)
	}

	var confirmed *models.Booking

	err := s.tx.RunInTransaction(func(bookings repositories.BookingRepository, lockProperty func(propertyID uint) error) error {
		booking, err := bookings.GetByID(bookingID)
		if err != nil {
			return err
		}

		if err := lockProperty(booking.PropertyID); err != nil {
			return err
		}

		if err := models.ApplyTransition(booking, models.BookingStatusConfirmed, actor); err != nil {
			return err
		}

		interval, err := booking.Interval()
		if err != nil {
			return err
		}

		availability := NewAvailabilityService(bookings)
		result, err := availability.Check(booking.PropertyID, interval, booking.ID)
		if err != nil {
			return err
		}
		if !result.Available {
			return s.datesUnavailableError(availability, booking.PropertyID, interval, result)
		}

		if err := commands.NewUpdateBookingCommand(booking, bookings).Execute(); err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được booking", err)
		}

		confirmed = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking %d đã được xác nhận bởi user %d", confirmed.ID, actor.UserID)
	s.notify("booking.confirmed", confirmed)
	return confirmed, nil
}

// CompleteFinishedStays chuyển các booking CONFIRMED đã qua ngày trả phòng
// sang COMPLETED. Chạy định kỳ bởi cron job.
func (s *BookingService) CompleteFinishedStays(now time.Time) (int, error) {
	today := now.UTC().Format(constants.DateLayout)

	finished, err := s.bookings.ConfirmedEndedBefore(today)
	if err != nil {
		return 0, err
	}

	// Job hệ thống chạy với quyền admin
	system := models.Actor{Role: constants.RoleAdmin}

	count := 0
	for i := range finished {
		booking := &finished[i]
		if err := models.ApplyTransition(booking, models.BookingStatusCompleted, system); err != nil {
			s.logger.Error("Không hoàn thành được booking %d: %v", booking.ID, err)
			continue
		}
		if err := s.bookings.Update(booking); err != nil {
			s.logger.Error("Không lưu được booking %d: %v", booking.ID, err)
			continue
		}
		s.notify("booking.completed", booking)
		count++
	}

	if count > 0 {
		// Cache danh sách booking đang giữ trạng thái cũ
		if s.invalidateView != nil {
			s.invalidateView()
		}
		s.logger.Info("Đã tự hoàn thành %d booking qua ngày trả phòng", count)
	}
	return count, nil
}

func (s *BookingService) notify(event string, booking *models.Booking) {
	if err := s.notifier.BroadcastBookingEvent(event, booking); err != nil {
		s.logger.Error("Không gửi được sự kiện %s cho booking %d: %v", event, booking.ID, err)
	}
}
