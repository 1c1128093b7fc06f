package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyumba/constants"
	"nyumba/dto"
	"nyumba/errors"
	"nyumba/models"
	"nyumba/repositories"
)

type mockPropertyRepository struct {
	properties map[uint]*models.Property
}

func newMockPropertyRepository() *mockPropertyRepository {
	return &mockPropertyRepository{properties: make(map[uint]*models.Property)}
}

func (m *mockPropertyRepository) add(p models.Property) {
	copied := p
	m.properties[copied.ID] = &copied
}

func (m *mockPropertyRepository) Create(property *models.Property) error {
	property.ID = uint(len(m.properties) + 1)
	m.add(*property)
	return nil
}

func (m *mockPropertyRepository) GetByID(id uint) (*models.Property, error) {
	property, exists := m.properties[id]
	if !exists {
		return nil, errors.ErrPropertyNotFound
	}
	copied := *property
	return &copied, nil
}

func (m *mockPropertyRepository) Update(property *models.Property) error {
	if _, exists := m.properties[property.ID]; !exists {
		return errors.ErrPropertyNotFound
	}
	m.add(*property)
	return nil
}

func (m *mockPropertyRepository) Delete(id uint) error {
	delete(m.properties, id)
	return nil
}

func (m *mockPropertyRepository) All() ([]models.Property, error) {
	var result []models.Property
	for _, p := range m.properties {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockPropertyRepository) ByOwner(ownerID uint) ([]models.Property, error) {
	var result []models.Property
	for _, p := range m.properties {
		if p.UserID == ownerID {
			result = append(result, *p)
		}
	}
	return result, nil
}

// mockTxRunner chạy thẳng closure trên repository mock, không cần DB thật.
type mockTxRunner struct {
	bookings *mockBookingRepository
}

func (m *mockTxRunner) RunInTransaction(fn func(bookings repositories.BookingRepository, lockProperty func(propertyID uint) error) error) error {
	return fn(m.bookings, func(uint) error { return nil })
}

func newTestBookingService(bookings *mockBookingRepository, properties *mockPropertyRepository) *BookingService {
	return NewBookingService(BookingServiceOptions{
		Bookings:   bookings,
		Properties: properties,
		Tx:         &mockTxRunner{bookings: bookings},
	})
}

var testNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func availableProperty() models.Property {
	return models.Property{
		ID:          10,
		UserID:      2,
		Title:       "Căn hộ Đà Nẵng",
		Price:       100000,
		CleaningFee: 15000,
		ServiceFee:  5000,
		Status:      constants.PropertyStatusAvailable,
	}
}

func TestBookingService_Create(t *testing.T) {
	buyer := models.Actor{UserID: 3, Role: constants.RoleBuyer}

	t.Run("tạo booking PENDING với giá do server tính", func(t *testing.T) {
		bookings := newMockBookingRepository()
		properties := newMockPropertyRepository()
		properties.add(availableProperty())
		svc := newTestBookingService(bookings, properties)

		req := &dto.CreateBookingRequest{
			PropertyID: 10,
			StartDate:  "2025-09-10",
			EndDate:    "2025-09-12",
			TotalPrice: 1, // Giá client gửi lên phải bị bỏ qua
			Notes:      "  Đến muộn sau 21h  ",
		}

		booking, err := svc.Create(req, buyer, testNow)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, buyer.UserID, booking.UserID)
		assert.Equal(t, 2, booking.Nights)
		assert.Equal(t, int64(100000), booking.NightlyPrice)
		assert.Equal(t, int64(2*100000+15000+5000), booking.TotalPrice)
		assert.Equal(t, "Đến muộn sau 21h", booking.Notes)
	})

	t.Run("không đặt được chính property của mình", func(t *testing.T) {
		bookings := newMockBookingRepository()
		properties := newMockPropertyRepository()
		properties.add(availableProperty())
		svc := newTestBookingService(bookings, properties)

		owner := models.Actor{UserID: 2, Role: constants.RoleSeller}
		req := &dto.CreateBookingRequest{PropertyID: 10, StartDate: "2025-09-10", EndDate: "2025-09-12"}

		_, err := svc.Create(req, owner, testNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeBookingOwnProperty))
	})

	t.Run("property đang ẩn không nhận đặt chỗ", func(t *testing.T) {
		bookings := newMockBookingRepository()
		properties := newMockPropertyRepository()
		hidden := availableProperty()
		hidden.Status = constants.PropertyStatusHidden
		properties.add(hidden)
		svc := newTestBookingService(bookings, properties)

		req := &dto.CreateBookingRequest{PropertyID: 10, StartDate: "2025-09-10", EndDate: "2025-09-12"}

		_, err := svc.Create(req, buyer, testNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodePropertyNotAvailable))
	})

	t.Run("property không tồn tại", func(t *testing.T) {
		svc := newTestBookingService(newMockBookingRepository(), newMockPropertyRepository())

		req := &dto.CreateBookingRequest{PropertyID: 99, StartDate: "2025-09-10", EndDate: "2025-09-12"}

		_, err := svc.Create(req, buyer, testNow)
		assert.ErrorIs(t, err, errors.ErrPropertyNotFound)
	})

	t.Run("ngày đã kín báo DATES_UNAVAILABLE kèm gợi ý", func(t *testing.T) {
		bookings := newMockBookingRepository()
		bookings.add(confirmedBooking(10, "2025-09-10", "2025-09-12"))
		properties := newMockPropertyRepository()
		properties.add(availableProperty())
		svc := newTestBookingService(bookings, properties)

		req := &dto.CreateBookingRequest{PropertyID: 10, StartDate: "2025-09-11", EndDate: "2025-09-13"}

		_, err := svc.Create(req, buyer, testNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeDatesUnavailable))
		assert.Contains(t, err.Error(), "2025-09-11")
		assert.Contains(t, err.Error(), "2025-09-12") // Ngày trống gần nhất
	})

	t.Run("booking PENDING chồng ngày không chặn booking mới", func(t *testing.T) {
		bookings := newMockBookingRepository()
		pending := confirmedBooking(10, "2025-09-10", "2025-09-12")
		pending.Status = models.BookingStatusPending
		bookings.add(pending)
		properties := newMockPropertyRepository()
		properties.add(availableProperty())
		svc := newTestBookingService(bookings, properties)

		req := &dto.CreateBookingRequest{PropertyID: 10, StartDate: "2025-09-10", EndDate: "2025-09-12"}

		booking, err := svc.Create(req, buyer, testNow)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
	})

	t.Run("lỗi validation trả ngay, không chạm tới repository", func(t *testing.T) {
		svc := newTestBookingService(newMockBookingRepository(), nil)

		req := &dto.CreateBookingRequest{PropertyID: 10, StartDate: "2025-09-10", EndDate: "2025-09-10"}

		_, err := svc.Create(req, buyer, testNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInterval))
	})
}

func TestBookingService_Transition(t *testing.T) {
	seller := models.Actor{UserID: 2, Role: constants.RoleSeller}
	buyer := models.Actor{UserID: 3, Role: constants.RoleBuyer}
	stranger := models.Actor{UserID: 9, Role: constants.RoleBuyer}

	pendingBooking := func() models.Booking {
		return models.Booking{
			ID:         1,
			PropertyID: 10,
			Property:   models.Property{ID: 10, UserID: seller.UserID},
			UserID:     buyer.UserID,
			StartDate:  "2025-09-10",
			EndDate:    "2025-09-12",
			Status:     models.BookingStatusPending,
		}
	}

	t.Run("người tạo tự hủy booking PENDING", func(t *testing.T) {
		bookings := newMockBookingRepository()
		bookings.add(pendingBooking())
		svc := newTestBookingService(bookings, newMockPropertyRepository())

		booking, err := svc.Transition(1, models.BookingStatusCancelled, buyer)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, booking.Status)

		stored, err := bookings.GetByID(1)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, stored.Status)
	})

	t.Run("người ngoài không hủy được", func(t *testing.T) {
		bookings := newMockBookingRepository()
		bookings.add(pendingBooking())
		svc := newTestBookingService(bookings, newMockPropertyRepository())

		_, err := svc.Transition(1, models.BookingStatusCancelled, stranger)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodePermissionDenied))

		stored, err := bookings.GetByID(1)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, stored.Status)
	})

	t.Run("PENDING không chốt COMPLETED được", func(t *testing.T) {
		bookings := newMockBookingRepository()
		bookings.add(pendingBooking())
		svc := newTestBookingService(bookings, newMockPropertyRepository())

		_, err := svc.Transition(1, models.BookingStatusCompleted, seller)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))
	})

	t.Run("chủ property chốt COMPLETED booking CONFIRMED", func(t *testing.T) {
		bookings := newMockBookingRepository()
		b := pendingBooking()
		b.Status = models.BookingStatusConfirmed
		bookings.add(b)
		svc := newTestBookingService(bookings, newMockPropertyRepository())

		booking, err := svc.Transition(1, models.BookingStatusCompleted, seller)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCompleted, booking.Status)
	})

	t.Run("booking không tồn tại", func(t *testing.T) {
		svc := newTestBookingService(newMockBookingRepository(), newMockPropertyRepository())

		_, err := svc.Transition(42, models.BookingStatusCancelled, seller)
		assert.ErrorIs(t, err, errors.ErrBookingNotFound)
	})
}

func TestBookingService_Confirm(t *testing.T) {
	seller := models.Actor{UserID: 2, Role: constants.RoleSeller}
	buyer := models.Actor{UserID: 3, Role: constants.RoleBuyer}

	pendingOn := func(start, end string) models.Booking {
		return models.Booking{
			PropertyID: 10,
			Property:   models.Property{ID: 10, UserID: seller.UserID},
			UserID:     buyer.UserID,
			StartDate:  start,
			EndDate:    end,
			Status:     models.BookingStatusPending,
		}
	}

	t.Run("xác nhận thứ hai chồng ngày bị từ chối", func(t *testing.T) {
		bookings := newMockBookingRepository()
		firstID := bookings.add(pendingOn("2025-09-10", "2025-09-12"))
		secondID := bookings.add(pendingOn("2025-09-11", "2025-09-13"))
		svc := newTestBookingService(bookings, newMockPropertyRepository())

		booking, err := svc.Transition(firstID, models.BookingStatusConfirmed, seller)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

		_, err = svc.Transition(secondID, models.BookingStatusConfirmed, seller)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeDatesUnavailable))

		stored, err := bookings.GetByID(secondID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, stored.Status)
	})

	t.Run("xác nhận không chồng ngày vẫn qua được", func(t *testing.T) {
		bookings := newMockBookingRepository()
		firstID := bookings.add(pendingOn("2025-09-10", "2025-09-12"))
		secondID := bookings.add(pendingOn("2025-09-12", "2025-09-14"))
		svc := newTestBookingService(bookings, newMockPropertyRepository())

		_, err := svc.Transition(firstID, models.BookingStatusConfirmed, seller)
		require.NoError(t, err)

		booking, err := svc.Transition(secondID, models.BookingStatusConfirmed, seller)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	})

	t.Run("người tạo không tự xác nhận được", func(t *testing.T) {
		bookings := newMockBookingRepository()
		id := bookings.add(pendingOn("2025-09-10", "2025-09-12"))
		svc := newTestBookingService(bookings, newMockPropertyRepository())

		_, err := svc.Transition(id, models.BookingStatusConfirmed, buyer)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodePermissionDenied))

		stored, err := bookings.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, stored.Status)
	})
}

func TestBookingService_CompleteFinishedStays(t *testing.T) {
	bookings := newMockBookingRepository()

	ended := confirmedBooking(10, "2025-08-20", "2025-08-25")
	endedID := bookings.add(ended)

	endsToday := confirmedBooking(10, "2025-08-28", "2025-09-01")
	endsTodayID := bookings.add(endsToday)

	ongoing := confirmedBooking(10, "2025-08-30", "2025-09-05")
	ongoingID := bookings.add(ongoing)

	pending := confirmedBooking(10, "2025-08-20", "2025-08-22")
	pending.Status = models.BookingStatusPending
	pendingID := bookings.add(pending)

	svc := newTestBookingService(bookings, newMockPropertyRepository())

	count, err := svc.CompleteFinishedStays(testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for id, want := range map[uint]models.BookingStatus{
		endedID:     models.BookingStatusCompleted,
		endsTodayID: models.BookingStatusCompleted,
		ongoingID:   models.BookingStatusConfirmed,
		pendingID:   models.BookingStatusPending,
	} {
		stored, err := bookings.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, want, stored.Status, "booking %d", id)
	}
}

func TestBookingService_CompleteFinishedStaysXoaCache(t *testing.T) {
	newServiceWithHook := func(bookings *mockBookingRepository, calls *int) *BookingService {
		return NewBookingService(BookingServiceOptions{
			Bookings:       bookings,
			Properties:     newMockPropertyRepository(),
			Tx:             &mockTxRunner{bookings: bookings},
			InvalidateView: func() { *calls++ },
		})
	}

	t.Run("xóa cache một lần khi có booking hoàn thành", func(t *testing.T) {
		bookings := newMockBookingRepository()
		bookings.add(confirmedBooking(10, "2025-08-20", "2025-08-25"))
		bookings.add(confirmedBooking(10, "2025-08-26", "2025-08-28"))

		var calls int
		svc := newServiceWithHook(bookings, &calls)

		count, err := svc.CompleteFinishedStays(testNow)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, 1, calls)
	})

	t.Run("không có gì hoàn thành thì giữ nguyên cache", func(t *testing.T) {
		bookings := newMockBookingRepository()
		bookings.add(confirmedBooking(10, "2025-08-30", "2025-09-05"))

		var calls int
		svc := newServiceWithHook(bookings, &calls)

		count, err := svc.CompleteFinishedStays(testNow)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Equal(t, 0, calls)
	})
}
