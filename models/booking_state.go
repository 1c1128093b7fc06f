package models

import (
	"fmt"

	"nyumba/errors"
)

// BookingState định nghĩa interface cho các trạng thái booking.
// Mỗi transition được gate theo actor: sai cặp (from, to) trả về
// INVALID_TRANSITION, đúng cặp nhưng sai actor trả về PERMISSION_DENIED.
type BookingState interface {
	Confirm(b *Booking, actor Actor) error
	Cancel(b *Booking, actor Actor) error
	Complete(b *Booking, actor Actor) error
}

func invalidTransition(from, to BookingStatus) error {
	return errors.NewAppError(
		errors.ErrCodeInvalidTransition,
		fmt.Sprintf("Không thể chuyển booking từ %s sang %s", from, to),
		nil,
	)
}

func permissionDenied(to BookingStatus) error {
	return errors.NewAppError(
		errors.ErrCodePermissionDenied,
		fmt.Sprintf("Bạn không có quyền chuyển booking sang %s", to),
		nil,
	)
}

// PendingState trạng thái chờ xác nhận
type PendingState struct{}

func (s *PendingState) Confirm(b *Booking, actor Actor) error {
	if !b.CanManage(actor) {
		return permissionDenied(BookingStatusConfirmed)
	}
	b.Status = BookingStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(b *Booking, actor Actor) error {
	// Người tạo booking được tự hủy khi còn PENDING
	if !b.CanManage(actor) && !b.IsRequester(actor) {
		return permissionDenied(BookingStatusCancelled)
	}
	b.Status = BookingStatusCancelled
	return nil
}

func (s *PendingState) Complete(b *Booking, actor Actor) error {
	return invalidTransition(BookingStatusPending, BookingStatusCompleted)
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(b *Booking, actor Actor) error {
	return invalidTransition(BookingStatusConfirmed, BookingStatusConfirmed)
}

func (s *ConfirmedState) Cancel(b *Booking, actor Actor) error {
	if !b.CanManage(actor) {
		return permissionDenied(BookingStatusCancelled)
	}
	b.Status = BookingStatusCancelled
	return nil
}

func (s *ConfirmedState) Complete(b *Booking, actor Actor) error {
	if !b.CanManage(actor) {
		return permissionDenied(BookingStatusCompleted)
	}
	b.Status = BookingStatusCompleted
	return nil
}

// CancelledState trạng thái đã hủy, không đổi được nữa
type CancelledState struct{}

func (s *CancelledState) Confirm(b *Booking, actor Actor) error {
	return invalidTransition(BookingStatusCancelled, BookingStatusConfirmed)
}

func (s *CancelledState) Cancel(b *Booking, actor Actor) error {
	return invalidTransition(BookingStatusCancelled, BookingStatusCancelled)
}

func (s *CancelledState) Complete(b *Booking, actor Actor) error {
	return invalidTransition(BookingStatusCancelled, BookingStatusCompleted)
}

// CompletedState trạng thái hoàn thành, không đổi được nữa
type CompletedState struct{}

func (s *CompletedState) Confirm(b *Booking, actor Actor) error {
	return invalidTransition(BookingStatusCompleted, BookingStatusConfirmed)
}

func (s *CompletedState) Cancel(b *Booking, actor Actor) error {
	return invalidTransition(BookingStatusCompleted, BookingStatusCancelled)
}

func (s *CompletedState) Complete(b *Booking, actor Actor) error {
	return invalidTransition(BookingStatusCompleted, BookingStatusCompleted)
}

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status BookingStatus) BookingState {
	switch status {
	case BookingStatusPending:
		return &PendingState{}
	case BookingStatusConfirmed:
		return &ConfirmedState{}
	case BookingStatusCancelled:
		return &CancelledState{}
	case BookingStatusCompleted:
		return &CompletedState{}
	default:
		return &PendingState{}
	}
}

// ApplyTransition chạy transition tới trạng thái đích trên state hiện tại
func ApplyTransition(b *Booking, to BookingStatus, actor Actor) error {
	state := GetBookingState(b.Status)
	switch to {
	case BookingStatusConfirmed:
		return state.Confirm(b, actor)
	case BookingStatusCancelled:
		return state.Cancel(b, actor)
	case BookingStatusCompleted:
		return state.Complete(b, actor)
	default:
		return invalidTransition(b.Status, to)
	}
}
