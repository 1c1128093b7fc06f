package commands

import (
	"nyumba/models"
	"nyumba/repositories"
)

// BookingCommand định nghĩa interface cho các command ghi dữ liệu booking
type BookingCommand interface {
	Execute() error
}

// CreateBookingCommand command để tạo booking mới
type CreateBookingCommand struct {
	booking *models.Booking
	repo    repositories.BookingRepository
}

func NewCreateBookingCommand(booking *models.Booking, repo repositories.BookingRepository) *CreateBookingCommand {
	return &CreateBookingCommand{
		booking: booking,
		repo:    repo,
	}
}

func (c *CreateBookingCommand) Execute() error {
	return c.repo.Create(c.booking)
}

// UpdateBookingCommand command để cập nhật booking
type UpdateBookingCommand struct {
	booking *models.Booking
	repo    repositories.BookingRepository
}

func NewUpdateBookingCommand(booking *models.Booking, repo repositories.BookingRepository) *UpdateBookingCommand {
	return &UpdateBookingCommand{
		booking: booking,
		repo:    repo,
	}
}

func (c *UpdateBookingCommand) Execute() error {
	return c.repo.Update(c.booking)
}
