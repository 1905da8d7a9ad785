package booking

import (
	"fixitnow/models"
)

// BookingService owns the booking lifecycle: creation with conflict
// detection, status transitions, and party-scoped queries.
type BookingService interface {
	CreateBooking(customerID string, req models.BookingRequest) (*models.BookingResponse, error)
	UpdateStatus(bookingID, actorID string, update models.BookingStatusUpdate) (*models.BookingResponse, error)
	GetBooking(bookingID, actorID string) (*models.BookingResponse, error)
	ListBookings(partyID string, asProvider bool, status *models.BookingStatus, page models.PageRequest) (*models.Page[models.BookingResponse], error)
	ListUpcoming(partyID string, asProvider bool) ([]models.BookingResponse, error)
}

// ReminderScheduler schedules a reminder ahead of a confirmed booking.
// Best-effort: scheduling failures are logged, never surfaced to the caller.
type ReminderScheduler interface {
	ScheduleBookingReminder(b *models.Booking) error
}
