package bookingRepo

import (
	"errors"
	"time"

	"fixitnow/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrSlotTaken is returned by Create when the storage-level uniqueness
// constraint over (provider, date, slot) rejects the insert. It is the
// authoritative double-booking signal: the pre-insert conflict check only
// provides the fast path.
var ErrSlotTaken = errors.New("time slot already booked")

// BookingRepository defines the data access contract for bookings.
type BookingRepository interface {
	// Create persists the booking and increments the listing's booking
	// counter atomically. Returns ErrSlotTaken when the conflict index
	// rejects the insert.
	Create(booking *models.Booking) error
	Update(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	// HasConflict reports whether a PENDING or CONFIRMED booking already
	// occupies the given provider, date and time slot.
	HasConflict(providerID string, date time.Time, timeSlot string) (bool, error)
	ListByParty(partyID string, asProvider bool, status *models.BookingStatus, page models.PageRequest) (*models.Page[models.Booking], error)
	ListUpcoming(partyID string, asProvider bool, after time.Time) ([]models.Booking, error)
}
