package booking

import (
	"errors"
	"strings"
	"time"

	bookingRepo "fixitnow/database/repository/booking"
	listingRepo "fixitnow/database/repository/listing"
	userRepo "fixitnow/database/repository/user"
	"fixitnow/models"
	"fixitnow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	ListingRepo listingRepo.ServiceListingRepository
	UserRepo    userRepo.UserRepository
	Reminder    ReminderScheduler // optional
}

// CreateBooking validates the target listing and customer, conflict-checks the
// provider's slot, and persists a PENDING booking. The pre-insert conflict
// check is advisory; the storage-level unique constraint is what closes the
// race, so a duplicate insert (ErrSlotTaken) is reported as the same conflict.
func (s *DefaultBookingService) CreateBooking(customerID string, req models.BookingRequest) (*models.BookingResponse, error) {
	if strings.TrimSpace(req.TimeSlot) == "" {
		return nil, utils.NewValidation("time slot is required")
	}
	if req.TotalPrice < 0 {
		return nil, utils.NewValidation("total price must not be negative")
	}

	listing, err := s.ListingRepo.GetByID(req.ServiceListingID)
	if err != nil {
		if errors.Is(err, listingRepo.ErrNotFound) {
			return nil, utils.NewNotFound("service listing not found")
		}
		return nil, err
	}
	if !listing.Active {
		return nil, utils.NewValidation("service is not available for booking")
	}

	exists, err := s.UserRepo.Exists(customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, utils.NewNotFound("customer not found")
	}

	providerID := listing.ProviderUserID

	conflict, err := s.Repo.HasConflict(providerID, req.BookingDate, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, utils.NewConflict("provider is not available for the selected time slot")
	}

	now := time.Now()
	b := &models.Booking{
		ID:               uuid.New().String(),
		ServiceListingID: listing.ID,
		CustomerID:       customerID,
		ProviderID:       providerID,
		BookingDate:      req.BookingDate,
		TimeSlot:         req.TimeSlot,
		DurationHours:    req.DurationHours,
		Status:           models.BookingStatusPending,
		TotalPrice:       req.TotalPrice,
		ServiceLocation:  req.ServiceLocation,
		CustomerNotes:    req.CustomerNotes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Create also increments the listing's booking counter; the two writes
	// share one transaction.
	if err := s.Repo.Create(b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, utils.NewConflict("provider is not available for the selected time slot")
		}
		return nil, err
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("providerId", providerID),
		zap.String("timeSlot", b.TimeSlot),
	)

	return s.toResponse(b), nil
}
