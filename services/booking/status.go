package booking

import (
	"errors"

	bookingRepo "fixitnow/database/repository/booking"
	"fixitnow/models"
	"fixitnow/utils"

	"go.uber.org/zap"
)

// allowedTransitions is the booking lifecycle graph. COMPLETED and CANCELLED
// are terminal.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled},
	models.BookingStatusCompleted: {},
	models.BookingStatusCancelled: {},
}

// ValidateTransition checks that the state machine admits the edge from
// current to next.
func ValidateTransition(current, next models.BookingStatus) error {
	for _, allowed := range allowedTransitions[current] {
		if allowed == next {
			return nil
		}
	}
	return utils.NewInvalidTransition("booking cannot move from " + string(current) + " to " + string(next))
}

// UpdateStatus applies one state machine transition on behalf of actorID.
// Only the provider may confirm; either party may cancel or complete where
// the graph allows it. Cancellation records the reason and the cancelling
// actor; provider notes are overwritten whenever supplied.
func (s *DefaultBookingService) UpdateStatus(bookingID, actorID string, update models.BookingStatusUpdate) (*models.BookingResponse, error) {
	if !update.Status.Valid() {
		return nil, utils.NewValidation("unknown booking status: " + string(update.Status))
	}

	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NewNotFound("booking not found")
		}
		return nil, err
	}

	if !b.IsParty(actorID) {
		return nil, utils.NewUnauthorized("not a party of this booking")
	}
	if update.Status == models.BookingStatusConfirmed && actorID != b.ProviderID {
		return nil, utils.NewUnauthorized("only the provider can confirm bookings")
	}

	if err := ValidateTransition(b.Status, update.Status); err != nil {
		return nil, err
	}

	b.Status = update.Status
	if update.ProviderNotes != "" {
		b.ProviderNotes = update.ProviderNotes
	}
	if update.Status == models.BookingStatusCancelled {
		b.CancellationReason = update.CancellationReason
		b.CancelledBy = actorID
	}

	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking status updated",
		zap.String("bookingId", b.ID),
		zap.String("status", string(b.Status)),
		zap.String("actorId", actorID),
	)

	if b.Status == models.BookingStatusConfirmed && s.Reminder != nil {
		if err := s.Reminder.ScheduleBookingReminder(b); err != nil {
			utils.GetLogger().Warn("failed to schedule booking reminder",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}

	return s.toResponse(b), nil
}
