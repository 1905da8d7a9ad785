package booking

import (
	"errors"
	"time"

	bookingRepo "fixitnow/database/repository/booking"
	"fixitnow/models"
	"fixitnow/utils"
)

// GetBooking returns the booking if actorID is one of its parties.
func (s *DefaultBookingService) GetBooking(bookingID, actorID string) (*models.BookingResponse, error) {
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
	return s.toResponse(b), nil
}

// ListBookings returns one page of the party's bookings, optionally filtered
// by status. Sorting defaults to created_at descending.
func (s *DefaultBookingService) ListBookings(partyID string, asProvider bool, status *models.BookingStatus, page models.PageRequest) (*models.Page[models.BookingResponse], error) {
	if status != nil && !status.Valid() {
		return nil, utils.NewValidation("unknown booking status: " + string(*status))
	}

	result, err := s.Repo.ListByParty(partyID, asProvider, status, page)
	if err != nil {
		return nil, err
	}

	out := &models.Page[models.BookingResponse]{
		Page:       result.Page,
		Size:       result.Size,
		TotalItems: result.TotalItems,
	}
	for i := range result.Items {
		out.Items = append(out.Items, *s.toResponse(&result.Items[i]))
	}
	return out, nil
}

// ListUpcoming returns the party's PENDING/CONFIRMED bookings from now on,
// ordered by booking date ascending.
func (s *DefaultBookingService) ListUpcoming(partyID string, asProvider bool) ([]models.BookingResponse, error) {
	bookings, err := s.Repo.ListUpcoming(partyID, asProvider, time.Now())
	if err != nil {
		return nil, err
	}

	out := make([]models.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *s.toResponse(&bookings[i]))
	}
	return out, nil
}

// toResponse resolves display details from the listing and identity
// collaborators. Lookups are best-effort: a missing collaborator record
// leaves the corresponding fields empty rather than failing the request.
func (s *DefaultBookingService) toResponse(b *models.Booking) *models.BookingResponse {
	resp := &models.BookingResponse{Booking: *b}

	if listing, err := s.ListingRepo.GetByID(b.ServiceListingID); err == nil {
		resp.ServiceTitle = listing.Title
		resp.ServiceCategoryName = listing.CategoryName
	}
	if customer, err := s.UserRepo.GetByID(b.CustomerID); err == nil {
		resp.CustomerName = customer.Name
		resp.CustomerEmail = customer.Email
	}
	if provider, err := s.UserRepo.GetByID(b.ProviderID); err == nil {
		resp.ProviderName = provider.Name
		resp.ProviderEmail = provider.Email
	}
	return resp
}
