package listingRepo

import (
	"errors"

	"fixitnow/models"
)

// ErrNotFound is returned when no service listing matches the given id.
var ErrNotFound = errors.New("service listing not found")

// ServiceListingRepository is the listing-catalog collaborator contract. The
// catalog itself is managed elsewhere; this core only resolves listings. The
// listing's booking counter is incremented inside the booking-create
// transaction so partial application cannot be observed.
type ServiceListingRepository interface {
	GetByID(id string) (*models.ServiceListing, error)
}
