package reviewRepo

import (
	"errors"

	"fixitnow/models"
)

// ErrNotFound is returned when no review matches the given id.
var ErrNotFound = errors.New("review not found")

// ErrDuplicate is returned by Create when the customer has already reviewed
// the listing; the unique (customer, listing) index is the authority.
var ErrDuplicate = errors.New("review already exists for customer and listing")

// ReviewRepository defines the data access contract for reviews.
type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id string) error
	GetByID(id string) (*models.Review, error)
	Exists(serviceListingID, customerID string) (bool, error)
	ListByListing(serviceListingID string, page models.PageRequest) (*models.Page[models.Review], error)
	ListByProvider(providerProfileID string, page models.PageRequest) (*models.Page[models.Review], error)
	ListByCustomer(customerID string) ([]models.Review, error)
	// AggregateForProvider computes the arithmetic mean rating and review
	// count across all current reviews for the provider. Returns (0, 0)
	// when the provider has no reviews.
	AggregateForProvider(providerProfileID string) (avg float64, count int, err error)
}
