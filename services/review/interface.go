package review

import (
	"fixitnow/models"
)

// ReviewService owns review submission and the provider rating aggregate
// derived from it.
type ReviewService interface {
	CreateReview(customerID string, input models.ReviewInput) (*models.Review, error)
	UpdateReview(reviewID, customerID string, input models.ReviewInput) (*models.Review, error)
	DeleteReview(reviewID, customerID string) error
	HasReviewed(serviceListingID, customerID string) (bool, error)
	ListByService(serviceListingID string, page models.PageRequest) (*models.Page[models.Review], error)
	ListByProvider(providerProfileID string, page models.PageRequest) (*models.Page[models.Review], error)
	ListByCustomer(customerID string) ([]models.Review, error)
}
