package review

import (
	"errors"

	listingRepo "fixitnow/database/repository/listing"
	providerRepo "fixitnow/database/repository/provider"
	reviewRepo "fixitnow/database/repository/review"
	userRepo "fixitnow/database/repository/user"
	"fixitnow/models"
	"fixitnow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultReviewService implements ReviewService. Every review mutation
// synchronously recomputes the owning provider's rating aggregate.
type DefaultReviewService struct {
	Repo         reviewRepo.ReviewRepository
	ListingRepo  listingRepo.ServiceListingRepository
	UserRepo     userRepo.UserRepository
	ProviderRepo providerRepo.ProviderProfileRepository

	ratingLocks *utils.KeyedMutex
}

// NewDefaultReviewService wires a review service with its per-provider
// recompute serialization.
func NewDefaultReviewService(
	repo reviewRepo.ReviewRepository,
	listings listingRepo.ServiceListingRepository,
	users userRepo.UserRepository,
	providers providerRepo.ProviderProfileRepository,
) *DefaultReviewService {
	return &DefaultReviewService{
		Repo:         repo,
		ListingRepo:  listings,
		UserRepo:     users,
		ProviderRepo: providers,
		ratingLocks:  utils.NewKeyedMutex(),
	}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return utils.NewValidation("rating must be between 1 and 5")
	}
	return nil
}

func validateComment(comment string) error {
	if len(comment) > models.MaxReviewCommentLength {
		return utils.NewValidation("comment is too long")
	}
	return nil
}

// CreateReview persists a review for the listing, at most one per customer
// per listing, and recomputes the provider's rating.
func (s *DefaultReviewService) CreateReview(customerID string, input models.ReviewInput) (*models.Review, error) {
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}
	if err := validateComment(input.Comment); err != nil {
		return nil, err
	}

	exists, err := s.UserRepo.Exists(customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, utils.NewNotFound("customer not found")
	}

	listing, err := s.ListingRepo.GetByID(input.ServiceListingID)
	if err != nil {
		if errors.Is(err, listingRepo.ErrNotFound) {
			return nil, utils.NewNotFound("service listing not found")
		}
		return nil, err
	}

	rv := &models.Review{
		ID:                uuid.New().String(),
		ServiceListingID:  listing.ID,
		ProviderProfileID: listing.ProviderProfileID,
		CustomerID:        customerID,
		Rating:            input.Rating,
		Comment:           input.Comment,
	}

	// The unique (customer, listing) index is the authority on duplicates.
	if err := s.Repo.Create(rv); err != nil {
		if errors.Is(err, reviewRepo.ErrDuplicate) {
			return nil, utils.NewConflict("you have already reviewed this service")
		}
		return nil, err
	}

	if err := s.Recompute(rv.ProviderProfileID); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("review created",
		zap.String("reviewId", rv.ID),
		zap.String("listingId", listing.ID),
		zap.Int("rating", rv.Rating),
	)

	return rv, nil
}

// UpdateReview overwrites the author's rating/comment and recomputes the
// provider's rating.
func (s *DefaultReviewService) UpdateReview(reviewID, customerID string, input models.ReviewInput) (*models.Review, error) {
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}
	if err := validateComment(input.Comment); err != nil {
		return nil, err
	}

	rv, err := s.Repo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrNotFound) {
			return nil, utils.NewNotFound("review not found")
		}
		return nil, err
	}
	if rv.CustomerID != customerID {
		return nil, utils.NewUnauthorized("you don't have permission to update this review")
	}

	rv.Rating = input.Rating
	rv.Comment = input.Comment
	if err := s.Repo.Update(rv); err != nil {
		return nil, err
	}

	if err := s.Recompute(rv.ProviderProfileID); err != nil {
		return nil, err
	}
	return rv, nil
}

// DeleteReview removes the author's review and recomputes the provider's
// rating.
func (s *DefaultReviewService) DeleteReview(reviewID, customerID string) error {
	rv, err := s.Repo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrNotFound) {
			return utils.NewNotFound("review not found")
		}
		return err
	}
	if rv.CustomerID != customerID {
		return utils.NewUnauthorized("you don't have permission to delete this review")
	}

	if err := s.Repo.Delete(reviewID); err != nil {
		return err
	}
	return s.Recompute(rv.ProviderProfileID)
}

// HasReviewed reports whether the customer has already reviewed the listing.
func (s *DefaultReviewService) HasReviewed(serviceListingID, customerID string) (bool, error) {
	return s.Repo.Exists(serviceListingID, customerID)
}

// ListByService returns one page of the listing's reviews, newest first.
func (s *DefaultReviewService) ListByService(serviceListingID string, page models.PageRequest) (*models.Page[models.Review], error) {
	return s.Repo.ListByListing(serviceListingID, page)
}

// ListByProvider returns one page of the provider's reviews, newest first.
func (s *DefaultReviewService) ListByProvider(providerProfileID string, page models.PageRequest) (*models.Page[models.Review], error) {
	return s.Repo.ListByProvider(providerProfileID, page)
}

// ListByCustomer returns all reviews authored by the customer.
func (s *DefaultReviewService) ListByCustomer(customerID string) ([]models.Review, error) {
	return s.Repo.ListByCustomer(customerID)
}
