package review

import (
	"errors"
	"math"

	providerRepo "fixitnow/database/repository/provider"
	"fixitnow/utils"

	"go.uber.org/zap"
)

// Recompute reads all current reviews for the provider and writes the mean
// rating and review count back to the profile. It is the sole writer of
// those fields. The read-then-write is serialized per provider id so
// concurrent review mutations cannot lose updates. The average is rounded to
// 2 decimal places; a provider with no reviews gets 0.0 / 0.
func (s *DefaultReviewService) Recompute(providerProfileID string) error {
	if s.ratingLocks == nil {
		s.ratingLocks = utils.NewKeyedMutex()
	}
	s.ratingLocks.Lock(providerProfileID)
	defer s.ratingLocks.Unlock(providerProfileID)

	avg, count, err := s.Repo.AggregateForProvider(providerProfileID)
	if err != nil {
		return err
	}

	rating := math.Round(avg*100) / 100
	if count == 0 {
		rating = 0
	}

	if err := s.ProviderRepo.UpdateRating(providerProfileID, rating, count); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return utils.NewNotFound("provider profile not found")
		}
		return err
	}

	utils.GetLogger().Debug("provider rating recomputed",
		zap.String("providerProfileId", providerProfileID),
		zap.Float64("rating", rating),
		zap.Int("totalReviews", count),
	)
	return nil
}
