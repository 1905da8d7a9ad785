package providerRepo

import (
	"errors"

	"fixitnow/models"
)

// ErrNotFound is returned when no provider profile matches the given id.
var ErrNotFound = errors.New("provider profile not found")

// ProviderProfileRepository defines the data access contract for provider
// profiles. Rating fields are written only through UpdateRating; everything
// else on the profile belongs to the provider-management collaborator.
type ProviderProfileRepository interface {
	GetByID(id string) (*models.ProviderProfile, error)
	UpdateRating(id string, rating float64, totalReviews int) error
}
