package userRepo

import (
	"errors"

	"fixitnow/models"
)

// ErrNotFound is returned when no user matches the given id.
var ErrNotFound = errors.New("user not found")

// UserRepository is the identity collaborator contract. Authentication and
// registration live elsewhere; this core only resolves users by id.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	Exists(id string) (bool, error)
}
