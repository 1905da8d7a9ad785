package models

import "time"

// ProviderProfile holds the provider-facing profile. Rating and TotalReviews
// are derived state: they always equal the mean and count of all current
// reviews for the provider and are written only by the rating aggregator.
type ProviderProfile struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	BusinessName string    `bson:"business_name,omitempty" json:"business_name,omitempty"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Rating       float64   `bson:"rating" json:"rating"` // mean of review ratings, 2 decimal places
	TotalReviews int       `bson:"total_reviews" json:"total_reviews"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
