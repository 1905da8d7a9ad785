package models

import "time"

// ServiceListing is the catalog entry a booking or review points at. The
// listing catalog is an external collaborator; this core only reads listings
// and bumps their booking counter.
type ServiceListing struct {
	ID                string    `bson:"id" json:"id"`
	ProviderProfileID string    `bson:"provider_profile_id" json:"provider_profile_id"`
	ProviderUserID    string    `bson:"provider_user_id" json:"provider_user_id"`
	Title             string    `bson:"title" json:"title"`
	CategoryName      string    `bson:"category_name,omitempty" json:"category_name,omitempty"`
	Price             float64   `bson:"price" json:"price"`
	Active            bool      `bson:"active" json:"active"`
	BookingCount      int       `bson:"booking_count" json:"booking_count"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}
