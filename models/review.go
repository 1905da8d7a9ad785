package models

import "time"

// MaxReviewCommentLength bounds the free-text comment on a review.
const MaxReviewCommentLength = 1000

// Review is a customer's 1–5 rating plus optional comment for a service
// listing. At most one review exists per (customer, listing) pair.
type Review struct {
	ID                string    `bson:"id" json:"id"`
	ServiceListingID  string    `bson:"service_listing_id" json:"service_listing_id"`
	ProviderProfileID string    `bson:"provider_profile_id" json:"provider_profile_id"`
	CustomerID        string    `bson:"customer_id" json:"customer_id"`
	Rating            int       `bson:"rating" json:"rating"`
	Comment           string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

// ReviewInput is the input for creating or updating a review.
type ReviewInput struct {
	ServiceListingID string `json:"service_listing_id"`
	Rating           int    `json:"rating" binding:"required,min=1,max=5"`
	Comment          string `json:"comment,omitempty"`
}
