package models

import "time"

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Booking represents one requested/confirmed service engagement between a
// customer and a provider. Status only moves forward through the lifecycle
// state machine; terminal bookings are immutable.
type Booking struct {
	ID                 string        `bson:"id" json:"id"`
	ServiceListingID   string        `bson:"service_listing_id" json:"service_listing_id"`
	CustomerID         string        `bson:"customer_id" json:"customer_id"`
	ProviderID         string        `bson:"provider_id" json:"provider_id"`
	BookingDate        time.Time     `bson:"booking_date" json:"booking_date"`
	TimeSlot           string        `bson:"time_slot" json:"time_slot"` // opaque window token, e.g. "09:00-12:00"
	DurationHours      *int          `bson:"duration_hours,omitempty" json:"duration_hours,omitempty"`
	Status             BookingStatus `bson:"status" json:"status"`
	TotalPrice         float64       `bson:"total_price" json:"total_price"`
	ServiceLocation    string        `bson:"service_location,omitempty" json:"service_location,omitempty"`
	CustomerNotes      string        `bson:"customer_notes,omitempty" json:"customer_notes,omitempty"`
	ProviderNotes      string        `bson:"provider_notes,omitempty" json:"provider_notes,omitempty"`
	CancellationReason string        `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CancelledBy        string        `bson:"cancelled_by,omitempty" json:"cancelled_by,omitempty"`
	CreatedAt          time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time     `bson:"updated_at" json:"updated_at"`
}

// IsParty reports whether userID is the booking's customer or provider.
func (b *Booking) IsParty(userID string) bool {
	return b.CustomerID == userID || b.ProviderID == userID
}

// BookingRequest is the input for creating a booking.
type BookingRequest struct {
	ServiceListingID string    `json:"service_listing_id" binding:"required"`
	BookingDate      time.Time `json:"booking_date" binding:"required"`
	TimeSlot         string    `json:"time_slot" binding:"required"`
	DurationHours    *int      `json:"duration_hours,omitempty"`
	TotalPrice       float64   `json:"total_price" binding:"gte=0"`
	ServiceLocation  string    `json:"service_location,omitempty"`
	CustomerNotes    string    `json:"customer_notes,omitempty"`
}

// BookingStatusUpdate is the input for a status transition.
type BookingStatusUpdate struct {
	Status             BookingStatus `json:"status" binding:"required"`
	ProviderNotes      string        `json:"provider_notes,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
}

// BookingResponse is the API view of a booking, with party and listing
// details resolved from the owning collaborators.
type BookingResponse struct {
	Booking
	ServiceTitle        string `json:"service_title,omitempty"`
	ServiceCategoryName string `json:"service_category_name,omitempty"`
	CustomerName        string `json:"customer_name,omitempty"`
	CustomerEmail       string `json:"customer_email,omitempty"`
	ProviderName        string `json:"provider_name,omitempty"`
	ProviderEmail       string `json:"provider_email,omitempty"`
}
