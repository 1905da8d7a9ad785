package models

// PageRequest describes pagination and sorting for list queries.
type PageRequest struct {
	Page      int    // zero-based
	Size      int
	SortBy    string // bson field name; defaults to created_at
	SortOrder string // "asc" or "desc"; defaults to desc
}

// Normalize applies defaults and clamps the page size.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
	if p.SortBy == "" {
		p.SortBy = "created_at"
	}
	if p.SortOrder != "asc" {
		p.SortOrder = "desc"
	}
	return p
}

// Page is one page of results plus the total match count.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
}

// ReminderPayload is the asynq task payload for booking reminders.
type ReminderPayload struct {
	BookingID  string `json:"booking_id"`
	CustomerID string `json:"customer_id"`
	ProviderID string `json:"provider_id"`
	RoomTopic  string `json:"room_topic,omitempty"`
	FireDate   string `json:"fire_date"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}
