package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"fixitnow/models"
	"fixitnow/services/chat"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "booking:reminder"

// reminderLead is how far ahead of the booking date the reminder fires.
const reminderLead = time.Hour

// NewBookingReminderTask builds the asynq task for a booking reminder.
func NewBookingReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler schedules booking reminders on the asynq queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

// ScheduleBookingReminder enqueues a reminder ahead of the booking date.
// Bookings too close to (or past) their date get no reminder.
func (s *AsynqReminderScheduler) ScheduleBookingReminder(b *models.Booking) error {
	fireAt := b.BookingDate.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		ProviderID: b.ProviderID,
		RoomTopic:  chat.RoomTopic(chat.RoomKeyFor(b.ID, b.CustomerID, b.ProviderID)),
		FireDate:   fireAt.Format(time.RFC3339),
		Title:      "Upcoming booking",
		Body:       fmt.Sprintf("Your booking on %s (%s) is coming up.", b.BookingDate.Format("2006-01-02"), b.TimeSlot),
	}

	task, opts, err := NewBookingReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue booking reminder: %w", err)
	}
	return nil
}
