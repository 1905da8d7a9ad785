package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fixitnow/config"
	"fixitnow/models"
	"fixitnow/services/chat"
	"fixitnow/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async worker in background. It consumes booking
// reminder tasks and fans them out over the real-time transport as SYSTEM
// room events.
func InitReminderWorker(publisher chat.RealtimePublisher) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(publisher))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(publisher chat.RealtimePublisher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] reminder for booking %s: %s", p.BookingID, p.Body)

		if publisher == nil || p.RoomTopic == "" {
			return nil
		}

		event := map[string]string{
			"event":      "booking.reminder",
			"booking_id": p.BookingID,
			"title":      p.Title,
			"body":       p.Body,
			"fire_date":  p.FireDate,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if err := publisher.Publish(ctx, p.RoomTopic, payload); err != nil {
			log.Printf("[ReminderHandler] failed to publish reminder: %v", err)
			return err
		}
		return nil
	}
}
