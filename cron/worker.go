package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"pawcare/config"
	"pawcare/models"
	"pawcare/services/availability"
	"pawcare/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// ReminderScheduler enqueues appointment reminders on the asynq queue,
// firing a configurable lead time before the appointment start.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts())}
}

func (s *ReminderScheduler) Schedule(appt models.Appointment) error {
	slot, err := availability.ParseClock(appt.Slot)
	if err != nil {
		return err
	}
	day, err := availability.ParseDateKey(appt.Date)
	if err != nil {
		return err
	}
	startsAt := day.Add(time.Duration(slot.Minutes()) * time.Minute)

	lead := time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour
	fireAt := startsAt.Add(-lead)
	if fireAt.Before(time.Now()) {
		// Booked inside the lead window; skip rather than fire immediately.
		return nil
	}

	payload, err := json.Marshal(appt)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeReminderSend, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(fireAt))
	return err
}

func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

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

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var appt models.Appointment
		if err := json.Unmarshal(task.Payload(), &appt); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] reminder for appointment %s (%s %s)", appt.ID, appt.Date, appt.Slot)

		if err := notifSvc.SendReminder(appt); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
