package booking

import (
	"time"

	appointmentRepo "pawcare/database/repository/appointment"
	blackoutRepo "pawcare/database/repository/blackout"
	professionalRepo "pawcare/database/repository/professional"
	"pawcare/models"
	"pawcare/services/notification"

	"github.com/go-redis/redis/v8"
)

// BookingSessionService manages the stateful booking flow: open a session,
// pick a selectable day, pick a free slot, confirm. Every transition is
// re-validated against live availability, so the session can never confirm a
// day or slot the calendar would not have offered.
type BookingSessionService interface {
	StartSession(ownerID string, input models.BookingRequestInput) (*models.BookingSession, error)
	SelectDate(sessionID, ownerID, date string) (*models.BookingSession, []string, error)
	SelectSlot(sessionID, ownerID, slot string) (*models.BookingSession, error)
	Confirm(sessionID, ownerID string) (*models.Appointment, error)
	CancelSession(sessionID, ownerID string) error

	MonthView(professionalID string, year, month int, selectedDate string) ([]models.CalendarDayCell, error)
	DaySlots(professionalID, date string) ([]string, error)
	CancelAppointment(appointmentID, ownerID string) (*models.Appointment, error)
	RescheduleAppointment(appointmentID, ownerID, date, slot string) (*models.Appointment, error)
}

// ReminderScheduler enqueues an appointment reminder for later delivery.
// Implemented by the asynq-backed worker package.
type ReminderScheduler interface {
	Schedule(appt models.Appointment) error
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	ProfessionalRepo professionalRepo.ProfessionalRepository
	AppointmentRepo  appointmentRepo.AppointmentRepository
	BlackoutRepo     blackoutRepo.BlackoutRepository
	SessionCache     *redis.Client
	Reservations     *ReservationCache
	Notification     notification.NotificationService
	Reminders        ReminderScheduler
	SessionTTL       time.Duration

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
