package appointmentRepo

import (
	"errors"

	"pawcare/models"
)

// ErrSlotTaken is returned when the professional+date+slot tuple is already
// booked (the unique index rejected the insert).
var ErrSlotTaken = errors.New("slot already booked")

// AppointmentRepository defines data access for appointments and the
// reserved-slot views the availability engine consumes.
type AppointmentRepository interface {
	Create(appt *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	Cancel(id, ownerID string) (*models.Appointment, error)
	Reschedule(id, ownerID, date, slot string) (*models.Appointment, error)
	ListByOwner(ownerID string) ([]models.Appointment, error)

	// GetReservedSlotsByMonth returns date -> reserved "HH:MM" slots for one
	// calendar month of confirmed appointments.
	GetReservedSlotsByMonth(professionalID string, year int, month int) (map[string][]string, error)
	// GetReservedSlotsForDate returns the reserved slots for exactly one date.
	GetReservedSlotsForDate(professionalID, date string) ([]string, error)

	EnsureIndexes() error
}
