package models

import "time"

// Appointment statuses.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a confirmed booking of one slot with a professional.
type Appointment struct {
	ID             string    `bson:"id" json:"id"`
	ProfessionalID string    `bson:"professionalId" json:"professionalId"`
	OwnerID        string    `bson:"ownerId" json:"ownerId"`
	PetName        string    `bson:"petName" json:"petName"`
	PetType        string    `bson:"petType,omitempty" json:"petType,omitempty"`
	Date           string    `bson:"date" json:"date"` // "YYYY-MM-DD", UTC-normalized
	Slot           string    `bson:"slot" json:"slot"` // "HH:MM" start time
	Duration       int       `bson:"duration" json:"duration"`
	Reason         string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// BlackoutPeriod is a professional-declared full-day block (vacation etc.),
// independent of booking load.
type BlackoutPeriod struct {
	ProfessionalID string `bson:"professionalId" json:"professionalId"`
	Date           string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Reason         string `bson:"reason,omitempty" json:"reason,omitempty"`
}
