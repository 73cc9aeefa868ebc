package models

// Booking session states. Transitions only move forward through the
// availability checks; cancellation drops the session without side effects.
const (
	SessionStateNoDate    = "noDateSelected"
	SessionStateDate      = "dateSelected"
	SessionStateTime      = "timeSelected"
	SessionStateConfirmed = "confirmed"
)

// BookingSession holds context between opening a booking flow and confirming
// the appointment. Cached in Redis for the lifetime of the flow.
type BookingSession struct {
	SessionID      string `json:"sessionId"`
	OwnerID        string `json:"ownerId"`
	ProfessionalID string `json:"professionalId"`
	Kind           string `json:"kind"`
	Duration       int    `json:"duration"`
	State          string `json:"state"`
	SelectedDate   string `json:"selectedDate,omitempty"` // "YYYY-MM-DD"
	SelectedSlot   string `json:"selectedSlot,omitempty"` // "HH:MM"
	PetName        string `json:"petName,omitempty"`
	PetType        string `json:"petType,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// BookingRequestInput is the payload for opening a booking session.
type BookingRequestInput struct {
	ProfessionalID string `json:"professionalId" binding:"required"`
	PetName        string `json:"petName" binding:"required"`
	PetType        string `json:"petType"`
	Reason         string `json:"reason"`
}

// BookingResponse is the common envelope returned by the session endpoints.
type BookingResponse struct {
	SessionID    string       `json:"sessionId,omitempty"`
	State        string       `json:"state,omitempty"`
	SelectedDate string       `json:"selectedDate,omitempty"`
	SelectedSlot string       `json:"selectedSlot,omitempty"`
	Slots        []string     `json:"slots,omitempty"`
	Appointment  *Appointment `json:"appointment,omitempty"`
}
