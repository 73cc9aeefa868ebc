package notification

import "pawcare/models"

// NotificationService delivers booking lifecycle messages to pet owners.
type NotificationService interface {
	SendBookingConfirmation(appt models.Appointment) error
	SendReminder(appt models.Appointment) error
	SendCancellation(appt models.Appointment) error
}
