package notification

import (
	"context"
	"fmt"
	"time"

	"pawcare/models"
	"pawcare/services/availability"
	"pawcare/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMNotificationService delivers messages over Firebase Cloud Messaging.
// Owners are addressed by per-owner topic so no device token store is needed;
// clients subscribe to their topic on login.
type FCMNotificationService struct {
	Client *messaging.Client
}

func ownerTopic(ownerID string) string {
	return "owner-" + ownerID
}

func (s *FCMNotificationService) send(ownerID, title, body string, data map[string]string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := &messaging.Message{
		Topic: ownerTopic(ownerID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	id, err := s.Client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("fcm send failed: %w", err)
	}
	utils.GetLogger().Debug("fcm message sent", zap.String("messageID", id), zap.String("topic", msg.Topic))
	return nil
}

func displaySlot(slot string) string {
	if formatted, err := availability.FormatDisplay(slot); err == nil {
		return formatted
	}
	return slot
}

func (s *FCMNotificationService) SendBookingConfirmation(appt models.Appointment) error {
	body := fmt.Sprintf("Appointment for %s confirmed on %s at %s.", appt.PetName, appt.Date, displaySlot(appt.Slot))
	return s.send(appt.OwnerID, "Booking confirmed", body, map[string]string{
		"appointmentId": appt.ID,
		"type":          "confirmation",
	})
}

func (s *FCMNotificationService) SendReminder(appt models.Appointment) error {
	body := fmt.Sprintf("Upcoming appointment for %s on %s at %s.", appt.PetName, appt.Date, displaySlot(appt.Slot))
	return s.send(appt.OwnerID, "Appointment reminder", body, map[string]string{
		"appointmentId": appt.ID,
		"type":          "reminder",
	})
}

func (s *FCMNotificationService) SendCancellation(appt models.Appointment) error {
	body := fmt.Sprintf("Appointment for %s on %s at %s was cancelled.", appt.PetName, appt.Date, displaySlot(appt.Slot))
	return s.send(appt.OwnerID, "Appointment cancelled", body, map[string]string{
		"appointmentId": appt.ID,
		"type":          "cancellation",
	})
}
