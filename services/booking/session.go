package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appointmentRepo "pawcare/database/repository/appointment"
	"pawcare/models"
	"pawcare/services/availability"
	"pawcare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func sessionKey(id string) string {
	return "booking:session:" + id
}

// StartSession opens a booking flow against one professional. The session
// starts with no date selected; availability is computed on demand as the
// caller walks the calendar.
func (s *DefaultBookingSessionService) StartSession(ownerID string, input models.BookingRequestInput) (*models.BookingSession, error) {
	prof, err := s.ProfessionalRepo.GetByID(input.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("professional not found: %w", err)
	}

	session := &models.BookingSession{
		SessionID:      uuid.New().String(),
		OwnerID:        ownerID,
		ProfessionalID: prof.ID,
		Kind:           prof.Kind,
		Duration:       prof.Details.ConsultationDuration,
		State:          models.SessionStateNoDate,
		PetName:        input.PetName,
		PetType:        input.PetType,
		Reason:         input.Reason,
	}
	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectDate moves the session to DateSelected if the day passes the
// composite selectability rule, and returns the fresh slot list for it.
// Entering DateSelected always clears any previously chosen slot.
func (s *DefaultBookingSessionService) SelectDate(sessionID, ownerID, date string) (*models.BookingSession, []string, error) {
	session, err := s.loadSession(sessionID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	day, err := availability.ParseDateKey(date)
	if err != nil {
		return nil, nil, NewSessionError(CodeDayNotSelectable, fmt.Sprintf("invalid date %q", date))
	}

	view, err := s.dayView(session.ProfessionalID, day)
	if err != nil {
		return nil, nil, err
	}
	if !view.selectable {
		return nil, nil, NewSessionError(CodeDayNotSelectable, fmt.Sprintf("%s is not bookable", date))
	}

	session.SelectedDate = date
	session.SelectedSlot = ""
	session.State = models.SessionStateDate
	if err := s.saveSession(session); err != nil {
		return nil, nil, err
	}
	return session, view.freeSlots, nil
}

// SelectSlot moves the session to TimeSelected. The slot must be present in
// the date's current availability; the reserved set is re-fetched so a slot
// taken since the calendar rendered is rejected here rather than at confirm.
func (s *DefaultBookingSessionService) SelectSlot(sessionID, ownerID, slot string) (*models.BookingSession, error) {
	session, err := s.loadSession(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	if session.State != models.SessionStateDate && session.State != models.SessionStateTime {
		return nil, NewSessionError(CodeInvalidState, "select a date before a time")
	}

	day, err := availability.ParseDateKey(session.SelectedDate)
	if err != nil {
		return nil, NewSessionError(CodeInvalidState, "session has no valid selected date")
	}
	view, err := s.dayView(session.ProfessionalID, day)
	if err != nil {
		return nil, err
	}
	found := false
	for _, free := range view.freeSlots {
		if free == slot {
			found = true
			break
		}
	}
	if !found {
		return nil, NewSessionError(CodeSlotUnavailable, fmt.Sprintf("slot %s is not available on %s", slot, session.SelectedDate))
	}

	session.SelectedSlot = slot
	session.State = models.SessionStateTime
	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm persists the appointment. On a conflict (someone else took the
// slot between selection and confirm) the session stays at TimeSelected and
// no local state is patched. Only after the store accepts the booking is the
// cached month map patched and the reminder scheduled.
func (s *DefaultBookingSessionService) Confirm(sessionID, ownerID string) (*models.Appointment, error) {
	logger := utils.GetLogger()
	session, err := s.loadSession(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	if session.State != models.SessionStateTime {
		return nil, NewSessionError(CodeInvalidState, "select a date and time before confirming")
	}

	appt := &models.Appointment{
		ProfessionalID: session.ProfessionalID,
		OwnerID:        session.OwnerID,
		PetName:        session.PetName,
		PetType:        session.PetType,
		Date:           session.SelectedDate,
		Slot:           session.SelectedSlot,
		Duration:       session.Duration,
		Reason:         session.Reason,
	}
	if err := s.AppointmentRepo.Create(appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, NewSessionError(CodeSlotConflict, fmt.Sprintf("slot %s on %s was just booked by someone else", appt.Slot, appt.Date))
		}
		return nil, err
	}

	ctx := context.Background()
	if err := s.Reservations.PatchReserve(ctx, appt.ProfessionalID, appt.Date, appt.Slot); err != nil {
		logger.Warn("failed to patch reservation cache after booking",
			zap.String("professionalID", appt.ProfessionalID),
			zap.String("date", appt.Date), zap.Error(err))
	}
	s.SessionCache.Del(ctx, sessionKey(sessionID))

	if s.Notification != nil {
		if err := s.Notification.SendBookingConfirmation(*appt); err != nil {
			logger.Warn("failed to send booking confirmation", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.Schedule(*appt); err != nil {
			logger.Warn("failed to schedule reminder", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	return appt, nil
}

// CancelSession drops the cached session. Nothing reserved is touched; back
// navigation never leaves partial writes.
func (s *DefaultBookingSessionService) CancelSession(sessionID, ownerID string) error {
	if _, err := s.loadSession(sessionID, ownerID); err != nil {
		return err
	}
	return s.SessionCache.Del(context.Background(), sessionKey(sessionID)).Err()
}

// CancelAppointment cancels a confirmed appointment and releases its slot in
// the cached month map.
func (s *DefaultBookingSessionService) CancelAppointment(appointmentID, ownerID string) (*models.Appointment, error) {
	logger := utils.GetLogger()
	appt, err := s.AppointmentRepo.Cancel(appointmentID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.Reservations.PatchRelease(context.Background(), appt.ProfessionalID, appt.Date, appt.Slot); err != nil {
		logger.Warn("failed to release reservation cache entry",
			zap.String("professionalID", appt.ProfessionalID),
			zap.String("date", appt.Date), zap.Error(err))
	}
	if s.Notification != nil {
		if err := s.Notification.SendCancellation(*appt); err != nil {
			logger.Warn("failed to send cancellation notice", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	return appt, nil
}

// RescheduleAppointment moves a confirmed appointment to a new date and slot.
// The target is validated against live availability the same way the booking
// flow validates it, so a reschedule can never land on a taken or closed slot.
func (s *DefaultBookingSessionService) RescheduleAppointment(appointmentID, ownerID, date, slot string) (*models.Appointment, error) {
	logger := utils.GetLogger()
	current, err := s.AppointmentRepo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != ownerID {
		return nil, NewSessionError(CodeSessionNotFound, "appointment not found")
	}

	day, err := availability.ParseDateKey(date)
	if err != nil {
		return nil, NewSessionError(CodeDayNotSelectable, fmt.Sprintf("invalid date %q", date))
	}
	view, err := s.dayView(current.ProfessionalID, day)
	if err != nil {
		return nil, err
	}
	if !view.selectable {
		return nil, NewSessionError(CodeDayNotSelectable, fmt.Sprintf("%s is not bookable", date))
	}
	found := false
	for _, free := range view.freeSlots {
		if free == slot {
			found = true
			break
		}
	}
	if !found {
		return nil, NewSessionError(CodeSlotUnavailable, fmt.Sprintf("slot %s is not available on %s", slot, date))
	}

	appt, err := s.AppointmentRepo.Reschedule(appointmentID, ownerID, date, slot)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, NewSessionError(CodeSlotConflict, fmt.Sprintf("slot %s on %s was just booked by someone else", slot, date))
		}
		return nil, err
	}

	ctx := context.Background()
	if err := s.Reservations.PatchRelease(ctx, appt.ProfessionalID, current.Date, current.Slot); err != nil {
		logger.Warn("failed to release old slot in reservation cache",
			zap.String("professionalID", appt.ProfessionalID),
			zap.String("date", current.Date), zap.Error(err))
	}
	if err := s.Reservations.PatchReserve(ctx, appt.ProfessionalID, appt.Date, appt.Slot); err != nil {
		logger.Warn("failed to patch reservation cache after reschedule",
			zap.String("professionalID", appt.ProfessionalID),
			zap.String("date", appt.Date), zap.Error(err))
	}
	if s.Notification != nil {
		if err := s.Notification.SendBookingConfirmation(*appt); err != nil {
			logger.Warn("failed to send reschedule confirmation", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.Schedule(*appt); err != nil {
			logger.Warn("failed to schedule reminder", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	return appt, nil
}

// MonthView builds the calendar grid for one professional-month. When a
// selected date is provided, its fresher per-day reservations are unioned in
// for that date only.
func (s *DefaultBookingSessionService) MonthView(professionalID string, year, month int, selectedDate string) ([]models.CalendarDayCell, error) {
	logger := utils.GetLogger()
	prof, err := s.ProfessionalRepo.GetByID(professionalID)
	if err != nil {
		return nil, fmt.Errorf("professional not found: %w", err)
	}

	ctx := context.Background()
	byDate, err := s.Reservations.MonthMap(ctx, professionalID, year, month)
	if err != nil {
		// Assuming zero reservations here could offer an already-booked slot.
		return nil, NewSessionError(CodeReservationData, err.Error())
	}
	res := availability.Reservations{ByDate: byDate}
	if selectedDate != "" {
		forSelected, err := s.AppointmentRepo.GetReservedSlotsForDate(professionalID, selectedDate)
		if err != nil {
			return nil, NewSessionError(CodeReservationData, err.Error())
		}
		res.SelectedDate = selectedDate
		res.ForSelected = forSelected
	}

	unavailable, err := s.BlackoutRepo.GetForMonth(professionalID, year, month)
	if err != nil {
		return nil, NewSessionError(CodeReservationData, err.Error())
	}

	cells, err := availability.BuildMonthGrid(
		year, time.Month(month),
		prof.Details.OpeningHours, prof.Details.ConsultationDuration,
		res, unavailable, s.now(),
	)
	if err != nil {
		logger.Warn("schedule errors while building month grid",
			zap.String("professionalID", professionalID),
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
	}
	return cells, nil
}

// DaySlots returns the bookable slots for one date, unioning the month map
// with a fresh per-day fetch.
func (s *DefaultBookingSessionService) DaySlots(professionalID, date string) ([]string, error) {
	day, err := availability.ParseDateKey(date)
	if err != nil {
		return nil, NewSessionError(CodeDayNotSelectable, fmt.Sprintf("invalid date %q", date))
	}
	view, err := s.dayView(professionalID, day)
	if err != nil {
		return nil, err
	}
	return view.freeSlots, nil
}

// dayView gathers everything needed to judge one date: free slots and the
// composite selectability verdict.
type dayView struct {
	freeSlots  []string
	selectable bool
}

func (s *DefaultBookingSessionService) dayView(professionalID string, day time.Time) (*dayView, error) {
	logger := utils.GetLogger()
	prof, err := s.ProfessionalRepo.GetByID(professionalID)
	if err != nil {
		return nil, fmt.Errorf("professional not found: %w", err)
	}

	ctx := context.Background()
	dateKey := availability.DateKey(day)
	byDate, err := s.Reservations.MonthMap(ctx, professionalID, day.Year(), int(day.Month()))
	if err != nil {
		return nil, NewSessionError(CodeReservationData, err.Error())
	}
	forSelected, err := s.AppointmentRepo.GetReservedSlotsForDate(professionalID, dateKey)
	if err != nil {
		return nil, NewSessionError(CodeReservationData, err.Error())
	}
	unavailable, err := s.BlackoutRepo.GetForMonth(professionalID, day.Year(), int(day.Month()))
	if err != nil {
		return nil, NewSessionError(CodeReservationData, err.Error())
	}

	res := availability.Reservations{
		ByDate:       byDate,
		SelectedDate: dateKey,
		ForSelected:  forSelected,
	}
	hours := prof.Details.OpeningHours
	duration := prof.Details.ConsultationDuration

	free, err := availability.AvailableSlots(day, hours, duration, res)
	if err != nil {
		logger.Warn("schedule errors while computing day availability",
			zap.String("professionalID", professionalID),
			zap.String("date", dateKey), zap.Error(err))
	}

	today, _ := availability.ParseDateKey(availability.DateKey(s.now()))
	selectable := !day.Before(today) &&
		availability.IsDayOpen(day, hours) &&
		!availability.IsDayFullyBooked(day, hours, duration, res) &&
		!unavailable[dateKey]

	return &dayView{freeSlots: free, selectable: selectable}, nil
}

func (s *DefaultBookingSessionService) saveSession(session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if err := s.SessionCache.Set(context.Background(), sessionKey(session.SessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache booking session: %w", err)
	}
	return nil
}

func (s *DefaultBookingSessionService) loadSession(sessionID, ownerID string) (*models.BookingSession, error) {
	data, err := s.SessionCache.Get(context.Background(), sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, NewSessionError(CodeSessionNotFound, "booking session not found or expired")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	if session.OwnerID != ownerID {
		return nil, NewSessionError(CodeSessionNotFound, "booking session not found or expired")
	}
	return &session, nil
}
