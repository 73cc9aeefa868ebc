package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	appointmentRepo "pawcare/database/repository/appointment"
	"pawcare/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// stubProfessionalRepo serves one fixed professional.
type stubProfessionalRepo struct {
	prof models.Professional
}

func (r *stubProfessionalRepo) GetByID(id string) (*models.Professional, error) {
	if id != r.prof.ID {
		return nil, errors.New("not found")
	}
	p := r.prof
	return &p, nil
}

func (r *stubProfessionalRepo) Create(*models.Professional) error { return nil }

func (r *stubProfessionalRepo) UpdateOpeningHours(string, models.OpeningHours, int) error {
	return nil
}

// stubAppointmentRepo keeps confirmed appointments in memory and rejects
// duplicate professional+date+slot tuples like the unique index would.
type stubAppointmentRepo struct {
	appts  []models.Appointment
	nextID int
}

func (r *stubAppointmentRepo) Create(appt *models.Appointment) error {
	for _, existing := range r.appts {
		if existing.Status == models.AppointmentConfirmed &&
			existing.ProfessionalID == appt.ProfessionalID &&
			existing.Date == appt.Date && existing.Slot == appt.Slot {
			return appointmentRepo.ErrSlotTaken
		}
	}
	r.nextID++
	appt.ID = fmt.Sprintf("appt-%d", r.nextID)
	appt.Status = models.AppointmentConfirmed
	r.appts = append(r.appts, *appt)
	return nil
}

func (r *stubAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	for i := range r.appts {
		if r.appts[i].ID == id {
			a := r.appts[i]
			return &a, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubAppointmentRepo) Cancel(id, ownerID string) (*models.Appointment, error) {
	for i := range r.appts {
		if r.appts[i].ID == id && r.appts[i].OwnerID == ownerID {
			r.appts[i].Status = models.AppointmentCancelled
			a := r.appts[i]
			return &a, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubAppointmentRepo) Reschedule(id, ownerID, date, slot string) (*models.Appointment, error) {
	for i := range r.appts {
		if r.appts[i].ID == id && r.appts[i].OwnerID == ownerID {
			r.appts[i].Date = date
			r.appts[i].Slot = slot
			a := r.appts[i]
			return &a, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubAppointmentRepo) ListByOwner(ownerID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) GetReservedSlotsByMonth(professionalID string, year, month int) (map[string][]string, error) {
	byDate := map[string][]string{}
	for _, a := range r.appts {
		if a.ProfessionalID != professionalID || a.Status != models.AppointmentConfirmed {
			continue
		}
		day, err := time.ParseInLocation("2006-01-02", a.Date, time.UTC)
		if err != nil || day.Year() != year || int(day.Month()) != month {
			continue
		}
		byDate[a.Date] = append(byDate[a.Date], a.Slot)
	}
	return byDate, nil
}

func (r *stubAppointmentRepo) GetReservedSlotsForDate(professionalID, date string) ([]string, error) {
	var out []string
	for _, a := range r.appts {
		if a.ProfessionalID == professionalID && a.Date == date && a.Status == models.AppointmentConfirmed {
			out = append(out, a.Slot)
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) EnsureIndexes() error { return nil }

type stubBlackoutRepo struct {
	days map[string]bool
}

func (r *stubBlackoutRepo) Add(*models.BlackoutPeriod) error { return nil }
func (r *stubBlackoutRepo) Remove(string, string) error      { return nil }

func (r *stubBlackoutRepo) GetForMonth(string, int, int) (map[string]bool, error) {
	if r.days == nil {
		return map[string]bool{}, nil
	}
	return r.days, nil
}

// Fixtures. 2024-06-03 is a Monday with a one-hour morning session, so the
// professional offers exactly two 30-minute slots.
func newTestService(t *testing.T) (*DefaultBookingSessionService, *stubAppointmentRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	apptRepo := &stubAppointmentRepo{}
	svc := &DefaultBookingSessionService{
		ProfessionalRepo: &stubProfessionalRepo{prof: models.Professional{
			ID:   "vet-1",
			Kind: models.KindVet,
			Details: models.ProfessionalDetails{
				ConsultationDuration: 30,
				OpeningHours: models.OpeningHours{
					"monday": {Session: models.SessionSingle, Start: "09:00", End: "10:00"},
				},
			},
		}},
		AppointmentRepo: apptRepo,
		BlackoutRepo:    &stubBlackoutRepo{},
		SessionCache:    client,
		Reservations:    &ReservationCache{Client: client, Repo: apptRepo, TTL: time.Minute},
		SessionTTL:      15 * time.Minute,
		Now: func() time.Time {
			return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		},
	}
	return svc, apptRepo
}

func startSession(t *testing.T, svc *DefaultBookingSessionService) *models.BookingSession {
	t.Helper()
	session, err := svc.StartSession("owner-1", models.BookingRequestInput{
		ProfessionalID: "vet-1",
		PetName:        "Rex",
		PetType:        "dog",
	})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	return session
}

func sessionCode(t *testing.T, err error) string {
	t.Helper()
	var se *SessionError
	if !errors.As(err, &se) {
		t.Fatalf("expected SessionError, got %v", err)
	}
	return se.Code
}

func TestStartSessionInitialState(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)

	if session.State != models.SessionStateNoDate {
		t.Errorf("new session state = %q, want %q", session.State, models.SessionStateNoDate)
	}
	if session.Duration != 30 {
		t.Errorf("session duration = %d, want 30", session.Duration)
	}
	if session.SessionID == "" {
		t.Error("expected a session ID")
	}
}

func TestSelectDateReturnsFreeSlots(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)

	updated, slots, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03")
	if err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if updated.State != models.SessionStateDate {
		t.Errorf("state = %q, want %q", updated.State, models.SessionStateDate)
	}
	want := []string{"09:00", "09:30"}
	if len(slots) != len(want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("slots = %v, want %v", slots, want)
		}
	}
}

func TestSelectDateRejectsClosedAndPastDays(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)

	// 2024-06-04 is a Tuesday, absent from the weekly schedule.
	if _, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-04"); err == nil {
		t.Error("expected closed day to be rejected")
	} else if code := sessionCode(t, err); code != CodeDayNotSelectable {
		t.Errorf("closed day code = %q, want %q", code, CodeDayNotSelectable)
	}

	// 2024-05-27 is an open Monday, but before "today" (2024-06-01).
	if _, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-05-27"); err == nil {
		t.Error("expected past day to be rejected")
	}
}

func TestSelectDateClearsPreviousSlot(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)

	if _, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if _, err := svc.SelectSlot(session.SessionID, "owner-1", "09:00"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}

	// Going back to date selection drops the chosen time.
	updated, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-10")
	if err != nil {
		t.Fatalf("re-SelectDate: %v", err)
	}
	if updated.SelectedSlot != "" {
		t.Errorf("SelectedSlot = %q after new date selection, want empty", updated.SelectedSlot)
	}
	if updated.State != models.SessionStateDate {
		t.Errorf("state = %q, want %q", updated.State, models.SessionStateDate)
	}
}

func TestSelectSlotRequiresDateFirst(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)

	_, err := svc.SelectSlot(session.SessionID, "owner-1", "09:00")
	if err == nil {
		t.Fatal("expected slot selection without a date to fail")
	}
	if code := sessionCode(t, err); code != CodeInvalidState {
		t.Errorf("code = %q, want %q", code, CodeInvalidState)
	}
}

func TestSelectSlotRejectsUnofferedSlot(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)

	if _, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	_, err := svc.SelectSlot(session.SessionID, "owner-1", "11:00")
	if err == nil {
		t.Fatal("expected off-schedule slot to be rejected")
	}
	if code := sessionCode(t, err); code != CodeSlotUnavailable {
		t.Errorf("code = %q, want %q", code, CodeSlotUnavailable)
	}
}

func TestConfirmRequiresTimeSelected(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)

	if _, err := svc.Confirm(session.SessionID, "owner-1"); err == nil {
		t.Fatal("expected confirm without a slot to fail")
	}

	if _, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	_, err := svc.Confirm(session.SessionID, "owner-1")
	if err == nil {
		t.Fatal("expected confirm without a slot to fail")
	}
	if code := sessionCode(t, err); code != CodeInvalidState {
		t.Errorf("code = %q, want %q", code, CodeInvalidState)
	}
}

func TestConfirmPersistsAndEndsSession(t *testing.T) {
	svc, apptRepo := newTestService(t)
	session := startSession(t, svc)

	if _, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if _, err := svc.SelectSlot(session.SessionID, "owner-1", "09:30"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}

	appt, err := svc.Confirm(session.SessionID, "owner-1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if appt.Date != "2024-06-03" || appt.Slot != "09:30" {
		t.Errorf("appointment = %s %s, want 2024-06-03 09:30", appt.Date, appt.Slot)
	}
	if appt.PetName != "Rex" {
		t.Errorf("pet name = %q, want Rex", appt.PetName)
	}
	if len(apptRepo.appts) != 1 {
		t.Fatalf("stored %d appointments, want 1", len(apptRepo.appts))
	}

	// The session is gone; a second confirm must fail.
	if _, err := svc.Confirm(session.SessionID, "owner-1"); err == nil {
		t.Error("expected second confirm to fail after session deletion")
	} else if code := sessionCode(t, err); code != CodeSessionNotFound {
		t.Errorf("code = %q, want %q", code, CodeSessionNotFound)
	}
}

func TestConfirmConflictKeepsSession(t *testing.T) {
	svc, apptRepo := newTestService(t)

	session := startSession(t, svc)
	if _, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if _, err := svc.SelectSlot(session.SessionID, "owner-1", "09:30"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}

	// The slot is stolen between selection and confirm.
	apptRepo.appts = append(apptRepo.appts, models.Appointment{
		ID: "rival", ProfessionalID: "vet-1", OwnerID: "owner-2",
		Date: "2024-06-03", Slot: "09:30", Status: models.AppointmentConfirmed,
	})

	_, err := svc.Confirm(session.SessionID, "owner-1")
	if err == nil {
		t.Fatal("expected slot conflict")
	}
	if code := sessionCode(t, err); code != CodeSlotConflict {
		t.Errorf("code = %q, want %q", code, CodeSlotConflict)
	}

	// The session survives at TimeSelected; the caller can pick another slot.
	if _, err := svc.SelectSlot(session.SessionID, "owner-1", "09:00"); err != nil {
		t.Errorf("expected session to survive conflict, got %v", err)
	}
}

func TestReservedSlotsHiddenFromSelection(t *testing.T) {
	svc, apptRepo := newTestService(t)
	apptRepo.appts = append(apptRepo.appts, models.Appointment{
		ID: "existing", ProfessionalID: "vet-1", OwnerID: "owner-2",
		Date: "2024-06-03", Slot: "09:00", Status: models.AppointmentConfirmed,
	})

	session := startSession(t, svc)
	_, slots, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03")
	if err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if len(slots) != 1 || slots[0] != "09:30" {
		t.Errorf("slots = %v, want [09:30]", slots)
	}

	if _, err := svc.SelectSlot(session.SessionID, "owner-1", "09:00"); err == nil {
		t.Error("expected reserved slot to be rejected")
	}
}

func TestFullyBookedDayNotSelectable(t *testing.T) {
	svc, apptRepo := newTestService(t)
	for _, slot := range []string{"09:00", "09:30"} {
		apptRepo.appts = append(apptRepo.appts, models.Appointment{
			ID: "appt-" + slot, ProfessionalID: "vet-1", OwnerID: "owner-2",
			Date: "2024-06-03", Slot: slot, Status: models.AppointmentConfirmed,
		})
	}

	session := startSession(t, svc)
	_, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03")
	if err == nil {
		t.Fatal("expected fully booked day to be rejected")
	}
	if code := sessionCode(t, err); code != CodeDayNotSelectable {
		t.Errorf("code = %q, want %q", code, CodeDayNotSelectable)
	}
}

func TestCancelSessionLeavesNoTrace(t *testing.T) {
	svc, apptRepo := newTestService(t)
	session := startSession(t, svc)
	if _, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}

	if err := svc.CancelSession(session.SessionID, "owner-1"); err != nil {
		t.Fatalf("CancelSession: %v", err)
	}
	if len(apptRepo.appts) != 0 {
		t.Errorf("cancelled session left %d appointments", len(apptRepo.appts))
	}
	if _, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03"); err == nil {
		t.Error("expected cancelled session to be gone")
	}
}

func TestSessionBoundToOwner(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)

	_, _, err := svc.SelectDate(session.SessionID, "someone-else", "2024-06-03")
	if err == nil {
		t.Fatal("expected another owner's access to be rejected")
	}
	if code := sessionCode(t, err); code != CodeSessionNotFound {
		t.Errorf("code = %q, want %q", code, CodeSessionNotFound)
	}
}

func TestMonthViewFoldsSelectedDateReservations(t *testing.T) {
	svc, apptRepo := newTestService(t)

	// The month map is cached before the second booking lands, so only the
	// per-day fetch for the selected date can see it.
	ctx := context.Background()
	if _, err := svc.Reservations.MonthMap(ctx, "vet-1", 2024, 6); err != nil {
		t.Fatalf("MonthMap: %v", err)
	}
	for _, slot := range []string{"09:00", "09:30"} {
		apptRepo.appts = append(apptRepo.appts, models.Appointment{
			ID: "appt-" + slot, ProfessionalID: "vet-1", OwnerID: "owner-2",
			Date: "2024-06-03", Slot: slot, Status: models.AppointmentConfirmed,
		})
	}

	cells, err := svc.MonthView("vet-1", 2024, 6, "2024-06-03")
	if err != nil {
		t.Fatalf("MonthView: %v", err)
	}
	var day models.CalendarDayCell
	for _, c := range cells {
		if c.Date == "2024-06-03" {
			day = c
		}
	}
	if !day.IsFullyBooked {
		t.Error("expected selected date to reflect the fresher per-day reservations")
	}
	if day.Selectable {
		t.Error("fully booked selected date must not be selectable")
	}

	// A different Monday is unaffected by the selected-date overlay.
	for _, c := range cells {
		if c.Date == "2024-06-10" && (c.IsFullyBooked || !c.Selectable) {
			t.Errorf("2024-06-10 = %+v, want open and selectable", c)
		}
	}
}

func TestPatchReserveAndReleaseRoundTrip(t *testing.T) {
	svc, apptRepo := newTestService(t)
	ctx := context.Background()

	apptRepo.appts = append(apptRepo.appts, models.Appointment{
		ID: "seed", ProfessionalID: "vet-1", OwnerID: "owner-2",
		Date: "2024-06-03", Slot: "09:00", Status: models.AppointmentConfirmed,
	})
	if _, err := svc.Reservations.MonthMap(ctx, "vet-1", 2024, 6); err != nil {
		t.Fatalf("MonthMap: %v", err)
	}

	if err := svc.Reservations.PatchReserve(ctx, "vet-1", "2024-06-03", "09:30"); err != nil {
		t.Fatalf("PatchReserve: %v", err)
	}
	// Patching the same slot twice must not duplicate it.
	if err := svc.Reservations.PatchReserve(ctx, "vet-1", "2024-06-03", "09:30"); err != nil {
		t.Fatalf("PatchReserve again: %v", err)
	}
	byDate, err := svc.Reservations.MonthMap(ctx, "vet-1", 2024, 6)
	if err != nil {
		t.Fatalf("MonthMap after patch: %v", err)
	}
	if got := byDate["2024-06-03"]; len(got) != 2 {
		t.Errorf("reserved slots = %v, want exactly [09:00 09:30]", got)
	}

	if err := svc.Reservations.PatchRelease(ctx, "vet-1", "2024-06-03", "09:30"); err != nil {
		t.Fatalf("PatchRelease: %v", err)
	}
	byDate, err = svc.Reservations.MonthMap(ctx, "vet-1", 2024, 6)
	if err != nil {
		t.Fatalf("MonthMap after release: %v", err)
	}
	if got := byDate["2024-06-03"]; len(got) != 1 || got[0] != "09:00" {
		t.Errorf("reserved slots = %v, want [09:00]", got)
	}

	// Patching with no cached month entry is a no-op, not an error.
	if err := svc.Reservations.PatchReserve(ctx, "vet-1", "2024-07-01", "09:00"); err != nil {
		t.Errorf("PatchReserve on uncached month: %v", err)
	}
}

func TestCancelAppointmentReleasesSlot(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)
	if _, _, err := svc.SelectDate(session.SessionID, "owner-1", "2024-06-03"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if _, err := svc.SelectSlot(session.SessionID, "owner-1", "09:00"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	appt, err := svc.Confirm(session.SessionID, "owner-1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	cancelled, err := svc.CancelAppointment(appt.ID, "owner-1")
	if err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}
	if cancelled.Status != models.AppointmentCancelled {
		t.Errorf("status = %q, want %q", cancelled.Status, models.AppointmentCancelled)
	}

	// The slot is offerable again.
	slots, err := svc.DaySlots("vet-1", "2024-06-03")
	if err != nil {
		t.Fatalf("DaySlots: %v", err)
	}
	found := false
	for _, s := range slots {
		if s == "09:00" {
			found = true
		}
	}
	if !found {
		t.Errorf("slots after cancel = %v, want 09:00 back", slots)
	}
}

func TestRescheduleValidatesTarget(t *testing.T) {
	svc, apptRepo := newTestService(t)
	apptRepo.appts = append(apptRepo.appts, models.Appointment{
		ID: "appt-1", ProfessionalID: "vet-1", OwnerID: "owner-1",
		Date: "2024-06-03", Slot: "09:00", Status: models.AppointmentConfirmed,
	})

	// Tuesday is closed.
	if _, err := svc.RescheduleAppointment("appt-1", "owner-1", "2024-06-04", "09:00"); err == nil {
		t.Error("expected reschedule onto a closed day to fail")
	}

	appt, err := svc.RescheduleAppointment("appt-1", "owner-1", "2024-06-10", "09:30")
	if err != nil {
		t.Fatalf("RescheduleAppointment: %v", err)
	}
	if appt.Date != "2024-06-10" || appt.Slot != "09:30" {
		t.Errorf("rescheduled to %s %s, want 2024-06-10 09:30", appt.Date, appt.Slot)
	}

	// Another owner cannot move it.
	if _, err := svc.RescheduleAppointment("appt-1", "owner-2", "2024-06-17", "09:00"); err == nil {
		t.Error("expected reschedule by another owner to fail")
	}
}
