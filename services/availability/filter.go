package availability

import (
	"time"

	"pawcare/models"
)

// Reservations carries the two reservation sources the engine must union:
// the month-scoped map and the fresher per-day list fetched for the
// currently-selected date. ForSelected only ever applies to SelectedDate;
// other days of the month see the map alone.
type Reservations struct {
	ByDate       map[string][]string
	SelectedDate string
	ForSelected  []string
}

// ReservedFor returns the deduplicated reserved-slot set for a date key.
func (r Reservations) ReservedFor(dateKey string) map[string]bool {
	reserved := make(map[string]bool)
	for _, slot := range r.ByDate[dateKey] {
		reserved[slot] = true
	}
	if dateKey == r.SelectedDate {
		for _, slot := range r.ForSelected {
			reserved[slot] = true
		}
	}
	return reserved
}

// AvailableSlots returns the date's potential slots minus every reserved
// slot, preserving order. Schedule errors degrade to fewer slots and are
// passed through for logging.
func AvailableSlots(date time.Time, hours models.OpeningHours, duration int, res Reservations) ([]string, error) {
	potential, err := PotentialSlotsForDay(date, hours, duration)
	if len(potential) == 0 {
		return nil, err
	}
	reserved := res.ReservedFor(DateKey(date))
	free := make([]string, 0, len(potential))
	for _, slot := range potential {
		if !reserved[slot] {
			free = append(free, slot)
		}
	}
	return free, err
}

// IsDayFullyBooked reports whether the date has potential slots and every
// one of them is reserved. A closed or misconfigured day is not "fully
// booked"; the two states render differently.
func IsDayFullyBooked(date time.Time, hours models.OpeningHours, duration int, res Reservations) bool {
	potential, _ := PotentialSlotsForDay(date, hours, duration)
	if len(potential) == 0 {
		return false
	}
	reserved := res.ReservedFor(DateKey(date))
	for _, slot := range potential {
		if !reserved[slot] {
			return false
		}
	}
	return true
}
