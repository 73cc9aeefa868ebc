package availability

import (
	"errors"
	"time"

	"pawcare/models"
)

var weekdayKeys = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

func weekdayKey(date time.Time) string {
	return weekdayKeys[date.UTC().Weekday()]
}

// IsDayOpen reports whether the weekday is configured as anything other than
// closed. Open is a styling-level flag only: an open day can still yield zero
// potential slots when its start/end fields are missing or malformed.
func IsDayOpen(date time.Time, hours models.OpeningHours) bool {
	day, ok := hours[weekdayKey(date)]
	return ok && day.Session != "" && day.Session != models.SessionClosed
}

// PotentialSlotsForDay returns every slot the date's schedule could offer,
// ignoring reservations. Closed or absent weekdays yield nil. A malformed or
// incomplete interval contributes no slots; the condition is returned
// alongside whatever the other interval produced so callers can log it.
func PotentialSlotsForDay(date time.Time, hours models.OpeningHours, duration int) ([]string, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	day, ok := hours[weekdayKey(date)]
	if !ok || day.Session == "" || day.Session == models.SessionClosed {
		return nil, nil
	}

	var slots []string
	var errs []error

	if day.Start == "" || day.End == "" {
		errs = append(errs, ErrIncompleteSchedule)
	} else if first, err := GenerateSlots(day.Start, day.End, duration); err != nil {
		errs = append(errs, err)
	} else {
		slots = append(slots, first...)
	}

	// Second interval only applies to double sessions, and only when both
	// halves are present. The two intervals are assumed non-overlapping with
	// the first preceding the second, so no global re-sort.
	if day.Session == models.SessionDouble && day.Start2 != "" && day.End2 != "" {
		second, err := GenerateSlots(day.Start2, day.End2, duration)
		if err != nil {
			errs = append(errs, err)
		} else {
			slots = append(slots, second...)
		}
	}

	return slots, errors.Join(errs...)
}
