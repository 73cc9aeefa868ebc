package availability

import (
	"errors"
	"fmt"
	"time"

	"pawcare/models"
)

// BuildMonthGrid produces the 7-wide calendar for one (year, month):
// Sunday-first rows, padded with the leading and trailing days of the
// adjacent months. Every cell, in-month or not, carries fully computed
// flags since overflow days stay navigable in clients. Schedule errors on
// individual days degrade those cells to "nothing bookable" and are joined
// into the returned error for logging; the grid itself always comes back.
func BuildMonthGrid(
	year int,
	month time.Month,
	hours models.OpeningHours,
	duration int,
	res Reservations,
	unavailable map[string]bool,
	today time.Time,
) ([]models.CalendarDayCell, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, 6-int(last.Weekday()))

	todayKey := DateKey(today)
	todayUTC, _ := ParseDateKey(todayKey)

	var cells []models.CalendarDayCell
	var errs []error
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		key := DateKey(d)
		potential, err := PotentialSlotsForDay(d, hours, duration)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}

		cell := models.CalendarDayCell{
			Date:           key,
			IsCurrentMonth: d.Month() == month,
			IsOpen:         IsDayOpen(d, hours),
			IsFullyBooked:  len(potential) > 0 && allReserved(potential, res.ReservedFor(key)),
			IsUnavailable:  unavailable[key],
		}
		cell.Selectable = !d.Before(todayUTC) &&
			cell.IsOpen &&
			!cell.IsFullyBooked &&
			!cell.IsUnavailable
		cells = append(cells, cell)
	}
	return cells, errors.Join(errs...)
}

func allReserved(potential []string, reserved map[string]bool) bool {
	for _, slot := range potential {
		if !reserved[slot] {
			return false
		}
	}
	return true
}
