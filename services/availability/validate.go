package availability

import (
	"fmt"

	"pawcare/models"
)

var validSessions = map[string]bool{
	models.SessionClosed: true,
	models.SessionSingle: true,
	models.SessionDouble: true,
}

// ValidateOpeningHours checks a schedule update before it is persisted.
// Closed days are accepted as-is (stray time fields are ignored at read
// time); open days must carry a parseable primary interval with the end
// after the start, and a double session's second interval, when both halves
// are present, must be internally valid too.
func ValidateOpeningHours(hours models.OpeningHours) error {
	for weekday, day := range hours {
		if !validSessions[day.Session] {
			return fmt.Errorf("%s: unknown session type %q", weekday, day.Session)
		}
		if day.Session == models.SessionClosed {
			continue
		}
		if err := validateInterval(day.Start, day.End); err != nil {
			return fmt.Errorf("%s: %w", weekday, err)
		}
		if day.Session == models.SessionDouble && day.Start2 != "" && day.End2 != "" {
			if err := validateInterval(day.Start2, day.End2); err != nil {
				return fmt.Errorf("%s second interval: %w", weekday, err)
			}
		}
	}
	return nil
}

func validateInterval(start, end string) error {
	s, err := ParseClock(start)
	if err != nil {
		return err
	}
	e, err := ParseClock(end)
	if err != nil {
		return err
	}
	if e.Minutes() <= s.Minutes() {
		return fmt.Errorf("interval %s-%s: end must be after start", start, end)
	}
	return nil
}
