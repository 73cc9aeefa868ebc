package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a wall-clock time of day. Interval math never crosses midnight; an
// interval whose end does not lie after its start yields no slots.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an "HH:MM" 24-hour string.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// Minutes returns the clock as minutes from midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String formats the clock back to zero-padded "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func clockFromMinutes(m int) Clock {
	return Clock{Hour: m / 60, Minute: m % 60}
}

// FormatDisplay converts an "HH:MM" slot to its 12-hour "h:mm AM/PM" form,
// e.g. "14:30" -> "2:30 PM".
func FormatDisplay(s string) (string, error) {
	c, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	period := "AM"
	hour := c.Hour
	if hour >= 12 {
		period = "PM"
	}
	if hour == 0 {
		hour = 12
	} else if hour > 12 {
		hour -= 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, period), nil
}

// DateKey normalizes a moment to its UTC calendar-day key, "YYYY-MM-DD".
// Every date comparison and reservation lookup in the engine goes through
// this to avoid DST and local-offset skew.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDateKey parses a "YYYY-MM-DD" key back to UTC midnight of that day.
func ParseDateKey(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
