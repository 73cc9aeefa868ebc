package availability

import "fmt"

// GenerateSlots produces the ascending list of "HH:MM" start times that fit
// in [start, end) at the given step: a slot is emitted while its end
// (start + duration) still lies on or before the interval end. An interval
// whose end does not lie after its start yields no slots and no error; that
// is a misconfigured schedule, not a failure.
func GenerateSlots(start, end string, duration int) ([]string, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration %d: %w", duration, ErrInvalidDuration)
	}
	s, err := ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("interval start: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("interval end: %w", err)
	}

	var slots []string
	for cur := s.Minutes(); cur+duration <= e.Minutes(); cur += duration {
		slots = append(slots, clockFromMinutes(cur).String())
	}
	return slots, nil
}
