package availability

import "errors"

// Engine errors. Malformed schedule data degrades to "no slots for that
// interval" while still being reported, so a bad professional profile renders
// a closed day instead of breaking the whole calendar.
var (
	ErrInvalidTimeFormat  = errors.New("invalid time, want \"HH:MM\"")
	ErrInvalidDuration    = errors.New("consultation duration must be a positive number of minutes")
	ErrIncompleteSchedule = errors.New("open day is missing its start or end time")
)
