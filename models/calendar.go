package models

// CalendarDayCell is one cell of the 7-wide month grid. Derived on demand,
// never persisted. Leading/trailing cells of adjacent months carry fully
// computed flags too.
type CalendarDayCell struct {
	Date           string `json:"date"` // "YYYY-MM-DD"
	IsCurrentMonth bool   `json:"isCurrentMonth"`
	IsOpen         bool   `json:"isOpen"`
	IsFullyBooked  bool   `json:"isFullyBooked"`
	IsUnavailable  bool   `json:"isUnavailable"`

	// Selectable is the single source of truth for whether a calendar click
	// is allowed: not in the past, open, not fully booked, not unavailable.
	Selectable bool `json:"selectable"`
}
