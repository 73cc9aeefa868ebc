package blackoutRepo

import "pawcare/models"

// BlackoutRepository defines data access for professional-declared
// unavailable periods.
type BlackoutRepository interface {
	Add(period *models.BlackoutPeriod) error
	Remove(professionalID, date string) error
	// GetForMonth returns the set of blacked-out date keys for one calendar
	// month, in the same "YYYY-MM-DD" form the engine uses.
	GetForMonth(professionalID string, year int, month int) (map[string]bool, error)
}
