package professionalRepo

import "pawcare/models"

// ProfessionalRepository defines data access for vets and trainers.
type ProfessionalRepository interface {
	GetByID(id string) (*models.Professional, error)
	Create(p *models.Professional) error
	UpdateOpeningHours(id string, hours models.OpeningHours, consultationDuration int) error
}
