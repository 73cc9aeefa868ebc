package models

// Professional kinds.
const (
	KindVet     = "vet"
	KindTrainer = "trainer"
)

// Default consultation durations in minutes, applied at the repository
// boundary when a profile does not set one.
const (
	DefaultVetDuration     = 30
	DefaultTrainerDuration = 60
)

// Professional is a bookable vet or trainer on the marketplace.
type Professional struct {
	ID           string              `bson:"id" json:"id"`
	Kind         string              `bson:"kind" json:"kind"` // KindVet or KindTrainer
	Name         string              `bson:"name" json:"name"`
	Email        string              `bson:"email" json:"email,omitempty"`
	PhoneNumber  string              `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Address      string              `bson:"address" json:"address,omitempty"`
	ProfileImage string              `bson:"profileImage" json:"profileImage,omitempty"`
	Bio          string              `bson:"bio" json:"bio,omitempty"`
	Rating       float64             `bson:"rating" json:"rating,omitempty"`
	Specialties  []string            `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Details      ProfessionalDetails `bson:"details" json:"details"`
}

// ProfessionalDetails is the normalized scheduling configuration shared by
// both kinds, so availability math never branches on vet vs trainer.
type ProfessionalDetails struct {
	OpeningHours         OpeningHours `bson:"openingHours" json:"openingHours"`
	ConsultationDuration int          `bson:"consultationDuration" json:"consultationDuration"`
}

// DefaultDuration returns the fallback consultation duration for a kind.
func DefaultDuration(kind string) int {
	if kind == KindTrainer {
		return DefaultTrainerDuration
	}
	return DefaultVetDuration
}
