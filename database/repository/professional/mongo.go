package professionalRepo

import (
	"context"
	"fmt"
	"time"

	"pawcare/database"
	"pawcare/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo creates a new instance of ProfessionalRepository using MongoDB.
func NewMongoProfessionalRepo() ProfessionalRepository {
	return &MongoProfessionalRepo{coll: database.Collection("professionals")}
}

func (r *MongoProfessionalRepo) GetByID(id string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var prof models.Professional
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&prof); err != nil {
		return nil, fmt.Errorf("failed to fetch professional with id %s: %w", id, err)
	}
	// Apply the per-kind fallback here so availability math always sees a
	// positive duration.
	if prof.Details.ConsultationDuration <= 0 {
		prof.Details.ConsultationDuration = models.DefaultDuration(prof.Kind)
	}
	return &prof, nil
}

func (r *MongoProfessionalRepo) Create(p *models.Professional) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create professional: %w", err)
	}
	return nil
}

func (r *MongoProfessionalRepo) UpdateOpeningHours(id string, hours models.OpeningHours, consultationDuration int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{
		"details.openingHours":         hours,
		"details.consultationDuration": consultationDuration,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update opening hours for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
