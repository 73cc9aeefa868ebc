package blackoutRepo

import (
	"context"
	"fmt"
	"time"

	"pawcare/database"
	"pawcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBlackoutRepo implements BlackoutRepository using MongoDB.
type MongoBlackoutRepo struct {
	coll *mongo.Collection
}

// NewMongoBlackoutRepo creates a new instance of BlackoutRepository using MongoDB.
func NewMongoBlackoutRepo() BlackoutRepository {
	return &MongoBlackoutRepo{coll: database.Collection("blackouts")}
}

func (r *MongoBlackoutRepo) Add(period *models.BlackoutPeriod) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"professionalId": period.ProfessionalID, "date": period.Date}
	update := bson.M{"$set": period}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to add blackout for %s on %s: %w", period.ProfessionalID, period.Date, err)
	}
	return nil
}

func (r *MongoBlackoutRepo) Remove(professionalID, date string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"professionalId": professionalID, "date": date})
	if err != nil {
		return fmt.Errorf("failed to remove blackout for %s on %s: %w", professionalID, date, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoBlackoutRepo) GetForMonth(professionalID string, year int, month int) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	filter := bson.M{
		"professionalId": professionalID,
		"date": bson.M{
			"$gte": first.Format("2006-01-02"),
			"$lt":  next.Format("2006-01-02"),
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blackouts for %s: %w", professionalID, err)
	}
	defer cursor.Close(ctx)

	var periods []models.BlackoutPeriod
	if err := cursor.All(ctx, &periods); err != nil {
		return nil, fmt.Errorf("error decoding blackouts: %w", err)
	}

	dates := make(map[string]bool, len(periods))
	for _, p := range periods {
		dates[p.Date] = true
	}
	return dates, nil
}
