package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"pawcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetReservedSlotsByMonth groups the month's confirmed appointments into the
// date -> reserved slots map the availability engine consumes.
func (r *MongoAppointmentRepo) GetReservedSlotsByMonth(professionalID string, year int, month int) (map[string][]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"professionalId": professionalID,
			"status":         models.AppointmentConfirmed,
			"date": bson.M{
				"$gte": first.Format("2006-01-02"),
				"$lt":  next.Format("2006-01-02"),
			},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$date",
			"slots": bson.M{"$addToSet": "$slot"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating reserved slots for %s %d-%02d: %w", professionalID, year, month, err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Date  string   `bson:"_id"`
		Slots []string `bson:"slots"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding reserved slots: %w", err)
	}

	byDate := make(map[string][]string, len(results))
	for _, res := range results {
		byDate[res.Date] = res.Slots
	}
	return byDate, nil
}

// GetReservedSlotsForDate is the finer-grained, fresher fetch for one date.
func (r *MongoAppointmentRepo) GetReservedSlotsForDate(professionalID, date string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professionalId": professionalID,
		"date":           date,
		"status":         models.AppointmentConfirmed,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reserved slots for %s on %s: %w", professionalID, date, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}

	slots := make([]string, 0, len(appts))
	for _, a := range appts {
		slots = append(slots, a.Slot)
	}
	return slots, nil
}
