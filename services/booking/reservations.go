package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appointmentRepo "pawcare/database/repository/appointment"

	"github.com/go-redis/redis/v8"
)

// ReservationCache serves the month-scoped reserved-slot map from Redis,
// falling back to the appointment store. Confirm/cancel flows patch the
// cached map in place (by date, then slot) instead of refetching the month;
// the patch is idempotent so a refetch racing with it cannot corrupt viewers.
type ReservationCache struct {
	Client *redis.Client
	Repo   appointmentRepo.AppointmentRepository
	TTL    time.Duration
}

func monthKey(professionalID string, year, month int) string {
	return fmt.Sprintf("reserved:%s:%04d-%02d", professionalID, year, month)
}

// MonthMap returns date -> reserved slots for one professional-month.
func (c *ReservationCache) MonthMap(ctx context.Context, professionalID string, year, month int) (map[string][]string, error) {
	key := monthKey(professionalID, year, month)

	cached, err := c.Client.Get(ctx, key).Result()
	if err == nil {
		var byDate map[string][]string
		if err := json.Unmarshal([]byte(cached), &byDate); err == nil {
			return byDate, nil
		}
		// Corrupt entry: drop it and refetch.
		c.Client.Del(ctx, key)
	} else if err != redis.Nil {
		return nil, fmt.Errorf("reservation cache read: %w", err)
	}

	byDate, err := c.Repo.GetReservedSlotsByMonth(professionalID, year, month)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(byDate); err == nil {
		c.Client.Set(ctx, key, data, c.TTL)
	}
	return byDate, nil
}

// PatchReserve adds a slot to the cached month map after a successful
// booking. A missing cache entry is left missing; the next MonthMap call
// reads the authoritative store anyway.
func (c *ReservationCache) PatchReserve(ctx context.Context, professionalID, date, slot string) error {
	return c.patch(ctx, professionalID, date, func(slots []string) []string {
		for _, s := range slots {
			if s == slot {
				return slots
			}
		}
		return append(slots, slot)
	})
}

// PatchRelease removes a slot from the cached month map after a cancellation.
func (c *ReservationCache) PatchRelease(ctx context.Context, professionalID, date, slot string) error {
	return c.patch(ctx, professionalID, date, func(slots []string) []string {
		out := slots[:0]
		for _, s := range slots {
			if s != slot {
				out = append(out, s)
			}
		}
		return out
	})
}

func (c *ReservationCache) patch(ctx context.Context, professionalID, date string, apply func([]string) []string) error {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date key %q: %w", date, err)
	}
	key := monthKey(professionalID, day.Year(), int(day.Month()))

	cached, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reservation cache read: %w", err)
	}

	var byDate map[string][]string
	if err := json.Unmarshal([]byte(cached), &byDate); err != nil {
		c.Client.Del(ctx, key)
		return nil
	}
	byDate[date] = apply(byDate[date])

	data, err := json.Marshal(byDate)
	if err != nil {
		return fmt.Errorf("reservation cache marshal: %w", err)
	}
	return c.Client.Set(ctx, key, data, redis.KeepTTL).Err()
}
