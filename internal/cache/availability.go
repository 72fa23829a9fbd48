package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/logger"
)

// Availability caches resolved slot lists in redis. Entries are short
// lived and wiped whenever a booking for the day is written, so a
// cached read is at worst as stale as any other display read.
type Availability struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultTTL = time.Minute

func NewAvailability(client *redis.Client) *Availability {
	return &Availability{
		client: client,
		ttl:    defaultTTL,
	}
}

func key(artistID, serviceID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s:%d", artistID, date, serviceID)
}

// One key per (artist, date, service); invalidation drops every service
// variant for the day in one pass.
func dayPattern(artistID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s:*", artistID, date)
}

func (a *Availability) Get(
	ctx context.Context,
	artistID, serviceID uint,
	date string,
) ([]domain.TimeSlot, bool) {

	raw, err := a.client.Get(ctx, key(artistID, serviceID, date)).Result()
	if err != nil {
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (a *Availability) Set(
	ctx context.Context,
	artistID, serviceID uint,
	date string,
	slots []domain.TimeSlot,
) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := a.client.Set(ctx, key(artistID, serviceID, date), raw, a.ttl).Err(); err != nil {
		logger.Get().Debug("availability cache set failed", zap.Error(err))
	}
}

func (a *Availability) Invalidate(
	ctx context.Context,
	artistID uint,
	date string,
) {
	iter := a.client.Scan(ctx, 0, dayPattern(artistID, date), 0).Iterator()
	for iter.Next(ctx) {
		if err := a.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Get().Debug("availability cache invalidate failed", zap.Error(err))
		}
	}
}
