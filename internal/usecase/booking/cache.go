package booking

import (
	"context"

	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
)

// AvailabilityCache holds resolved slot lists for display reads.
// Cached results may be stale; correctness comes from the re-check at
// booking commit time, so a short TTL plus write-side invalidation is
// enough.
type AvailabilityCache interface {
	Get(ctx context.Context, artistID, serviceID uint, date string) ([]domain.TimeSlot, bool)
	Set(ctx context.Context, artistID, serviceID uint, date string, slots []domain.TimeSlot)
	Invalidate(ctx context.Context, artistID uint, date string)
}
