package booking

import (
	"context"
	"time"

	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo           domain.Repository
	cache          AvailabilityCache
	granularityMin int
}

func NewGetAvailability(
	repo domain.Repository,
	cache AvailabilityCache,
	granularityMin int,
) *GetAvailability {
	if granularityMin <= 0 {
		granularityMin = domain.DefaultGranularityMin
	}
	return &GetAvailability{
		repo:           repo,
		cache:          cache,
		granularityMin: granularityMin,
	}
}

// Execute computes the bookable start times for one artist, date and
// service. No free slots is a valid empty result, never an error; a
// missing or deactivated service is NotFound.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	dateKey := in.Date.Format("2006-01-02")

	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, in.ArtistID, in.ServiceID, dateKey); ok {
			return slots, nil
		}
	}

	service, err := uc.repo.GetActiveService(ctx, in.ArtistID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrNotFound("service_not_found")
	}

	window, open, err := workingWindow(ctx, uc.repo, in.ArtistID, int(in.Date.Weekday()))
	if err != nil {
		return nil, err
	}
	if !open {
		return []domain.TimeSlot{}, nil
	}

	loc := in.Date.Location()
	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	appointments, err := uc.repo.ListNonTerminalAppointments(
		ctx,
		in.ArtistID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	// Repo returns rows ordered by start_time, so one index walks the
	// busy list while the slot grid advances.
	busy := make([]domain.Interval, 0, len(appointments))
	for _, ap := range appointments {
		busy = append(busy, intervalOf(ap.StartTime, ap.EndTime, loc))
	}

	slots := []domain.TimeSlot{}
	apIdx := 0

	for start := range domain.Slots(window, service.DurationMin, uc.granularityMin) {
		end, _ := domain.AddMinutes(start, service.DurationMin)
		candidate := domain.Interval{Start: start, End: end}

		for apIdx < len(busy) && busy[apIdx].End <= candidate.Start {
			apIdx++
		}

		conflict := false
		for i := apIdx; i < len(busy) && busy[i].Start < candidate.End; i++ {
			if domain.Overlaps(candidate, busy[i]) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: start.String(),
				End:   end.String(),
			})
		}
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, in.ArtistID, in.ServiceID, dateKey, slots)
	}

	return slots, nil
}

func intervalOf(start, end time.Time, loc *time.Location) domain.Interval {
	s := start.In(loc)
	e := end.In(loc)
	return domain.Interval{
		Start: domain.Minutes(s.Hour()*60 + s.Minute()),
		End:   domain.Minutes(e.Hour()*60 + e.Minute()),
	}
}
