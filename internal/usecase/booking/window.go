package booking

import (
	"context"

	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
)

// Artists without a schedule row for a weekday get the default window.
// A row explicitly marked inactive means the day is off.
const (
	defaultWindowStart = domain.Minutes(9 * 60)
	defaultWindowEnd   = domain.Minutes(18 * 60)
)

func workingWindow(
	ctx context.Context,
	repo domain.Repository,
	artistID uint,
	weekday int,
) (domain.Interval, bool, error) {

	wh, err := repo.GetWorkingHours(ctx, artistID, weekday)
	if err != nil {
		return domain.Interval{}, false, err
	}

	if wh == nil {
		return domain.Interval{Start: defaultWindowStart, End: defaultWindowEnd}, true, nil
	}

	if !wh.Active {
		return domain.Interval{}, false, nil
	}

	start, err := domain.ParseClock(wh.StartTime)
	if err != nil {
		return domain.Interval{}, false, nil
	}
	end, err := domain.ParseClock(wh.EndTime)
	if err != nil {
		return domain.Interval{}, false, nil
	}

	return domain.Interval{Start: start, End: end}, true, nil
}
