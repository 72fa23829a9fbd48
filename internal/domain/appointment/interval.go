package appointment

import (
	"fmt"
	"time"
)

// Minutes is a clock time expressed as minutes since midnight.
// Slot arithmetic runs on this form; timestamps are only composed at
// the persistence boundary.
type Minutes int

const MinutesPerDay = 24 * 60

func ParseClock(hm string) (Minutes, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", hm, err)
	}
	return Minutes(t.Hour()*60 + t.Minute()), nil
}

func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// At anchors a clock time to a calendar date in the given location.
func (m Minutes) At(date time.Time, loc *time.Location) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		int(m)/60, int(m)%60, 0, 0,
		loc,
	)
}

// AddMinutes advances a clock time. The second return is true when the
// result would land past midnight; appointments never span two dates,
// so callers reject those.
func AddMinutes(t Minutes, d int) (Minutes, bool) {
	sum := int(t) + d
	if sum > MinutesPerDay {
		return Minutes(sum % MinutesPerDay), true
	}
	return Minutes(sum), false
}

// Interval is a half-open time range [Start, End) within a single day.
type Interval struct {
	Start Minutes
	End   Minutes
}

// Overlaps reports whether two intervals share any time. Touching
// intervals (a.End == b.Start) do not overlap, which is what allows
// back-to-back bookings.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether inner fits entirely inside outer.
func (outer Interval) Contains(inner Interval) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End
}
