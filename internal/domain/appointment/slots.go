package appointment

import "iter"

const DefaultGranularityMin = 30

// Slots yields the candidate start times t0, t0+g, t0+2g, ... inside the
// working window such that start+duration still fits before window.End.
// The sequence is lazy and restartable: ranging over it twice produces
// the same starts. A window shorter than the duration yields nothing.
func Slots(window Interval, durationMin, granularityMin int) iter.Seq[Minutes] {
	if granularityMin <= 0 {
		granularityMin = DefaultGranularityMin
	}

	return func(yield func(Minutes) bool) {
		if durationMin <= 0 {
			return
		}
		for cur := window.Start; int(cur)+durationMin <= int(window.End); cur += Minutes(granularityMin) {
			if !yield(cur) {
				return
			}
		}
	}
}
