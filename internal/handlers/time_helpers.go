package handlers

import (
	"time"

	"github.com/glowbook/artist-scheduler/internal/models"
	"github.com/glowbook/artist-scheduler/internal/timezone"
)

// Dates in query strings are interpreted in the artist's timezone, so
// "today" means the artist's today.
func locationFromArtist(artist *models.Profile) *time.Location {
	if artist != nil {
		return timezone.Location(artist.Timezone)
	}
	return timezone.Location("")
}

func parseDateForArtist(artist *models.Profile, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromArtist(artist),
	)
}
