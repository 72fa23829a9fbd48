package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowbook/artist-scheduler/internal/audit"
	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/httperr"
	"github.com/glowbook/artist-scheduler/internal/models"
	"github.com/glowbook/artist-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientID  uint
	ArtistID  uint
	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache AvailabilityCache
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache AvailabilityCache,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute validates the request and commits the appointment. Slot lists
// shown to the client may be stale by the time they submit, so the
// interval is re-checked against the current persisted state inside the
// same transactional boundary as the insert. At most one of two racing
// overlapping requests wins.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	artist, err := uc.repo.GetArtist(ctx, in.ArtistID)
	if err != nil {
		return nil, httperr.ErrNotFound("artist_not_found")
	}

	loc := timezone.Location(artist.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrInvalidRequest("invalid_date")
	}

	startClock, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, httperr.ErrInvalidRequest("invalid_time")
	}

	service, err := uc.repo.GetActiveService(ctx, in.ArtistID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrNotFound("service_not_found")
	}

	endClock, crossedMidnight := domain.AddMinutes(startClock, service.DurationMin)
	if crossedMidnight {
		return nil, httperr.ErrInvalidRequest("crosses_midnight")
	}

	window, open, err := workingWindow(ctx, uc.repo, in.ArtistID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	requested := domain.Interval{Start: startClock, End: endClock}
	if !open || !window.Contains(requested) {
		return nil, httperr.ErrInvalidRequest("outside_working_hours")
	}

	start := startClock.At(date, loc)
	if start.Before(timezone.NowIn(artist.Timezone)) {
		return nil, httperr.ErrInvalidRequest("start_in_the_past")
	}

	ap := &models.Appointment{
		PublicID:      uuid.New(),
		ClientID:      in.ClientID,
		ArtistID:      in.ArtistID,
		ServiceID:     service.ID,
		StartTime:     start,
		EndTime:       endClock.At(date, loc),
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentPending),
		TotalAmount:   service.Price,
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateAppointmentIfFree(ctx, ap); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, in.ArtistID, in.Date)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
