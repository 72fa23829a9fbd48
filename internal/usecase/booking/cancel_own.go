package booking

import (
	"context"

	"github.com/glowbook/artist-scheduler/internal/audit"
	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/httperr"
	"github.com/glowbook/artist-scheduler/internal/models"
	"github.com/glowbook/artist-scheduler/internal/timezone"
)

type CancelOwnBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache AvailabilityCache
}

func NewCancelOwnBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache AvailabilityCache,
) *CancelOwnBooking {
	return &CancelOwnBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute lets a client withdraw their own booking while it is still
// pending. Confirmed appointments are the artist's to cancel.
func (uc *CancelOwnBooking) Execute(
	ctx context.Context,
	clientID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForClient(ctx, appointmentID, clientID)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	current := domain.Status(ap.Status)
	if current == domain.StatusCancelled {
		return ap, nil
	}
	if current != domain.StatusPending {
		return nil, httperr.ErrInvalidTransition("only_pending_can_be_withdrawn")
	}

	now := timezone.NowIn(ap.Artist.Timezone)
	updated, err := uc.repo.UpdateAppointmentStatus(
		ctx,
		ap.ID,
		domain.StatusPending,
		domain.StatusCancelled,
		now,
	)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, ap.ArtistID, ap.StartTime.Format("2006-01-02"))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &clientID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return updated, nil
}
