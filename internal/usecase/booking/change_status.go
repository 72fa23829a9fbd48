package booking

import (
	"context"

	"github.com/glowbook/artist-scheduler/internal/audit"
	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/httperr"
	"github.com/glowbook/artist-scheduler/internal/models"
	"github.com/glowbook/artist-scheduler/internal/timezone"
)

type ChangeStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache AvailabilityCache
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache AvailabilityCache,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

var statusActions = map[domain.Status]string{
	domain.StatusConfirmed: "appointment_confirmed",
	domain.StatusCompleted: "appointment_completed",
	domain.StatusCancelled: "appointment_cancelled",
}

// Execute moves an artist's appointment along the lifecycle. Re-applying
// the status the row already holds is a no-op success so a double-submit
// from a slow UI never errors.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	artistID uint,
	appointmentID uint,
	target domain.Status,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForArtist(ctx, appointmentID, artistID)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	current := domain.Status(ap.Status)
	if current == target {
		return ap, nil
	}

	if err := domain.CanTransition(current, target); err != nil {
		return nil, err
	}

	now := timezone.NowIn(ap.Artist.Timezone)
	updated, err := uc.repo.UpdateAppointmentStatus(ctx, ap.ID, current, target, now)
	if err != nil {
		return nil, err
	}

	// A cancellation frees calendar space, so cached slot lists for
	// that day are no longer trustworthy.
	if target == domain.StatusCancelled && uc.cache != nil {
		uc.cache.Invalidate(ctx, artistID, ap.StartTime.Format("2006-01-02"))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &artistID,
		Action:   statusActions[target],
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return updated, nil
}
