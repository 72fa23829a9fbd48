package appointment

import (
	"context"
	"time"

	"github.com/glowbook/artist-scheduler/internal/models"
)

type Repository interface {
	// -------- Artist / Service --------
	GetArtist(
		ctx context.Context,
		id uint,
	) (*models.Profile, error)

	GetActiveService(
		ctx context.Context,
		artistID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Schedule --------
	GetWorkingHours(
		ctx context.Context,
		artistID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// Pending and confirmed appointments with start_time in [start, end),
	// ordered by start_time. Terminal appointments never occupy calendar
	// space.
	ListNonTerminalAppointments(
		ctx context.Context,
		artistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointmentIfFree re-checks the requested interval against
	// the current persisted state and inserts in one atomic unit.
	// Returns a Conflict business error and writes nothing when the
	// interval is taken.
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForArtist(
		ctx context.Context,
		appointmentID uint,
		artistID uint,
	) (*models.Appointment, error)

	GetAppointmentForClient(
		ctx context.Context,
		appointmentID uint,
		clientID uint,
	) (*models.Appointment, error)

	// UpdateAppointmentStatus is a per-row conditional update: the write
	// only lands if the row still holds the expected source status.
	// Returns a Conflict business error when a concurrent edit won.
	UpdateAppointmentStatus(
		ctx context.Context,
		appointmentID uint,
		from Status,
		to Status,
		now time.Time,
	) (*models.Appointment, error)

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		artistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)
}
