package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/httperr"
	"github.com/glowbook/artist-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Artist / Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetArtist(
	ctx context.Context,
	id uint,
) (*models.Profile, error) {

	var artist models.Profile
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleArtist).
		First(&artist).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *AppointmentGormRepository) GetActiveService(
	ctx context.Context,
	artistID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND artist_id = ? AND active = true", serviceID, artistID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

// GetWorkingHours returns (nil, nil) when the artist has no row for the
// weekday; callers fall back to the default window.
func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	artistID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("artist_id = ? AND weekday = ?", artistID, weekday).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *AppointmentGormRepository) ListNonTerminalAppointments(
	ctx context.Context,
	artistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"artist_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			artistID, domain.NonTerminalStatuses(), start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// FOR UPDATE serializes racing check-then-insert sequences on
		// the rows the conflict test actually reads.
		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"artist_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.ArtistID, domain.NonTerminalStatuses(), ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrConflict("time_conflict")
		}

		return tx.Create(ap).Error
	})

	// The exclusion constraint is the backstop for inserts the lock
	// scan could not see (e.g. a row committed on another connection
	// between snapshot and lock).
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict("time_conflict")
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForArtist(
	ctx context.Context,
	appointmentID uint,
	artistID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Client").
		Preload("Service").
		Where("id = ? AND artist_id = ?", appointmentID, artistID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForClient(
	ctx context.Context,
	appointmentID uint,
	clientID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Service").
		Where("id = ? AND client_id = ?", appointmentID, clientID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	appointmentID uint,
	from domain.Status,
	to domain.Status,
	now time.Time,
) (*models.Appointment, error) {

	updates := map[string]any{
		"status":     string(to),
		"updated_at": now,
	}
	switch to {
	case domain.StatusConfirmed:
		updates["confirmed_at"] = now
	case domain.StatusCompleted:
		updates["completed_at"] = now
	case domain.StatusCancelled:
		updates["cancelled_at"] = now
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, string(from)).
		Updates(updates)

	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var exists int64
		r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ?", appointmentID).
			Count(&exists)
		if exists == 0 {
			return nil, httperr.ErrNotFound("appointment_not_found")
		}
		// A concurrent edit moved the row out of the expected status.
		return nil, httperr.ErrConflict("status_changed_concurrently")
	}

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Client").
		Preload("Service").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	artistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"artist_id = ? AND start_time >= ? AND start_time < ?",
			artistID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
