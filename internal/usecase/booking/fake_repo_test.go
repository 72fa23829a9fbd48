package booking_test

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/httperr"
	"github.com/glowbook/artist-scheduler/internal/models"
)

// fakeRepo is an in-memory domain.Repository. CreateAppointmentIfFree
// and UpdateAppointmentStatus hold the mutex across their whole
// check-then-write, mirroring the transactional guarantee the gorm
// implementation gets from row locks.
type fakeRepo struct {
	mu sync.Mutex

	artists      map[uint]*models.Profile
	services     map[uint]*models.Service
	workingHours []models.WorkingHours
	appointments []*models.Appointment

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		artists:  map[uint]*models.Profile{},
		services: map[uint]*models.Service{},
		nextID:   1,
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) addArtist(id uint, tz string) *models.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &models.Profile{ID: id, Name: "Artist", Role: models.RoleArtist, Timezone: tz}
	f.artists[id] = p
	return p
}

func (f *fakeRepo) addService(id, artistID uint, durationMin int, price float64, active bool) *models.Service {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.Service{ID: id, ArtistID: artistID, Name: "Service", DurationMin: durationMin, Price: price, Active: active}
	f.services[id] = s
	return s
}

func (f *fakeRepo) addWorkingHours(artistID uint, weekday int, start, end string, active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workingHours = append(f.workingHours, models.WorkingHours{
		ArtistID:  artistID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		Active:    active,
	})
}

func (f *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap.ID = f.nextID
	f.nextID++
	stored := ap
	f.appointments = append(f.appointments, &stored)
	return &stored
}

func (f *fakeRepo) GetArtist(_ context.Context, id uint) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.artists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeRepo) GetActiveService(_ context.Context, artistID, serviceID uint) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[serviceID]
	if !ok || s.ArtistID != artistID || !s.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetWorkingHours(_ context.Context, artistID uint, weekday int) (*models.WorkingHours, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.workingHours {
		wh := &f.workingHours[i]
		if wh.ArtistID == artistID && wh.Weekday == weekday {
			return wh, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListNonTerminalAppointments(_ context.Context, artistID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range f.appointments {
		if ap.ArtistID != artistID {
			continue
		}
		if domain.Status(ap.Status).IsTerminal() {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].StartTime.Before(out[j-1].StartTime); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointmentIfFree(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ex := range f.appointments {
		if ex.ArtistID != ap.ArtistID {
			continue
		}
		if domain.Status(ex.Status).IsTerminal() {
			continue
		}
		if ap.StartTime.Before(ex.EndTime) && ex.StartTime.Before(ap.EndTime) {
			return httperr.ErrConflict("time_conflict")
		}
	}

	ap.ID = f.nextID
	f.nextID++
	stored := *ap
	f.appointments = append(f.appointments, &stored)
	return nil
}

func (f *fakeRepo) GetAppointmentForArtist(_ context.Context, appointmentID, artistID uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.ArtistID == artistID {
			cp := *ap
			if artist, ok := f.artists[ap.ArtistID]; ok {
				cp.Artist = *artist
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetAppointmentForClient(_ context.Context, appointmentID, clientID uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.ClientID == clientID {
			cp := *ap
			if artist, ok := f.artists[ap.ArtistID]; ok {
				cp.Artist = *artist
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointmentStatus(_ context.Context, appointmentID uint, from, to domain.Status, now time.Time) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ap := range f.appointments {
		if ap.ID != appointmentID {
			continue
		}
		if domain.Status(ap.Status) != from {
			return nil, httperr.ErrConflict("status_changed_concurrently")
		}
		ap.Status = string(to)
		switch to {
		case domain.StatusConfirmed:
			ap.ConfirmedAt = &now
		case domain.StatusCompleted:
			ap.CompletedAt = &now
		case domain.StatusCancelled:
			ap.CancelledAt = &now
		}
		cp := *ap
		return &cp, nil
	}
	return nil, httperr.ErrNotFound("appointment_not_found")
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, artistID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range f.appointments {
		if ap.ArtistID == artistID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForClient(_ context.Context, clientID uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range f.appointments {
		if ap.ClientID == clientID {
			out = append(out, *ap)
		}
	}
	return out, nil
}
