package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/httperr"
	"github.com/glowbook/artist-scheduler/internal/models"
	"github.com/glowbook/artist-scheduler/internal/usecase/booking"
)

func newCreateBooking(repo *fakeRepo, cache booking.AvailabilityCache) *booking.CreateBooking {
	return booking.NewCreateBooking(repo, newTestDispatcher(), cache)
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := newFakeRepo()
	repo.addArtist(1, testTZ)
	repo.addService(10, 1, 60, 120, true)

	cache := newSpyCache()
	uc := newCreateBooking(repo, cache)

	ap, err := uc.Execute(context.Background(), booking.CreateBookingInput{
		ClientID:  2,
		ArtistID:  1,
		ServiceID: 10,
		Date:      "2030-06-03",
		Time:      "09:00",
		Notes:     "first visit",
	})
	require.NoError(t, err)

	loc := testLocation(t)
	assert.Equal(t, time.Date(2030, 6, 3, 9, 0, 0, 0, loc), ap.StartTime.In(loc))
	assert.Equal(t, time.Date(2030, 6, 3, 10, 0, 0, 0, loc), ap.EndTime.In(loc))
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, string(domain.PaymentPending), ap.PaymentStatus)
	assert.Equal(t, 120.0, ap.TotalAmount)
	assert.Equal(t, "first visit", ap.Notes)
	assert.NotEqual(t, uuid.Nil, ap.PublicID)
	assert.NotZero(t, ap.ID)

	assert.Equal(t, []string{"2030-06-03"}, cache.invalidated)
}

func TestCreateBookingArtistNotFound(t *testing.T) {
	uc := newCreateBooking(newFakeRepo(), nil)

	_, err := uc.Execute(context.Background(), booking.CreateBookingInput{
		ArtistID: 99, ServiceID: 10, Date: "2030-06-03", Time: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "artist_not_found"))
}

func TestCreateBookingInvalidInput(t *testing.T) {
	repo := newFakeRepo()
	repo.addArtist(1, testTZ)
	repo.addService(10, 1, 60, 120, true)
	uc := newCreateBooking(repo, nil)

	_, err := uc.Execute(context.Background(), booking.CreateBookingInput{
		ArtistID: 1, ServiceID: 10, Date: "03/06/2030", Time: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = uc.Execute(context.Background(), booking.CreateBookingInput{
		ArtistID: 1, ServiceID: 10, Date: "2030-06-03", Time: "9am",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))
}

func TestCreateBookingInactiveService(t *testing.T) {
	repo := newFakeRepo()
	repo.addArtist(1, testTZ)
	repo.addService(10, 1, 60, 120, false)
	uc := newCreateBooking(repo, nil)

	_, err := uc.Execute(context.Background(), booking.CreateBookingInput{
		ArtistID: 1, ServiceID: 10, Date: "2030-06-03", Time: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestCreateBookingCrossesMidnight(t *testing.T) {
	repo := newFakeRepo()
	repo.addArtist(1, testTZ)
	repo.addService(10, 1, 90, 200, true)
	uc := newCreateBooking(repo, nil)

	_, err := uc.Execute(context.Background(), booking.CreateBookingInput{
		ArtistID: 1, ServiceID: 10, Date: "2030-06-03", Time: "23:30",
	})
	assert.True(t, httperr.IsBusiness(err, "crosses_midnight"))
}

func TestCreateBookingOutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	repo.addArtist(1, testTZ)
	repo.addService(10, 1, 90, 200, true)
	uc := newCreateBooking(repo, nil)

	// 17:30 + 90min ends at 19:00, past the 18:00 default window end.
	_, err := uc.Execute(context.Background(), booking.CreateBookingInput{
		ArtistID: 1, ServiceID: 10, Date: "2030-06-03", Time: "17:30",
	})
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	_, err = uc.Execute(context.Background(), booking.CreateBookingInput{
		ArtistID: 1, ServiceID: 10, Date: "2030-06-03", Time: "08:00",
	})
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateBookingDayOff(t *testing.T) {
	repo := newFakeRepo()
	repo.addArtist(1, testTZ)
	repo.addService(10, 1, 60, 120, true)
	repo.addWorkingHours(1, 1, "09:00", "18:00", false)
	uc := newCreateBooking(repo, nil)

	_, err := uc.Execute(context.Background(), booking.CreateBookingInput{
		ArtistID: 1, ServiceID: 10, Date: "2030-06-03", Time: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateBookingInThePast(t *testing.T) {
	repo := newFakeRepo()
	repo.addArtist(1, testTZ)
	repo.addService(10, 1, 60, 120, true)
	uc := newCreateBooking(repo, nil)

	_, err := uc.Execute(context.Background(), booking.CreateBookingInput{
		ArtistID: 1, ServiceID: 10, Date: "2020-01-06", Time: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "start_in_the_past"))
}

func TestCreateBookingConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.addArtist(1, testTZ)
	repo.addService(10, 1, 60, 120, true)
	uc := newCreateBooking(repo, nil)

	_, err := uc.Execute(context.Background(), booking.CreateBookingInput{
		ClientID: 2, ArtistID: 1, ServiceID: 10, Date: "2030-06-03", Time: "10:00",
	})
	require.NoError(t, err)

	// Overlapping attempt loses.
	_, err = uc.Execute(context.Background(), booking.CreateBookingInput{
		ClientID: 3, ArtistID: 1, ServiceID: 10, Date: "2030-06-03", Time: "10:30",
	})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	// Back-to-back is not a conflict.
	_, err = uc.Execute(context.Background(), booking.CreateBookingInput{
		ClientID: 3, ArtistID: 1, ServiceID: 10, Date: "2030-06-03", Time: "11:00",
	})
	assert.NoError(t, err)
}

func TestCreateBookingConcurrentSameSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.addArtist(1, testTZ)
	repo.addService(10, 1, 60, 120, true)
	uc := newCreateBooking(repo, nil)

	in := func(clientID uint) booking.CreateBookingInput {
		return booking.CreateBookingInput{
			ClientID: clientID, ArtistID: 1, ServiceID: 10,
			Date: "2030-06-03", Time: "10:00",
		}
	}

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), in(uint(100+i)))
			results[i] = err
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.True(t, httperr.IsKind(err, httperr.KindConflict))
		}
	}
	assert.Equal(t, 1, wins)

	stored, err := repo.ListNonTerminalAppointments(
		context.Background(),
		1,
		time.Date(2030, 6, 3, 0, 0, 0, 0, testLocation(t)),
		time.Date(2030, 6, 4, 0, 0, 0, 0, testLocation(t)),
	)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreateBookingLeavesNothingOnConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.addArtist(1, testTZ)
	repo.addService(10, 1, 60, 120, true)

	loc := testLocation(t)
	repo.addAppointment(models.Appointment{
		ArtistID:  1,
		StartTime: time.Date(2030, 6, 3, 10, 0, 0, 0, loc),
		EndTime:   time.Date(2030, 6, 3, 11, 0, 0, 0, loc),
		Status:    string(domain.StatusConfirmed),
	})

	uc := newCreateBooking(repo, nil)
	_, err := uc.Execute(context.Background(), booking.CreateBookingInput{
		ClientID: 2, ArtistID: 1, ServiceID: 10, Date: "2030-06-03", Time: "10:00",
	})
	require.Error(t, err)

	all, err := repo.ListNonTerminalAppointments(
		context.Background(),
		1,
		time.Date(2030, 6, 3, 0, 0, 0, 0, loc),
		time.Date(2030, 6, 4, 0, 0, 0, 0, loc),
	)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
