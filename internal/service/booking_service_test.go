package service

import (
	"testing"
	"time"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingServiceForTest(f *shopFixture) *BookingService {
	return NewBookingService(repository.NewBookingRepository(f.db), repository.NewServiceRepository(f.db))
}

func TestBookingCreateAndListMine(t *testing.T) {
	f := newShopFixture(t)
	svc := newBookingServiceForTest(f)
	user := f.createUser(t, "owner@example.test")
	groom := f.createService(t, "Full Groom", "40.00")

	later := time.Date(2030, 5, 2, 10, 0, 0, 0, time.UTC)
	sooner := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	first, err := svc.Create(CreateBookingInput{UserID: user.ID, ServiceID: groom.ID, AppointmentDate: &later, Notes: "  nervous dog "})
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusPending, first.Status)
	assert.Equal(t, "nervous dog", first.Notes)
	require.NotNil(t, first.Service)
	assert.Equal(t, "Full Groom", first.Service.Name)

	_, err = svc.Create(CreateBookingInput{UserID: user.ID, ServiceID: groom.ID, AppointmentDate: &sooner})
	require.NoError(t, err)

	list, total, err := svc.ListMine(user.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.True(t, list[0].AppointmentDate.Before(list[1].AppointmentDate))
}

func TestBookingCreateValidation(t *testing.T) {
	f := newShopFixture(t)
	svc := newBookingServiceForTest(f)
	user := f.createUser(t, "owner@example.test")
	groom := f.createService(t, "Full Groom", "40.00")
	when := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

	_, err := svc.Create(CreateBookingInput{UserID: user.ID, ServiceID: groom.ID})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"appointmentDate"}, verr.Fields)

	_, err = svc.Create(CreateBookingInput{UserID: user.ID, ServiceID: 999, AppointmentDate: &when})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	require.NoError(t, f.db.Model(&models.Service{}).Where("id = ?", groom.ID).Update("is_active", false).Error)
	_, err = svc.Create(CreateBookingInput{UserID: user.ID, ServiceID: groom.ID, AppointmentDate: &when})
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestBookingAdminStatusAndDelete(t *testing.T) {
	f := newShopFixture(t)
	svc := newBookingServiceForTest(f)
	user := f.createUser(t, "owner@example.test")
	groom := f.createService(t, "Full Groom", "40.00")
	when := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

	booking, err := svc.Create(CreateBookingInput{UserID: user.ID, ServiceID: groom.ID, AppointmentDate: &when})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(booking.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusConfirmed, updated.Status)

	_, err = svc.UpdateStatus(booking.ID, "teleported")
	assert.ErrorIs(t, err, ErrBookingStatus)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(999, "Completed")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	list, total, err := svc.ListAdmin(repository.BookingListFilter{Status: "CONFIRMED"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(booking.ID))
	assert.ErrorIs(t, svc.Delete(booking.ID), ErrBookingNotFound)
}
