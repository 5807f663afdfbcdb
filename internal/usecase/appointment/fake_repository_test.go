package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/MaryEddythe/Lustrea/internal/domain/appointment"
	"github.com/MaryEddythe/Lustrea/internal/models"
	"github.com/MaryEddythe/Lustrea/internal/timezone"
)

type fakeRepo struct {
	services     map[uint]*models.Service
	appointments map[uint]*models.Appointment
	booked       map[string][]string

	reserved    []*models.Appointment
	updated     []*models.Appointment
	reserveErr  error
	slotFreeErr error

	lastSlotFreeExclude uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]*models.Service{},
		appointments: map[uint]*models.Appointment{},
		booked:       map[string][]string{},
	}
}

func (f *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return s, nil
}

func (f *fakeRepo) ListBookedTimes(_ context.Context, date string) ([]string, error) {
	return f.booked[date], nil
}

func (f *fakeRepo) ReserveAppointment(_ context.Context, ap *models.Appointment) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	ap.ID = uint(len(f.reserved) + 1)
	f.reserved = append(f.reserved, ap)
	f.booked[ap.Date] = append(f.booked[ap.Date], ap.Time)
	return nil
}

func (f *fakeRepo) AssertSlotFree(_ context.Context, date, timeLabel string, excludeID uint) error {
	f.lastSlotFreeExclude = excludeID
	return f.slotFreeErr
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.updated = append(f.updated, ap)
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, id uint) error {
	delete(f.appointments, id)
	return nil
}

// nextDay returns the next date with the given weekday, strictly after
// today in the salon's timezone, so notice-window filtering never kicks
// in during a test run.
func nextDay(wd time.Weekday) time.Time {
	d := timezone.Now().AddDate(0, 0, 1)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func activeService(id uint) *models.Service {
	return &models.Service{
		ID:          id,
		Name:        "Gel Manicure",
		Category:    "Manicure",
		Price:       599,
		DurationMin: 60,
		Active:      true,
	}
}
