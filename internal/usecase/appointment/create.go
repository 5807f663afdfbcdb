package appointment

import (
	"context"
	"time"

	"github.com/MaryEddythe/Lustrea/internal/audit"
	domain "github.com/MaryEddythe/Lustrea/internal/domain/appointment"
	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/models"
	"github.com/MaryEddythe/Lustrea/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Name  string
	Email string
	Phone string

	ServiceID uint

	Date string // YYYY-MM-DD
	Time string // HH:MM slot start

	Notes string

	// Upload references, already stored by the handler.
	DesignImage  string
	PaymentProof string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	date, err := time.ParseInLocation(
		domain.DateLayout,
		in.Date,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	now := timezone.Now()

	if err := domain.ValidateDate(date, now); err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !service.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	if !domain.HasSlot(date, in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	if !domain.WithinNotice(date, in.Time, now) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	ap := &models.Appointment{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		ServiceID:    service.ID,
		Date:         in.Date,
		Time:         in.Time,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
		DesignImage:  in.DesignImage,
		PaymentProof: in.PaymentProof,
	}

	// Conflict check and insert happen atomically in the repository.
	if err := uc.repo.ReserveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	ap.Service = *service

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
