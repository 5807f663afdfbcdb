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

// UpdateBookingInput carries optional admin edits; nil fields are left
// untouched.
type UpdateBookingInput struct {
	AppointmentID uint
	AdminID       uint

	Name  *string
	Email *string
	Phone *string

	ServiceID *uint

	Date *string
	Time *string

	Status *string
	Notes  *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBooking {
	return &UpdateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if in.Name != nil {
		ap.Name = *in.Name
	}
	if in.Email != nil {
		ap.Email = *in.Email
	}
	if in.Phone != nil {
		ap.Phone = *in.Phone
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if in.ServiceID != nil {
		service, err := uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		ap.ServiceID = service.ID
		ap.Service = *service
	}

	// Rescheduling re-runs the slot rules and the conflict check,
	// excluding the appointment itself.
	if in.Date != nil || in.Time != nil {
		newDate := ap.Date
		newTime := ap.Time
		if in.Date != nil {
			newDate = *in.Date
		}
		if in.Time != nil {
			newTime = *in.Time
		}

		date, err := time.ParseInLocation(
			domain.DateLayout,
			newDate,
			timezone.Location(timezone.DefaultTimezone),
		)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}

		if err := domain.ValidateDate(date, timezone.Now()); err != nil {
			return nil, err
		}
		if !domain.HasSlot(date, newTime) {
			return nil, httperr.ErrBusiness("invalid_time")
		}

		if err := uc.repo.AssertSlotFree(ctx, newDate, newTime, ap.ID); err != nil {
			return nil, err
		}

		ap.Date = newDate
		ap.Time = newTime
	}

	if in.Status != nil && *in.Status != ap.Status {
		if err := uc.transition(ap, *in.Status); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  &in.AdminID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"status": ap.Status},
	})

	return ap, nil
}

func (uc *UpdateBooking) transition(ap *models.Appointment, status string) error {
	if !domain.IsValidStatus(status) {
		return httperr.ErrBusiness("invalid_status")
	}

	now := timezone.Now()

	switch domain.Status(status) {
	case domain.StatusConfirmed:
		return domain.Confirm(ap)
	case domain.StatusCompleted:
		return domain.Complete(ap, now)
	case domain.StatusCancelled:
		return domain.Cancel(ap, now)
	case domain.StatusPending:
		return httperr.ErrBusiness("invalid_state")
	}

	return nil
}
