package appointment

import (
	"context"

	domain "github.com/MaryEddythe/Lustrea/internal/domain/appointment"
	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute returns the open slots for a date: the scheduled slot list for
// that weekday minus the slots already held by non-cancelled bookings,
// order preserved. Same-day requests also drop slots inside the notice
// window. Sundays simply have no slots.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if in.ServiceID != 0 {
		service, err := uc.repo.GetService(ctx, in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		if !service.Active {
			return nil, httperr.ErrBusiness("service_inactive")
		}
	}

	now := timezone.Now()

	if err := domain.ValidateDate(in.Date, now); err != nil {
		if httperr.IsBusiness(err, "closed_day") {
			return []domain.TimeSlot{}, nil
		}
		return nil, err
	}

	booked, err := uc.repo.ListBookedTimes(
		ctx,
		in.Date.Format(domain.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	slots := []domain.TimeSlot{}
	for _, slot := range domain.SlotsFor(in.Date) {
		if taken[slot.Start] {
			continue
		}
		if !domain.WithinNotice(in.Date, slot.Start, now) {
			continue
		}
		slots = append(slots, slot)
	}

	return slots, nil
}
