package appointment

import (
	"time"

	"github.com/MaryEddythe/Lustrea/internal/httperr"
)

// ======================================================
// Salon schedule (single source of truth)
//
// Weekdays run 09:00-18:00, Saturdays 10:00-16:00, both
// in 30-minute slots. Sundays the salon is closed.
// Bookings are accepted up to 3 months ahead, same-day
// bookings need at least an hour of notice.
// ======================================================

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"

	SlotMinutes      = 30
	MinNoticeMinutes = 60
	MaxAdvanceMonths = 3
)

var (
	weekdaySlots = buildSlots("09:00", "18:00")
	weekendSlots = buildSlots("10:00", "16:00")
)

func buildSlots(start, end string) []TimeSlot {
	from, _ := time.Parse(SlotLayout, start)
	to, _ := time.Parse(SlotLayout, end)

	var slots []TimeSlot
	for cur := from; cur.Before(to); cur = cur.Add(SlotMinutes * time.Minute) {
		slots = append(slots, TimeSlot{
			Start: cur.Format(SlotLayout),
			End:   cur.Add(SlotMinutes * time.Minute).Format(SlotLayout),
		})
	}
	return slots
}

// SlotsFor returns the ordered slot list for the date's weekday.
// Sundays get an empty list.
func SlotsFor(date time.Time) []TimeSlot {
	switch date.Weekday() {
	case time.Sunday:
		return nil
	case time.Saturday:
		return append([]TimeSlot(nil), weekendSlots...)
	default:
		return append([]TimeSlot(nil), weekdaySlots...)
	}
}

// HasSlot reports whether label is a scheduled slot start on date.
func HasSlot(date time.Time, label string) bool {
	for _, s := range SlotsFor(date) {
		if s.Start == label {
			return true
		}
	}
	return false
}

// ======================================================
// Date eligibility
// ======================================================

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateDate applies the booking window rules: no past dates,
// nothing beyond 3 months out, and no Sundays.
func ValidateDate(date time.Time, now time.Time) error {
	day := truncateToDay(date)
	today := truncateToDay(now)

	if day.Before(today) {
		return httperr.ErrBusiness("date_in_past")
	}
	if day.After(today.AddDate(0, MaxAdvanceMonths, 0)) {
		return httperr.ErrBusiness("too_far_ahead")
	}
	if day.Weekday() == time.Sunday {
		return httperr.ErrBusiness("closed_day")
	}
	return nil
}

// IsEligible is ValidateDate as a predicate.
func IsEligible(date time.Time, now time.Time) bool {
	return ValidateDate(date, now) == nil
}

// SlotStart combines a date with a slot label in the date's location.
func SlotStart(date time.Time, label string) (time.Time, error) {
	t, err := time.Parse(SlotLayout, label)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_time")
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}

// WithinNotice reports whether a slot on date still satisfies the
// minimum notice window. Only same-day bookings are affected.
func WithinNotice(date time.Time, label string, now time.Time) bool {
	start, err := SlotStart(date, label)
	if err != nil {
		return false
	}
	return !start.Before(now.Add(MinNoticeMinutes * time.Minute))
}
