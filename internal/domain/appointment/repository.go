package appointment

import (
	"context"

	"github.com/MaryEddythe/Lustrea/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Availability --------
	ListBookedTimes(
		ctx context.Context,
		date string,
	) ([]string, error)

	// -------- Reservation --------

	// ReserveAppointment checks the (date, time) slot and inserts the
	// record in one transaction. Returns the slot_taken business error
	// when a non-cancelled appointment already holds the slot.
	ReserveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertSlotFree(
		ctx context.Context,
		date string,
		timeLabel string,
		excludeID uint,
	) error

	// -------- State change --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}
