package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;not null" json:"email"`
	Phone string `gorm:"size:20;not null" json:"phone"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Date is YYYY-MM-DD, Time is the HH:MM start label of the booked slot.
	Date string `gorm:"size:10;index:idx_appointments_slot;not null" json:"date"`
	Time string `gorm:"size:5;index:idx_appointments_slot;not null" json:"time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes        string `gorm:"size:1000" json:"notes"`
	DesignImage  string `gorm:"size:500" json:"design_image"`
	PaymentProof string `gorm:"size:500" json:"payment_proof"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
