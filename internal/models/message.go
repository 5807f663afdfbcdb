package models

import "time"

const (
	SenderClient = "client"
	SenderAdmin  = "admin"
)

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"index;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SenderType string `gorm:"size:10;not null" json:"sender_type"`
	SenderName string `gorm:"size:100;not null" json:"sender_name"`
	Body       string `gorm:"size:1000;not null;column:message" json:"message"`

	IsRead bool `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
