package message

import (
	"context"

	"github.com/MaryEddythe/Lustrea/internal/models"
)

// Conversation is one admin-inbox row: an appointment with at least one
// message, its latest message, and how many client messages are unread.
type Conversation struct {
	Appointment models.Appointment `json:"appointment"`
	LastMessage models.Message     `json:"last_message"`
	UnreadCount int64              `json:"unread_messages_count"`
}

type Repository interface {
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListByAppointment(
		ctx context.Context,
		appointmentID uint,
	) ([]models.Message, error)

	CreateMessage(
		ctx context.Context,
		msg *models.Message,
	) error

	GetMessage(
		ctx context.Context,
		id uint,
	) (*models.Message, error)

	MarkRead(
		ctx context.Context,
		id uint,
	) error

	// MarkConversationRead flips is_read on unread client messages for
	// the appointment, leaving admin messages alone. Returns how many
	// rows changed.
	MarkConversationRead(
		ctx context.Context,
		appointmentID uint,
	) (int64, error)

	CountUnreadFromClients(
		ctx context.Context,
	) (int64, error)

	ListConversations(
		ctx context.Context,
	) ([]Conversation, error)
}
