package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/MaryEddythe/Lustrea/internal/domain/message"
	"github.com/MaryEddythe/Lustrea/internal/models"
)

type MessageGormRepository struct {
	db *gorm.DB
}

func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

func (r *MessageGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *MessageGormRepository) ListByAppointment(
	ctx context.Context,
	appointmentID uint,
) ([]models.Message, error) {

	var msgs []models.Message
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *MessageGormRepository) CreateMessage(
	ctx context.Context,
	msg *models.Message,
) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *MessageGormRepository) GetMessage(
	ctx context.Context,
	id uint,
) (*models.Message, error) {

	var msg models.Message
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *MessageGormRepository) MarkRead(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *MessageGormRepository) MarkConversationRead(
	ctx context.Context,
	appointmentID uint,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where(
			"appointment_id = ? AND sender_type = ? AND is_read = false",
			appointmentID,
			models.SenderClient,
		).
		Update("is_read", true)

	return res.RowsAffected, res.Error
}

func (r *MessageGormRepository) CountUnreadFromClients(
	ctx context.Context,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_type = ? AND is_read = false", models.SenderClient).
		Count(&count).Error

	return count, err
}

func (r *MessageGormRepository) ListConversations(
	ctx context.Context,
) ([]domain.Conversation, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("id IN (?)",
			r.db.Model(&models.Message{}).Distinct("appointment_id"),
		).
		Order("updated_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Conversation, 0, len(apps))
	for _, ap := range apps {
		var last models.Message
		if err := r.db.WithContext(ctx).
			Where("appointment_id = ?", ap.ID).
			Order("created_at DESC").
			First(&last).Error; err != nil {
			return nil, err
		}

		var unread int64
		if err := r.db.WithContext(ctx).
			Model(&models.Message{}).
			Where(
				"appointment_id = ? AND sender_type = ? AND is_read = false",
				ap.ID,
				models.SenderClient,
			).
			Count(&unread).Error; err != nil {
			return nil, err
		}

		out = append(out, domain.Conversation{
			Appointment: ap,
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	return out, nil
}

// Compile-time check
var _ domain.Repository = (*MessageGormRepository)(nil)
