package message

import (
	"context"
	"strings"
	"unicode/utf8"

	domain "github.com/MaryEddythe/Lustrea/internal/domain/message"
	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/models"
)

const maxMessageLen = 1000

type PostMessageInput struct {
	AppointmentID uint
	SenderType    string
	SenderName    string
	Body          string
}

// Thread is the per-appointment message log: list in creation order,
// append from either side.
type Thread struct {
	repo domain.Repository
}

func NewThread(repo domain.Repository) *Thread {
	return &Thread{repo: repo}
}

func (uc *Thread) List(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, []models.Message, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("appointment_not_found")
	}

	msgs, err := uc.repo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, nil, err
	}

	return ap, msgs, nil
}

func (uc *Thread) Post(
	ctx context.Context,
	in PostMessageInput,
) (*models.Message, error) {

	if _, err := uc.repo.GetAppointment(ctx, in.AppointmentID); err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if in.SenderType != models.SenderClient && in.SenderType != models.SenderAdmin {
		return nil, httperr.ErrBusiness("invalid_sender")
	}

	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, httperr.ErrBusiness("empty_message")
	}
	// Length counts characters, not bytes, to match the request binding.
	if utf8.RuneCountInString(body) > maxMessageLen {
		return nil, httperr.ErrBusiness("message_too_long")
	}

	msg := &models.Message{
		AppointmentID: in.AppointmentID,
		SenderType:    in.SenderType,
		SenderName:    in.SenderName,
		Body:          body,
	}

	if err := uc.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (uc *Thread) MarkRead(
	ctx context.Context,
	messageID uint,
) (*models.Message, error) {

	msg, err := uc.repo.GetMessage(ctx, messageID)
	if err != nil {
		return nil, httperr.ErrBusiness("message_not_found")
	}

	if !msg.IsRead {
		if err := uc.repo.MarkRead(ctx, messageID); err != nil {
			return nil, err
		}
		msg.IsRead = true
	}

	return msg, nil
}
