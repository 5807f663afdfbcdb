package message

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/MaryEddythe/Lustrea/internal/domain/message"
	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/models"
)

type fakeMessageRepo struct {
	appointments map[uint]*models.Appointment
	messages     []*models.Message

	conversations []domain.Conversation
	markedRead    []uint
}

var _ domain.Repository = (*fakeMessageRepo)(nil)

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		appointments: map[uint]*models.Appointment{
			1: {ID: 1, Name: "Maria Santos", Status: "confirmed"},
		},
	}
}

func (f *fakeMessageRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return ap, nil
}

func (f *fakeMessageRepo) ListByAppointment(_ context.Context, appointmentID uint) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.AppointmentID == appointmentID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) CreateMessage(_ context.Context, msg *models.Message) error {
	msg.ID = uint(len(f.messages) + 1)
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMessageRepo) GetMessage(_ context.Context, id uint) (*models.Message, error) {
	for _, m := range f.messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, id uint) error {
	f.markedRead = append(f.markedRead, id)
	for _, m := range f.messages {
		if m.ID == id {
			m.IsRead = true
		}
	}
	return nil
}

func (f *fakeMessageRepo) MarkConversationRead(_ context.Context, appointmentID uint) (int64, error) {
	var n int64
	for _, m := range f.messages {
		if m.AppointmentID == appointmentID && m.SenderType == models.SenderClient && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeMessageRepo) CountUnreadFromClients(_ context.Context) (int64, error) {
	var n int64
	for _, m := range f.messages {
		if m.SenderType == models.SenderClient && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeMessageRepo) ListConversations(_ context.Context) ([]domain.Conversation, error) {
	return f.conversations, nil
}

// ------------------------------
// Thread
// ------------------------------

func TestThread_PostAndList(t *testing.T) {
	repo := newFakeMessageRepo()
	uc := NewThread(repo)

	_, err := uc.Post(context.Background(), PostMessageInput{
		AppointmentID: 1,
		SenderType:    models.SenderClient,
		SenderName:    "Maria Santos",
		Body:          "Can I move my slot to 2pm?",
	})
	require.NoError(t, err)

	_, err = uc.Post(context.Background(), PostMessageInput{
		AppointmentID: 1,
		SenderType:    models.SenderAdmin,
		SenderName:    "Admin",
		Body:          "Sure, see you at 2!",
	})
	require.NoError(t, err)

	ap, msgs, err := uc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), ap.ID)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.SenderClient, msgs[0].SenderType)
	assert.Equal(t, models.SenderAdmin, msgs[1].SenderType)
	assert.False(t, msgs[0].IsRead)
}

func TestThread_PostTrimsBody(t *testing.T) {
	repo := newFakeMessageRepo()
	uc := NewThread(repo)

	msg, err := uc.Post(context.Background(), PostMessageInput{
		AppointmentID: 1,
		SenderType:    models.SenderClient,
		SenderName:    "Maria Santos",
		Body:          "  hello  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Body)
}

func TestThread_PostValidation(t *testing.T) {
	repo := newFakeMessageRepo()
	uc := NewThread(repo)

	_, err := uc.Post(context.Background(), PostMessageInput{
		AppointmentID: 42,
		SenderType:    models.SenderClient,
		Body:          "hi",
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = uc.Post(context.Background(), PostMessageInput{
		AppointmentID: 1,
		SenderType:    "system",
		Body:          "hi",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_sender"))

	_, err = uc.Post(context.Background(), PostMessageInput{
		AppointmentID: 1,
		SenderType:    models.SenderClient,
		Body:          "   ",
	})
	assert.True(t, httperr.IsBusiness(err, "empty_message"))

	_, err = uc.Post(context.Background(), PostMessageInput{
		AppointmentID: 1,
		SenderType:    models.SenderClient,
		Body:          strings.Repeat("a", maxMessageLen+1),
	})
	assert.True(t, httperr.IsBusiness(err, "message_too_long"))

	// The limit is in characters: a body of exactly maxMessageLen
	// multibyte runes is twice that in bytes and must still be accepted.
	_, err = uc.Post(context.Background(), PostMessageInput{
		AppointmentID: 1,
		SenderType:    models.SenderClient,
		SenderName:    "Mara",
		Body:          strings.Repeat("ñ", maxMessageLen),
	})
	assert.NoError(t, err)

	_, err = uc.Post(context.Background(), PostMessageInput{
		AppointmentID: 1,
		SenderType:    models.SenderClient,
		SenderName:    "Mara",
		Body:          strings.Repeat("ñ", maxMessageLen+1),
	})
	assert.True(t, httperr.IsBusiness(err, "message_too_long"))
}

func TestThread_MarkRead(t *testing.T) {
	repo := newFakeMessageRepo()
	uc := NewThread(repo)

	posted, err := uc.Post(context.Background(), PostMessageInput{
		AppointmentID: 1,
		SenderType:    models.SenderClient,
		SenderName:    "Maria Santos",
		Body:          "ping",
	})
	require.NoError(t, err)

	msg, err := uc.MarkRead(context.Background(), posted.ID)
	require.NoError(t, err)
	assert.True(t, msg.IsRead)
	require.Len(t, repo.markedRead, 1)

	// Marking again is idempotent and skips the write.
	_, err = uc.MarkRead(context.Background(), posted.ID)
	require.NoError(t, err)
	assert.Len(t, repo.markedRead, 1)

	_, err = uc.MarkRead(context.Background(), 999)
	assert.True(t, httperr.IsBusiness(err, "message_not_found"))
}
