package message

import (
	"context"

	"github.com/MaryEddythe/Lustrea/internal/audit"
	domain "github.com/MaryEddythe/Lustrea/internal/domain/message"
	"github.com/MaryEddythe/Lustrea/internal/httperr"
)

// Inbox backs the admin messaging dashboard: conversation list, global
// unread badge, and the bulk read-state flip when a thread is opened.
type Inbox struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewInbox(repo domain.Repository, audit *audit.Dispatcher) *Inbox {
	return &Inbox{repo: repo, audit: audit}
}

func (uc *Inbox) Conversations(ctx context.Context) ([]domain.Conversation, error) {
	return uc.repo.ListConversations(ctx)
}

func (uc *Inbox) UnreadCount(ctx context.Context) (int64, error) {
	return uc.repo.CountUnreadFromClients(ctx)
}

// MarkConversationRead flips every unread client message on the
// appointment; admin messages keep their flag.
func (uc *Inbox) MarkConversationRead(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
) (int64, error) {

	if _, err := uc.repo.GetAppointment(ctx, appointmentID); err != nil {
		return 0, httperr.ErrBusiness("appointment_not_found")
	}

	n, err := uc.repo.MarkConversationRead(ctx, appointmentID)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		uc.audit.Dispatch(audit.Event{
			AdminID:  &adminID,
			Action:   "conversation_read",
			Entity:   "appointment",
			EntityID: &appointmentID,
			Metadata: map[string]int64{"messages": n},
		})
	}

	return n, nil
}
