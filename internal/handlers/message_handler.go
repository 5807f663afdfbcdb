package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/httpresp"
	"github.com/MaryEddythe/Lustrea/internal/middleware"
	ucMessage "github.com/MaryEddythe/Lustrea/internal/usecase/message"
)

type MessageHandler struct {
	thread *ucMessage.Thread
	inbox  *ucMessage.Inbox
}

func NewMessageHandler(thread *ucMessage.Thread, inbox *ucMessage.Inbox) *MessageHandler {
	return &MessageHandler{thread: thread, inbox: inbox}
}

type PostMessageRequest struct {
	SenderType string `json:"sender_type" binding:"required,oneof=client admin"`
	SenderName string `json:"sender_name" binding:"required,max=100"`
	Message    string `json:"message" binding:"required,max=1000"`
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// ------------------------------
// Thread (client + admin)
// ------------------------------

func (h *MessageHandler) List(c *gin.Context) {
	appointmentID, ok := paramID(c, "appointmentId")
	if !ok {
		return
	}

	ap, msgs, err := h.thread.List(c.Request.Context(), appointmentID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"appointment": ap,
		"messages":    msgs,
	}, "Messages retrieved successfully")
}

func (h *MessageHandler) Post(c *gin.Context) {
	appointmentID, ok := paramID(c, "appointmentId")
	if !ok {
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.ValidationFailed(c, map[string]string{"body": err.Error()})
		return
	}

	msg, err := h.thread.Post(c.Request.Context(), ucMessage.PostMessageInput{
		AppointmentID: appointmentID,
		SenderType:    req.SenderType,
		SenderName:    req.SenderName,
		Body:          req.Message,
	})
	if err != nil {
		mapMessageError(c, err)
		return
	}

	httpresp.Created(c, msg, "Message sent successfully")
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	messageID, ok := paramID(c, "id")
	if !ok {
		return
	}

	msg, err := h.thread.MarkRead(c.Request.Context(), messageID)
	if err != nil {
		if httperr.IsBusiness(err, "message_not_found") {
			httperr.NotFound(c, "Message not found")
			return
		}
		httperr.Internal(c, "Failed to mark message as read")
		return
	}

	httpresp.OK(c, msg, "Message marked as read")
}

// ------------------------------
// Admin inbox
// ------------------------------

func (h *MessageHandler) Conversations(c *gin.Context) {
	conversations, err := h.inbox.Conversations(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "Failed to retrieve conversations")
		return
	}

	httpresp.OK(c, conversations, "Conversations retrieved successfully")
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.inbox.UnreadCount(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "Failed to retrieve unread count")
		return
	}

	httpresp.OK(c, gin.H{"unread_count": count}, "Unread count retrieved successfully")
}

func (h *MessageHandler) MarkConversationRead(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAdminID).(uint)

	appointmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	n, err := h.inbox.MarkConversationRead(c.Request.Context(), adminID, appointmentID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"marked_read": n}, "Conversation marked as read")
}

func mapMessageError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "Appointment not found")
	case httperr.IsBusiness(err, "invalid_sender"):
		httperr.Unprocessable(c, "Sender must be client or admin")
	case httperr.IsBusiness(err, "empty_message"):
		httperr.Unprocessable(c, "Message must not be empty")
	case httperr.IsBusiness(err, "message_too_long"):
		httperr.Unprocessable(c, "Message must be at most 1000 characters")
	default:
		httperr.Internal(c, "Failed to send message")
	}
}
