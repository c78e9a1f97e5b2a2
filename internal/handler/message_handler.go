package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type MessageHandler struct {
	svc service.MessageService
}

func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type MessageResponse struct {
	ID        uint64  `json:"id"`
	SenderID  uint64  `json:"sender_id"`
	OrderID   *uint64 `json:"order_id,omitempty"`
	Content   string  `json:"content"`
	IsMine    bool    `json:"is_mine"`
	CreatedAt string  `json:"created_at"`
	ReadAt    *string `json:"read_at,omitempty"`
}

func toMessageResponse(m *model.Message, viewerID uint64) MessageResponse {
	var readAt *string
	if m.ReadAt != nil {
		val := m.ReadAt.Format(time.RFC3339)
		readAt = &val
	}
	return MessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID,
		OrderID:   m.OrderID,
		Content:   m.Content,
		IsMine:    m.SenderID == viewerID,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		ReadAt:    readAt,
	}
}

type sendMessageRequest struct {
	ReceiverID uint64  `json:"receiver_id"`
	OrderID    *uint64 `json:"order_id"`
	Content    string  `json:"content"`
}

func (h *MessageHandler) Send(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	if req.ReceiverID == 0 || req.Content == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "receiver_id and content are required"))
	}
	msg, err := h.svc.Send(c.Request().Context(), actor.ID, req.ReceiverID, req.OrderID, req.Content)
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	return c.JSON(http.StatusCreated, toMessageResponse(msg, actor.ID))
}

// List returns either the thread with ?user_id= (marking received messages
// read) or the grouped conversation overview.
func (h *MessageHandler) List(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)

	if raw := c.QueryParam("user_id"); raw != "" {
		partnerID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user_id"))
		}
		msgs, err := h.svc.Conversation(c.Request().Context(), actor.ID, partnerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch messages"))
		}
		resp := make([]MessageResponse, 0, len(msgs))
		for i := range msgs {
			resp = append(resp, toMessageResponse(&msgs[i], actor.ID))
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"messages": resp})
	}

	summaries, err := h.svc.Conversations(c.Request().Context(), actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch conversations"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"conversations": summaries})
}
