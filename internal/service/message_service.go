package service

import (
	"context"
	"errors"
	"time"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/repository"
	"gorm.io/gorm"
)

// ConversationSummary is one row in a user's inbox: the partner plus the most
// recent message exchanged with them.
type ConversationSummary struct {
	PartnerID       uint64         `json:"partner_id"`
	PartnerName     string         `json:"partner_name"`
	PartnerType     model.UserType `json:"partner_type"`
	LastMessage     string         `json:"last_message"`
	LastMessageTime time.Time      `json:"last_message_time"`
	UnreadCount     int64          `json:"unread_count"`
}

type MessageService interface {
	Send(ctx context.Context, senderID, receiverID uint64, orderID *uint64, content string) (*model.Message, error)
	Conversation(ctx context.Context, userID, partnerID uint64) ([]model.Message, error)
	Conversations(ctx context.Context, userID uint64) ([]ConversationSummary, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) MessageService {
	return &messageService{messages: messages, users: users}
}

func (s *messageService) Send(ctx context.Context, senderID, receiverID uint64, orderID *uint64, content string) (*model.Message, error) {
	if content == "" {
		return nil, errors.New("content is required")
	}
	if senderID == receiverID {
		return nil, errors.New("cannot message yourself")
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	msg := &model.Message{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		OrderID:     orderID,
		Content:     content,
		MessageType: model.MessageTypeText,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Conversation returns the full thread with a partner and marks everything
// the partner sent as read.
func (s *messageService) Conversation(ctx context.Context, userID, partnerID uint64) ([]model.Message, error) {
	msgs, err := s.messages.Conversation(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}
	if err := s.messages.MarkRead(ctx, partnerID, userID); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *messageService) Conversations(ctx context.Context, userID uint64) ([]ConversationSummary, error) {
	msgs, err := s.messages.ListInvolving(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]bool)
	summaries := make([]ConversationSummary, 0)
	for _, msg := range msgs {
		partnerID := msg.ReceiverID
		if msg.ReceiverID == userID {
			partnerID = msg.SenderID
		}
		if seen[partnerID] {
			continue
		}
		seen[partnerID] = true

		partner, err := s.users.FindByID(ctx, partnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		unread, err := s.messages.CountUnreadFrom(ctx, partnerID, userID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ConversationSummary{
			PartnerID:       partnerID,
			PartnerName:     partner.Username,
			PartnerType:     partner.UserType,
			LastMessage:     msg.Content,
			LastMessageTime: msg.CreatedAt,
			UnreadCount:     unread,
		})
	}
	return summaries, nil
}
