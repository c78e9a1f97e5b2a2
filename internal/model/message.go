package model

import "time"

type MessageType string

const (
	MessageTypeText           MessageType = "text"
	MessageTypeSystem         MessageType = "system"
	MessageTypeDeliveryUpdate MessageType = "delivery_update"
)

type Message struct {
	ID          uint64      `gorm:"primaryKey;autoIncrement"`
	SenderID    uint64      `gorm:"column:sender_id;index;not null"`
	ReceiverID  uint64      `gorm:"column:receiver_id;index;not null"`
	OrderID     *uint64     `gorm:"column:order_id;index"`
	Content     string      `gorm:"type:text;not null"`
	MessageType MessageType `gorm:"column:message_type;size:20;default:text"`
	CreatedAt   time.Time   `gorm:"autoCreateTime"`
	ReadAt      *time.Time  `gorm:"column:read_at"`
}

func (Message) TableName() string {
	return "messages"
}
