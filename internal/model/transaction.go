package model

import "time"

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

type Transaction struct {
	ID             uint64            `gorm:"primaryKey;autoIncrement"`
	OrderID        uint64            `gorm:"column:order_id;index;not null"`
	Amount         float64           `gorm:"not null"`
	Fee            float64           `gorm:"not null"`
	PaymentMethod  string            `gorm:"column:payment_method;size:50;not null"`
	Reference      string            `gorm:"size:100;uniqueIndex"`
	Status         TransactionStatus `gorm:"size:20;not null;default:pending"`
	CompletedAt    *time.Time        `gorm:"column:completed_at"`
	EscrowReleased bool              `gorm:"column:escrow_released;default:false"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
