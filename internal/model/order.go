package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusPaid      OrderStatus = "paid"
)

// Order snapshots the crop price at creation time: TotalAmount never changes
// even if the crop is repriced later.
type Order struct {
	ID              uint64      `gorm:"primaryKey;autoIncrement"`
	BuyerID         uint64      `gorm:"column:buyer_id;index;not null"`
	FarmerID        uint64      `gorm:"column:farmer_id;index;not null"`
	CropID          uint64      `gorm:"column:crop_id;index;not null"`
	Quantity        float64     `gorm:"not null"`
	TotalAmount     float64     `gorm:"column:total_amount;not null"`
	Status          OrderStatus `gorm:"size:20;not null;default:pending"`
	DeliveryAddress string      `gorm:"column:delivery_address;size:300"`
	DeliveryDate    *time.Time  `gorm:"column:delivery_date"`
	Notes           string      `gorm:"type:text"`
	CreatedAt       time.Time   `gorm:"autoCreateTime"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
