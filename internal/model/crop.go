package model

import "time"

type CropStatus string

const (
	CropStatusAvailable CropStatus = "available"
	CropStatusSold      CropStatus = "sold"
	CropStatusExpired   CropStatus = "expired"
)

// Crop rows are never deleted; unavailable stock is soft-expired instead.
type Crop struct {
	ID           uint64     `gorm:"primaryKey;autoIncrement"`
	FarmerID     uint64     `gorm:"column:farmer_id;index;not null"`
	Name         string     `gorm:"size:100;not null"`
	Category     string     `gorm:"size:50;not null"`
	Quantity     float64    `gorm:"not null"`
	Unit         string     `gorm:"size:20;not null"`
	PricePerUnit float64    `gorm:"column:price_per_unit;not null"`
	Description  string     `gorm:"type:text"`
	HarvestDate  *time.Time `gorm:"column:harvest_date"`
	ExpiryDate   *time.Time `gorm:"column:expiry_date"`
	Location     string     `gorm:"size:200"`
	County       string     `gorm:"size:100"`
	QualityGrade string     `gorm:"column:quality_grade;size:10;default:A"`
	Status       CropStatus `gorm:"size:20;not null;default:available"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
}

func (Crop) TableName() string {
	return "crops"
}
