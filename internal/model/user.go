package model

import "time"

type UserType string

const (
	UserTypeFarmer UserType = "farmer"
	UserTypeBuyer  UserType = "buyer"
	UserTypeAdmin  UserType = "admin"
)

type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"size:64;uniqueIndex;not null"`
	Email        string    `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:256;not null"`
	PhoneNumber  string    `gorm:"size:20"`
	UserType     UserType  `gorm:"column:user_type;size:20;not null"`
	Location     string    `gorm:"size:200"`
	County       string    `gorm:"size:100"`
	Rating       float64   `gorm:"default:0"`
	TotalRatings int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
