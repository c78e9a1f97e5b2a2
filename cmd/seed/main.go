package main

import (
	"context"
	"errors"
	"log"

	"github.com/agriconnect/agrimarket-backend/internal/config"
	"github.com/agriconnect/agrimarket-backend/internal/db"
	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/repository"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the admin account so a fresh deployment has a working admin login.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(
		&model.User{},
		&model.Crop{},
		&model.Order{},
		&model.Transaction{},
		&model.Message{},
	); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(conn)

	if _, err := users.FindByUsername(ctx, "admin"); err == nil {
		log.Println("admin user already exists, nothing to do")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("admin lookup error: %v", err)
	}

	// Should be changed on first login.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash error: %v", err)
	}
	admin := &model.User{
		Username:     "admin",
		Email:        "admin@agrimarket.com",
		PasswordHash: string(hash),
		UserType:     model.UserTypeAdmin,
		Location:     "System",
		County:       "System",
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("seed admin error: %v", err)
	}
	log.Printf("admin user created with id %d", admin.ID)
}
