package main

import (
	"log"

	"github.com/agriconnect/agrimarket-backend/internal/config"
	"github.com/agriconnect/agrimarket-backend/internal/db"
	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/server"
	"github.com/joho/godotenv"
)

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

	srv := server.New(conn, cfg)
	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
