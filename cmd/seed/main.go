package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"interviewprep/internal/config"
	"interviewprep/internal/db"
	"interviewprep/internal/model"
	"interviewprep/internal/repository"
	"interviewprep/internal/seed"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Interviewer{},
		&model.InterviewSlot{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	interviewerRepo := repository.NewInterviewerRepository(gormDB)
	slotRepo := repository.NewSlotRepository(gormDB)

	result, err := seed.Run(context.Background(), interviewerRepo, slotRepo)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	log.Printf("seeded %d interviewers and %d slots", result.Interviewers, result.Slots)
}
