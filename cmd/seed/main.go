package main

import (
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/dropfixer/dropfixer-api/internal/config"
	"github.com/dropfixer/dropfixer-api/internal/database"
	"github.com/dropfixer/dropfixer-api/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := seed.Run(db, logger); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
}
