package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"guardian/internal/store"
	"guardian/pkg/config"
	"guardian/pkg/logger"
)

func main() {
	seed := flag.Bool("seed", false, "insert the demo dataset after migrating")
	flag.Parse()

	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required for migrations")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(&store.ResourceRow{}, &store.AlertRow{}); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if *seed {
		if err := store.SeedPostgres(db); err != nil {
			log.Fatal("seeding failed", zap.Error(err))
		}
		log.Info("demo dataset seeded")
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
