package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/config"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/log"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/storage/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running migrate application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	logger.InfoContext(ctx, "starting database migration")

	if err := db.Migrate(cfg.Postgres); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	logger.InfoContext(ctx, "database migration completed successfully")

	return nil
}
