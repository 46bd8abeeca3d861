package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/config"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/jobs"
)

// Invoked by cron every few minutes. Appends a liveness line to the
// heartbeat log and checks the GraphQL endpoint; an unreachable API is a
// logged line, not a failed run.
func main() {
	if err := run(); err != nil {
		fmt.Printf("error running heartbeat job: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	time.Local = time.UTC

	type Config struct {
		Jobs config.Jobs
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	result := jobs.New(cfg.Jobs).Heartbeat(ctx)

	if err := jobs.AppendLines(cfg.Jobs.HeartbeatLogPath, result.Lines()); err != nil {
		return fmt.Errorf("error writing heartbeat log: %w", err)
	}

	if result.HelloErr != nil {
		fmt.Println("Heartbeat logged; GraphQL hello check failed.")
	}

	return nil
}
