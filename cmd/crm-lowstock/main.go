package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/config"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/jobs"
)

// Invoked by cron. Triggers the low-stock replenishment mutation and records
// the outcome in the low-stock log; a failing mutation is a logged line, not
// a failed run.
func main() {
	if err := run(); err != nil {
		fmt.Printf("error running low-stock job: %v\n", err)
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

	result := jobs.New(cfg.Jobs).UpdateLowStock(ctx)

	if err := jobs.AppendLines(cfg.Jobs.LowStockLogPath, result.Lines()); err != nil {
		return fmt.Errorf("error writing low-stock log: %w", err)
	}

	if result.Err != nil {
		fmt.Println("Low-stock update failed; see log for details.")
		return nil
	}

	fmt.Printf("Low-stock update done: %d products restocked.\n", len(result.Products))

	return nil
}
