package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/config"
	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/jobs"
)

// Invoked by cron daily. Logs a reminder line for every order placed within
// the reminder window; a failing scan is a logged line, not a failed run.
func main() {
	if err := run(); err != nil {
		fmt.Printf("error running order-reminders job: %v\n", err)
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

	result := jobs.New(cfg.Jobs).OrderReminders(ctx)

	if err := jobs.AppendLines(cfg.Jobs.RemindersLogPath, result.Lines()); err != nil {
		return fmt.Errorf("error writing order-reminders log: %w", err)
	}

	if result.Err != nil {
		fmt.Println("Order reminders failed; see log for details.")
		return nil
	}

	fmt.Println("Order reminders processed!")

	return nil
}
