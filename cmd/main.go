package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cocacoran-1/kanji/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	application, err := app.New(ctx, logMode)
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()
	log := application.Log

	// The server answers while the database is verified and seeded; failures
	// leave it serving whatever the table already holds.
	go func() {
		report, err := application.Bootstrap(ctx)
		if err != nil {
			log.Error("Database initialization failed, serving in degraded mode", "error", err)
			return
		}
		log.Info("Database initialized", "applied", report.Applied, "skipped", report.Skipped, "reason", report.Reason)
	}()

	if err := application.Run(ctx); err != nil {
		log.Error("Server failed", "error", err)
		application.Close()
		os.Exit(1)
	}
}
