package main

import (
	"context"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/activities"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/config"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/export"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/store"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/validate"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/workflows"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

// The standalone worker requires a shared database so the API server
// sees the bookings it commits.
func main() {
	cfg := config.Load()

	log := logger.New()
	defer log.Sync()

	ctx := context.Background()

	log.Info("connecting to database")
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect failed", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal("database ping failed", "error", err)
	}
	log.Info("connected to database")

	st := store.NewPostgresStore(pool)

	log.Info("connecting to temporal", "host", cfg.TemporalHost)
	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
	})
	if err != nil {
		log.Fatal("temporal connect failed", "error", err)
	}
	defer c.Close()
	log.Info("connected to temporal")

	w := worker.New(c, cfg.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.BookingWorkflow)

	reg := metrics.NewRegistry()
	exporter := export.NewExporter(cfg.ExportDir, log)
	acts := activities.NewActivities(st, validate.New(), exporter, reg, log)
	w.RegisterActivityWithOptions(acts.ValidatePassenger, activity.RegisterOptions{Name: "ValidatePassenger"})
	w.RegisterActivityWithOptions(acts.CommitBooking, activity.RegisterOptions{Name: "CommitBooking"})
	w.RegisterActivityWithOptions(acts.SendConfirmation, activity.RegisterOptions{Name: "SendConfirmation"})

	log.Info("starting booking worker", "taskQueue", cfg.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal("worker failed", "error", err)
	}
}
