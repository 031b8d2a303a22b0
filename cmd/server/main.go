package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/activities"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/chat"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/config"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/export"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/handlers"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/provider"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/router"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/service"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/store"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/validate"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/workflows"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/ws"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New()
	defer log.Sync()

	ctx := context.Background()

	// Storage
	var st store.Store
	switch cfg.StorageDriver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("database connect failed", "error", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatal("database ping failed", "error", err)
		}
		st = store.NewPostgresStore(pool)
		log.Info("using postgres storage")
	default:
		st = store.NewMemoryStore()
		log.Info("using in-memory storage")
	}

	// Temporal client
	temporalClient, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
	})
	if err != nil {
		log.Fatal("temporal connect failed", "host", cfg.TemporalHost, "error", err)
	}
	defer temporalClient.Close()
	log.Info("connected to temporal", "host", cfg.TemporalHost)

	reg := metrics.NewRegistry()
	validator := validate.New()
	exporter := export.NewExporter(cfg.ExportDir, log)
	chatClient := chat.NewClient(cfg.ChatAPIBaseURL, cfg.ChatAPIKey, cfg.ChatTimeout, log)

	hub := ws.NewHub(log)
	go hub.Run()

	// With the in-memory store the booking worker must share this
	// process, otherwise its activities would commit into a store the
	// API never sees. Postgres deployments run cmd/worker instead.
	if cfg.StorageDriver != "postgres" {
		w := worker.New(temporalClient, cfg.TaskQueue, worker.Options{})
		w.RegisterWorkflow(workflows.BookingWorkflow)

		acts := activities.NewActivities(st, validator, exporter, reg, log)
		w.RegisterActivityWithOptions(acts.ValidatePassenger, activity.RegisterOptions{Name: "ValidatePassenger"})
		w.RegisterActivityWithOptions(acts.CommitBooking, activity.RegisterOptions{Name: "CommitBooking"})
		w.RegisterActivityWithOptions(acts.SendConfirmation, activity.RegisterOptions{Name: "SendConfirmation"})

		if err := w.Start(); err != nil {
			log.Fatal("embedded worker failed to start", "error", err)
		}
		defer w.Stop()
		log.Info("embedded booking worker started", "taskQueue", cfg.TaskQueue)
	}

	svc := service.NewNexusService(service.Deps{
		Temporal:  temporalClient,
		Store:     st,
		Hub:       hub,
		Exporter:  exporter,
		Validator: validator,
		Chat:      chatClient,
		Metrics:   reg,
		Provider:  provider.NewSampleProvider(),
		Log:       log,
		TaskQueue: cfg.TaskQueue,
	})

	h := handlers.NewHandler(svc, hub, log)
	r := router.SetupRouter(h, reg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info("api server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
