package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pd-tracker/internal/application/bridge"
	"github.com/pd-tracker/internal/application/engine"
	"github.com/pd-tracker/internal/application/feedquery"
	"github.com/pd-tracker/internal/application/state"
	"github.com/pd-tracker/internal/config"
	"github.com/pd-tracker/internal/infrastructure/dynamo"
	"github.com/pd-tracker/internal/infrastructure/feed"
	"github.com/pd-tracker/internal/infrastructure/notify"
	s3infra "github.com/pd-tracker/internal/infrastructure/s3"
	"github.com/pd-tracker/internal/infrastructure/smtp"
	"github.com/pd-tracker/internal/infrastructure/sns"
	transporthttp "github.com/pd-tracker/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap the engine-state table (created if it doesn't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTableEngineState)

	stateSvc := state.NewService(dynamo.NewStateRepo(dynamoClient, cfg.DynamoTableEngineState), cfg.APIBaseURL)
	feedClient := feed.NewClient(cfg.FetchTimeout)

	// Notification sinks. The log sink is always on; SNS and email are
	// optional with graceful fallback.
	sinks := []notify.Sink{notify.LogSink{}}
	if cfg.SNSTopicARN != "" {
		if publisher, err := sns.NewPublisher(cfg); err == nil {
			sinks = append(sinks, notify.NewSNSSink(publisher))
		} else {
			log.Printf("WARN: SNS publisher not available: %v", err)
		}
	}
	if cfg.NotifyEmailTo != "" {
		sinks = append(sinks, notify.NewEmailSink(smtp.NewMailer(cfg), cfg.NotifyEmailTo))
	}
	notifier := notify.NewNotifier(sinks...)

	// Snapshot archive (optional).
	var archive *s3infra.Archive
	if cfg.S3BucketSnapshots != "" {
		archive = s3infra.NewArchive(s3infra.NewClient(cfg), cfg.S3BucketSnapshots)
	}

	var archiver engine.Archiver
	var snapshots feedquery.SnapshotReader
	if archive != nil {
		archiver = archive
		snapshots = archive
	}

	engineSvc := engine.NewService(stateSvc, feedClient, notifier, archiver)
	scheduler := engine.NewScheduler(cfg.PollInterval, engineSvc.RunCycle)
	bridgeSvc := bridge.NewService(stateSvc, scheduler)
	feedSvc := feedquery.NewService(stateSvc, feedClient, snapshots)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		bridgeSvc.Run(ctx)
	}()

	deps := &transporthttp.Deps{
		State:  stateSvc,
		Bridge: bridgeSvc,
		Feed:   feedSvc,
	}
	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Tracker listening on :%s (env=%s, poll every %s)", cfg.AppPort, cfg.AppEnv, cfg.PollInterval)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Tracker stopped")
}
