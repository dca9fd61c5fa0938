package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/ceres/internal/api/rest"
	"github.com/fortuna/ceres/internal/app"
	"github.com/fortuna/ceres/internal/backfill"
	"github.com/fortuna/ceres/internal/config"
	"github.com/fortuna/ceres/internal/scheduler"
	"github.com/fortuna/ceres/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	serviceName    = "ceres"
	serviceVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.WithFields(logrus.Fields{"service": serviceName, "version": serviceVersion}).Info("Starting service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialise")
	}
	defer a.Close()

	// Backfill jobs submitted through the API
	backfillService := backfill.NewService(a.Runner, cfg.Sport, log)
	backfillService.Start()

	schedCfg := scheduler.DefaultConfig()
	schedCfg.Schedule = cfg.Schedule
	schedCfg.Sport = cfg.Sport
	schedCfg.Divisions = cfg.Divisions
	sched, err := scheduler.NewOrchestrator(a.Runner, a.Ratings, schedCfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create scheduler")
	}
	sched.Start()

	health := map[string]rest.HealthChecker{}
	if a.Database != nil {
		health["database"] = a.Database
	}
	if a.Cache != nil {
		health["redis"] = a.Cache
	}

	restServer := rest.NewServer(cfg.HTTPAddr, rest.Deps{
		Games:     a.Games,
		Ratings:   a.Ratings,
		Backfill:  backfillService,
		Scheduler: sched,
		Metrics:   a.Metrics,
		Health:    health,
		Log:       log,
	})
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("REST API listening")
		if err := restServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("REST server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("REST API server shutdown error")
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("Scheduler shutdown error")
	}
	if err := backfillService.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Backfill shutdown error")
	}

	log.Info("Ceres stopped")
}
