package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fortuna/ceres/internal/app"
	"github.com/fortuna/ceres/internal/backfill"
	"github.com/fortuna/ceres/internal/config"
	"github.com/fortuna/ceres/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	appName    = "ceres-backfill"
	appVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var (
		season    = flag.String("season", "", "Season to backfill (e.g., 2024-25)")
		startDate = flag.String("start", cfg.SeasonStart, "Start date (YYYY-MM-DD)")
		endDate   = flag.String("end", cfg.SeasonEnd, "End date (YYYY-MM-DD)")
		gameID    = flag.String("game", "", "Single contest id to re-run")
		divisions = flag.String("division", "", "Comma separated divisions (default from config)")
		sport     = flag.String("sport", cfg.Sport, "Sport code (MBB or WBB)")
		dir       = flag.String("dir", cfg.CheckpointDir, "CSV checkpoint directory")
		dryRun    = flag.Bool("dry-run", false, "Dry run (do not fetch or write)")
	)
	flag.Parse()

	cfg.Sport = *sport
	cfg.CheckpointDir = *dir
	if *divisions != "" {
		ds, err := parseDivisions(*divisions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -division: %v\n", err)
			os.Exit(2)
		}
		cfg.Divisions = ds
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.WithFields(logrus.Fields{"app": appName, "version": appVersion}).Info("Starting backfill")

	if *season == "" && *startDate == "" && *gameID == "" {
		log.Fatal("Specify -season, -start/-end, or -game")
	}

	spec, err := buildSpec(*season, *startDate, *endDate, *gameID)
	if err != nil {
		log.WithError(err).Fatal("Invalid job")
	}
	spec.Sport = cfg.Sport
	spec.Divisions = cfg.Divisions
	spec.DryRun = *dryRun

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialise")
	}
	defer a.Close()

	reporter := &consoleReporter{log: log, dryRun: *dryRun}
	if _, err := a.Runner.Run(ctx, spec, reporter); err != nil {
		a.Close()
		log.WithError(err).Fatal("Backfill failed")
	}

	log.Info("Backfill completed successfully")
}

func buildSpec(season, startStr, endStr, gameID string) (backfill.JobSpec, error) {
	var spec backfill.JobSpec

	switch {
	case gameID != "":
		spec.Type = backfill.JobTypeGame
		spec.GameIDs = []string{gameID}
	case season != "":
		start, end, err := backfill.SeasonWindow(season)
		if err != nil {
			return spec, err
		}
		spec.Type = backfill.JobTypeSeason
		spec.Start, spec.End = start, end
	case startStr != "" && endStr != "":
		spec.Type = backfill.JobTypeDateRange
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return spec, fmt.Errorf("invalid start date: %w", err)
		}
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return spec, fmt.Errorf("invalid end date: %w", err)
		}
		spec.Start = start
		spec.End = end
	default:
		return spec, fmt.Errorf("unable to determine job type")
	}

	return spec, nil
}

func parseDivisions(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

type consoleReporter struct {
	log    logrus.FieldLogger
	dryRun bool
}

func (c *consoleReporter) OnJobStart(spec backfill.JobSpec) {
	c.log.WithFields(logrus.Fields{
		"job_type":  spec.Type,
		"run_id":    spec.ID,
		"divisions": spec.Divisions,
		"dry_run":   c.dryRun,
	}).Info("Starting job")
}

func (c *consoleReporter) OnDateStart(date time.Time, index int, total int) {
	c.log.Infof("[%d/%d] %s", index+1, total, date.Format("2006-01-02"))
}

func (c *consoleReporter) OnGameProcessed(gameID string, outcome string) {
	c.log.WithFields(logrus.Fields{"game_id": gameID, "outcome": outcome}).Info("Processed game")
}

func (c *consoleReporter) OnProgress(message string, current int, total int) {
	c.log.Debugf("Progress: %s (%d/%d)", message, current, total)
}

func (c *consoleReporter) OnJobComplete(s backfill.Summary) {
	c.log.WithFields(logrus.Fields{
		"dates":         s.Dates,
		"dates_skipped": s.DatesSkipped,
		"games":         s.Games,
		"timelines":     s.Timelines,
		"fallbacks":     s.Fallbacks,
		"skipped":       s.Skipped,
	}).Info("Job complete")
}

func (c *consoleReporter) OnJobError(err error) {
	c.log.WithError(err).Error("Job error")
}
