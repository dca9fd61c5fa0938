package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/fortuna/ceres/internal/app"
	"github.com/fortuna/ceres/internal/config"
	"github.com/fortuna/ceres/internal/store"
	"github.com/fortuna/ceres/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var (
		division = flag.Int("division", 1, "Division to rate (1, 2 or 3)")
		sport    = flag.String("sport", cfg.Sport, "Sport code (MBB or WBB)")
		dir      = flag.String("dir", cfg.CheckpointDir, "CSV checkpoint directory")
		latest   = flag.Bool("latest", false, "Print the last stored run instead of computing one")
		top      = flag.Int("top", 0, "Only print the first N teams")
		asJSON   = flag.Bool("json", false, "Print JSON instead of a table")
	)
	flag.Parse()

	cfg.Sport = *sport
	cfg.CheckpointDir = *dir
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialise")
	}
	defer a.Close()

	var run store.RatingRun
	if *latest {
		run, err = a.Ratings.Latest(ctx, *division)
	} else {
		run, err = a.Ratings.Rate(ctx, *division)
	}
	if err != nil {
		a.Close()
		log.WithError(err).Fatal("Rating failed")
	}

	if *top > 0 && *top < len(run.Results) {
		run.Results = run.Results[:*top]
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(run); err != nil {
			log.WithError(err).Fatal("Encoding failed")
		}
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Rank\tTeam\tGames\tAdjO\tAdjD\tAdjEM\t")
	for _, r := range run.Results {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.4f\t%.4f\t%.4f\t\n", r.Rank, r.Team, r.Games, r.AdjO, r.AdjD, r.AdjEM)
	}
	tw.Flush()
}
