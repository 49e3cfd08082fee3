package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cocacoran-1/kanji/internal/app"
	kanjirepo "github.com/cocacoran-1/kanji/internal/data/repos/kanji"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
	"github.com/cocacoran-1/kanji/internal/services"
)

func main() {
	var (
		policy   string
		gate     string
		dataPath string
		reset    bool
		dryRun   bool
	)
	flag.StringVar(&policy, "policy", "", "conflict policy: overwrite or skip (default SEED_CONFLICT_POLICY)")
	flag.StringVar(&gate, "gate", "", "seed gate: always or count (default SEED_GATE)")
	flag.StringVar(&dataPath, "data", "", "dataset path or gs:// URI (default KANJI_DATA_PATH)")
	flag.BoolVar(&reset, "reset", false, "drop and recreate the kanji table before seeding")
	flag.BoolVar(&dryRun, "dry-run", false, "load and validate the dataset without writing rows")
	flag.Parse()
	if reset && dryRun {
		fmt.Println("-reset and -dry-run cannot be combined")
		os.Exit(2)
	}

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}

	cfg := app.LoadConfig(log)
	if policy != "" {
		p, err := kanjirepo.ParseConflictPolicy(policy)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		cfg.Seed.Policy = p
	}
	if gate != "" {
		g, err := services.ParseSeedGate(gate)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		cfg.Seed.Gate = g
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	cfg.DBReset = cfg.DBReset || reset
	cfg.Seed.DryRun = dryRun

	ctx := context.Background()
	application, err := app.NewWithConfig(ctx, log, cfg)
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if len(application.Entries) == 0 {
		fmt.Printf("no kanji entries loaded from %s\n", cfg.DataPath)
		application.Close()
		os.Exit(1)
	}

	report, err := application.Bootstrap(ctx)
	if err != nil {
		fmt.Printf("seed failed after %d of %d entries: %v\n", report.Applied, report.Total, err)
		application.Close()
		os.Exit(1)
	}
	if report.Skipped {
		fmt.Printf("done; skipped (%s), entries=%d\n", report.Reason, report.Total)
		return
	}
	fmt.Printf("done; applied=%d policy=%s\n", report.Applied, cfg.Seed.Policy)
}
