package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/stylematch/internal/profilereport"
	"github.com/okian/stylematch/pkg/logger"
)

// Default configuration constants.
const (
	defaultLimit     = 100
	defaultTopN      = 20
	defaultWorkers   = 4
	defaultTimeout   = 30 * time.Second
	defaultRunBudget = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		limit   = flag.Int("limit", defaultLimit, "Products requested per profile")
		topN    = flag.Int("top", defaultTopN, "Window used for the cross-profile overlap")
		workers = flag.Int("workers", defaultWorkers, "Concurrent preview requests")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		profilereport.ShowHelp(os.Stdout)
		return
	}

	if err := logger.Init(logger.WithFormat(logger.FormatConsole)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunBudget)
	defer cancel()

	cfg := &profilereport.Config{
		BaseURL: *baseURL,
		Limit:   *limit,
		TopN:    *topN,
		Workers: *workers,
		Timeout: *timeout,
	}
	if err := profilereport.Run(ctx, cfg, profilereport.SampleProfiles(), os.Stdout); err != nil {
		logger.Get().Error(ctx, "profile report failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
