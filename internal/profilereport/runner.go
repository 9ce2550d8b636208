package profilereport

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/stylematch/pkg/logger"
)

// Run previews every profile concurrently and writes the comparison
// report to w. Results keep the order of profiles.
func Run(ctx context.Context, cfg *Config, profiles []Profile, w io.Writer) error {
	log := logger.Get()
	start := time.Now()
	log.Info(ctx, "starting profile report",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("profiles", len(profiles)),
		logger.Int("workers", cfg.Workers),
		logger.Int("topN", cfg.TopN),
	)

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	if err := client.checkHealth(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	results := make([]ProfileResult, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, p := range profiles {
		i, p := i, p // per-iteration copies (go 1.21 loop semantics)
		p.Limit = cfg.Limit
		g.Go(func() error {
			page, err := client.preview(gctx, p)
			if err != nil {
				return err
			}
			results[i] = ProfileResult{Profile: p, Page: page}
			log.Debug(gctx, "profile scored",
				logger.String("profile", p.Name),
				logger.Int("total", page.Total),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("profile preview failed: %w", err)
	}

	if err := WriteReport(w, results, cfg.TopN); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Info(ctx, "profile report completed", logger.Duration("elapsed", time.Since(start)))
	return nil
}
