// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/stylematch/internal/adapters/repository"
	"github.com/okian/stylematch/internal/domain/matching"
	"github.com/okian/stylematch/internal/domain/model"
	"github.com/okian/stylematch/pkg/logger"
	"github.com/okian/stylematch/pkg/metrics"
)

// Sentinel errors returned by the service.
var (
	ErrNotStarted = errors.New("service not started")
	ErrNoStore    = errors.New("no catalog store configured")
)

// BatchResult is the outcome of curating one user in a batch.
type BatchResult struct {
	UserID     int64
	Collection matching.CuratedCollection
	Err        error
}

// Service implements the API dependencies for the matching system.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	ranker  *matching.Ranker
	curator *matching.Curator

	cfg          matching.Config
	batchWorkers int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the catalog store the service reads from. The service
// closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithMatchingConfig sets the scoring and curation configuration.
func WithMatchingConfig(cfg matching.Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithBatchWorkers bounds concurrent curations in CurateBatch.
func WithBatchWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchWorkers = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:          matching.DefaultConfig(),
		batchWorkers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates the configuration and builds the ranker and curator.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		return ErrNoStore
	}

	s.logger.Info(ctx, "starting matching service...")

	ranker, err := matching.NewRanker(s.store, s.cfg, matching.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("build ranker: %w", err)
	}
	curator, err := matching.NewCurator(s.store, s.cfg, matching.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("build curator: %w", err)
	}
	s.ranker, s.curator = ranker, curator

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("batchWorkers", s.batchWorkers),
		logger.Float64("minScore", s.cfg.Filters.MinScore),
		logger.Bool("penalizeRejected", s.cfg.PenalizeRejected),
	)
	return nil
}

// Stop closes the catalog store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping matching service...")
	if err := s.store.Close(); err != nil {
		s.logger.Warn(ctx, "closing catalog store", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "matching service stopped")
}

func (s *Service) components() (*matching.Ranker, *matching.Curator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.ranker, s.curator, nil
}

// GetMatches returns a page of ranked matches for a stored user.
func (s *Service) GetMatches(ctx context.Context, userID int64, page matching.Page, f matching.Filters) (matching.MatchPage, error) {
	ranker, _, err := s.components()
	if err != nil {
		return matching.MatchPage{}, err
	}
	start := time.Now()
	out, err := ranker.Rank(ctx, matching.StoredUser{ID: userID}, page, f)
	s.observe(ctx, metrics.OpRank, start, err)
	if err != nil {
		return matching.MatchPage{}, err
	}
	metrics.RecordMatchResult(out.Candidates, out.Total, out.AverageScore)
	return out, nil
}

// PreviewMatches ranks the catalog for a profile that is not stored.
func (s *Service) PreviewMatches(ctx context.Context, profile model.UserProfile, page matching.Page, f matching.Filters) (matching.MatchPage, error) {
	ranker, _, err := s.components()
	if err != nil {
		return matching.MatchPage{}, err
	}
	start := time.Now()
	out, err := ranker.Rank(ctx, matching.TransientUser{Profile: profile}, page, f)
	s.observe(ctx, metrics.OpPreview, start, err)
	if err != nil {
		return matching.MatchPage{}, err
	}
	metrics.RecordMatchResult(out.Candidates, out.Total, out.AverageScore)
	return out, nil
}

// GetCuratedCollection builds a curated collection for a stored user.
// maxProducts <= 0 selects the configured size.
func (s *Service) GetCuratedCollection(ctx context.Context, userID int64, maxProducts int) (matching.CuratedCollection, error) {
	_, curator, err := s.components()
	if err != nil {
		return matching.CuratedCollection{}, err
	}
	start := time.Now()
	c, err := s.curate(ctx, curator, userID, maxProducts)
	s.observe(ctx, metrics.OpCurate, start, err)
	return c, err
}

func (s *Service) curate(ctx context.Context, curator *matching.Curator, userID int64, maxProducts int) (matching.CuratedCollection, error) {
	c, err := curator.Curate(ctx, matching.StoredUser{ID: userID}, maxProducts)
	if err != nil {
		return matching.CuratedCollection{}, err
	}
	metrics.RecordCollection(len(c.Items), c.Relaxed)
	if len(c.Items) < s.cfg.Curation.MinProducts {
		metrics.RecordCurationBelowMinimum()
	}
	return c, nil
}

// ExplainMatch explains how an item scores for a stored user, including any
// rejection penalty.
func (s *Service) ExplainMatch(ctx context.Context, userID, itemID int64) (matching.Explanation, error) {
	if _, _, err := s.components(); err != nil {
		return matching.Explanation{}, err
	}
	start := time.Now()
	e, err := s.explain(ctx, userID, itemID)
	s.observe(ctx, metrics.OpExplain, start, err)
	return e, err
}

func (s *Service) explain(ctx context.Context, userID, itemID int64) (matching.Explanation, error) {
	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return matching.Explanation{}, fmt.Errorf("load user %d: %w", userID, err)
	}
	item, err := s.store.LoadItem(ctx, itemID)
	if err != nil {
		return matching.Explanation{}, fmt.Errorf("load item %d: %w", itemID, err)
	}
	var rejected model.RejectionSet
	if s.cfg.PenalizeRejected {
		rejected, err = s.store.LoadRejectedItemIDs(ctx, userID)
		if err != nil {
			return matching.Explanation{}, fmt.Errorf("load rejections for user %d: %w", userID, err)
		}
	}
	return matching.Explain(user, item, s.cfg, rejected), nil
}

// CurateBatch curates collections for several users concurrently, bounded
// by the configured batch workers. Results follow the order of userIDs; a
// failed user carries its error without aborting the rest. The returned
// error is non-nil only when ctx ends first.
func (s *Service) CurateBatch(ctx context.Context, userIDs []int64, maxProducts int) ([]BatchResult, error) {
	_, curator, err := s.components()
	if err != nil {
		return nil, err
	}
	start := time.Now()

	results := make([]BatchResult, len(userIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)
	for i, id := range userIDs {
		i, id := i, id // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			metrics.AddBatchInFlight(1)
			defer metrics.AddBatchInFlight(-1)

			c, err := s.curate(gctx, curator, id, maxProducts)
			results[i] = BatchResult{UserID: id, Collection: c, Err: err}
			if err != nil {
				s.logger.Warn(gctx, "batch curation failed",
					logger.Int64("userID", id), logger.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	err = ctx.Err()
	s.observe(ctx, metrics.OpBatch, start, err)
	s.logger.Info(ctx, "batch curation finished",
		logger.Int("users", len(userIDs)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return results, err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":               s.started,
		"batchWorkers":          s.batchWorkers,
		"minScore":              s.cfg.Filters.MinScore,
		"requireClassification": s.cfg.RequireClassification,
		"penalizeRejected":      s.cfg.PenalizeRejected,
		"weights": map[string]float64{
			"aesthetic": s.cfg.Weights.Aesthetic,
			"palette":   s.cfg.Weights.Palette,
			"vibe":      s.cfg.Weights.Vibe,
		},
	}

	if counter, ok := s.store.(interface{ Counts() (int, int) }); ok && s.started {
		users, items := counter.Counts()
		stats["totalUsers"] = users
		stats["totalItems"] = items
		metrics.UpdateCatalogSize(users, items)
	}
	return stats
}

func (s *Service) observe(ctx context.Context, op string, start time.Time, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, model.ErrUserNotFound), errors.Is(err, model.ErrItemNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeError
		metrics.RecordErrorByComponent("service", op)
		s.logger.Error(ctx, "matching request failed", logger.String("op", op), logger.Error(err))
	}
	metrics.RecordMatchRequest(op, outcome, float64(time.Since(start).Microseconds())/1000)
}
