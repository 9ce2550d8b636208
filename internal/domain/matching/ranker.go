package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/stylematch/internal/domain/model"
	"github.com/okian/stylematch/pkg/logger"
)

// RankedResult pairs an item with its score.
type RankedResult struct {
	Item  model.Item
	Score ScoreBreakdown
}

// Page selects a window of a ranked list.
type Page struct {
	Offset int
	Limit  int
}

// Filters narrow the candidate set of a match request.
type Filters struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// MatchPage is one page of a user's ranked matches.
type MatchPage struct {
	// UserID is zero for transient subjects.
	UserID int64
	Items  []RankedResult
	// Total counts every qualifying item, not just this page.
	Total int
	// Candidates counts every item scored, qualifying or not.
	Candidates   int
	AverageScore float64
}

// pipeline resolves subjects and builds the scored, filtered, sorted pool
// shared by Ranker and Curator.
type pipeline struct {
	source Source
	cfg    Config
	opts   options
	score  func(model.UserProfile, model.Item, Config, model.RejectionSet) ScoreBreakdown
}

func newPipeline(source Source, cfg Config, opts []Option) (pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return pipeline{}, err
	}
	if source == nil {
		return pipeline{}, fmt.Errorf("%w: nil source", ErrInvalidConfig)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return pipeline{source: source, cfg: cfg, opts: o, score: Score}, nil
}

// resolve returns the profile and rejection set for a subject.
func (p pipeline) resolve(ctx context.Context, s Subject) (model.UserProfile, model.RejectionSet, error) {
	switch sub := s.(type) {
	case StoredUser:
		user, err := p.source.LoadUser(ctx, sub.ID)
		if err != nil {
			return model.UserProfile{}, nil, fmt.Errorf("load user %d: %w", sub.ID, err)
		}
		if !p.cfg.PenalizeRejected {
			return user, nil, nil
		}
		rejected, err := p.source.LoadRejectedItemIDs(ctx, sub.ID)
		if err != nil {
			return model.UserProfile{}, nil, fmt.Errorf("load rejections for user %d: %w", sub.ID, err)
		}
		return user, rejected, nil
	case TransientUser:
		return sub.Profile, nil, nil
	default:
		return model.UserProfile{}, nil, fmt.Errorf("unsupported subject %T", s)
	}
}

// rankAll scores every candidate and returns those at or above the minimum
// score, highest first, with the number of candidates scored. Ties keep
// fetch order.
func (p pipeline) rankAll(ctx context.Context, user model.UserProfile, rejected model.RejectionSet, f Filters) ([]RankedResult, int, error) {
	q := model.CandidateQuery{
		RequireClassification: p.cfg.RequireClassification,
		AllowedGenders:        user.AllowedGenders(),
		Category:              f.Category,
		MinPrice:              f.MinPrice,
		MaxPrice:              f.MaxPrice,
	}
	items, err := p.source.QueryCandidateItems(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("query candidates: %w", err)
	}
	p.opts.logger.Debug(ctx, "scoring candidates",
		logger.Int64("userID", user.ID),
		logger.Int("candidates", len(items)),
	)

	ranked := make([]RankedResult, 0, len(items))
	for _, item := range items {
		b := p.score(user, item, p.cfg, rejected)
		if b.Total >= p.cfg.Filters.MinScore {
			ranked = append(ranked, RankedResult{Item: item, Score: b})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})
	return ranked, len(items), nil
}

// Ranker produces paginated match lists.
type Ranker struct {
	pipeline
}

// NewRanker validates cfg and returns a Ranker reading from source.
func NewRanker(source Source, cfg Config, opts ...Option) (*Ranker, error) {
	p, err := newPipeline(source, cfg, opts)
	if err != nil {
		return nil, err
	}
	return &Ranker{pipeline: p}, nil
}

// Rank scores every candidate for the subject, keeps qualifying items and
// returns the requested page.
func (r *Ranker) Rank(ctx context.Context, s Subject, page Page, f Filters) (MatchPage, error) {
	user, rejected, err := r.resolve(ctx, s)
	if err != nil {
		return MatchPage{}, err
	}
	ranked, scored, err := r.rankAll(ctx, user, rejected, f)
	if err != nil {
		return MatchPage{}, err
	}

	out := MatchPage{
		Total:        len(ranked),
		Candidates:   scored,
		AverageScore: averageScore(ranked),
		Items:        paginate(ranked, page),
	}
	if su, ok := s.(StoredUser); ok {
		out.UserID = su.ID
	}
	return out, nil
}

func averageScore(rs []RankedResult) float64 {
	if len(rs) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rs {
		sum += r.Score.Total
	}
	return sum / float64(len(rs))
}

func paginate(rs []RankedResult, page Page) []RankedResult {
	offset := max(page.Offset, 0)
	if page.Limit <= 0 || offset >= len(rs) {
		return []RankedResult{}
	}
	end := min(offset+page.Limit, len(rs))
	return rs[offset:end]
}
