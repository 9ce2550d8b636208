package matching

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/okian/stylematch/pkg/logger"
)

// CollectionStats summarizes a curated collection.
type CollectionStats struct {
	TotalItems   int
	Categories   map[string]int
	Brands       map[string]int
	PriceTiers   map[string]int
	AverageScore float64
	MinScore     float64
	MaxScore     float64
}

// CuratedCollection is a diverse, visually ordered selection of a user's
// best matches.
type CuratedCollection struct {
	ID     string
	UserID int64
	Items  []RankedResult
	// Relaxed is set when diversity caps had to be exceeded to reach the
	// target size.
	Relaxed   bool
	CreatedAt time.Time
	Stats     CollectionStats
}

// Curator builds curated collections.
type Curator struct {
	pipeline
}

// NewCurator validates cfg and returns a Curator reading from source.
func NewCurator(source Source, cfg Config, opts ...Option) (*Curator, error) {
	p, err := newPipeline(source, cfg, opts)
	if err != nil {
		return nil, err
	}
	return &Curator{pipeline: p}, nil
}

// Curate selects up to maxProducts items for the subject (the configured
// maximum when maxProducts <= 0). A pool smaller than the configured
// minimum is returned as is.
func (c *Curator) Curate(ctx context.Context, s Subject, maxProducts int) (CuratedCollection, error) {
	rules := c.cfg.Curation
	target := rules.MaxProducts
	if maxProducts > 0 {
		target = maxProducts
	}

	user, rejected, err := c.resolve(ctx, s)
	if err != nil {
		return CuratedCollection{}, err
	}
	pool, _, err := c.rankAll(ctx, user, rejected, Filters{})
	if err != nil {
		return CuratedCollection{}, err
	}
	if limit := target * rules.OversampleFactor; len(pool) > limit {
		pool = pool[:limit]
	}

	out := CuratedCollection{
		ID:        c.opts.newID(),
		CreatedAt: c.opts.now(),
	}
	if su, ok := s.(StoredUser); ok {
		out.UserID = su.ID
	}

	if len(pool) < rules.MinProducts {
		c.opts.logger.Warn(ctx, "candidate pool below minimum collection size",
			logger.Int64("userID", out.UserID),
			logger.Int("pool", len(pool)),
			logger.Int("minProducts", rules.MinProducts),
		)
		out.Items = pool
		out.Stats = summarize(pool)
		return out, nil
	}

	selected, relaxed := selectDiverse(pool, target, rules)
	out.Items = arrange(selected)
	out.Relaxed = relaxed
	out.Stats = summarize(out.Items)
	return out, nil
}

// capFor returns the per-key limit for a target size and fraction.
func capFor(target int, fraction float64) int {
	return max(1, int(math.Floor(float64(target)*fraction)))
}

// selectDiverse admits pool items (already sorted by score) greedily under
// per-category and per-brand caps. If that leaves the selection short, the
// deferred items fill the gap ordered by how represented their category was
// when the greedy pass ended, then by score.
func selectDiverse(pool []RankedResult, target int, rules CurationRules) ([]RankedResult, bool) {
	maxPerCategory := capFor(target, rules.MaxCategoryFraction)
	maxPerBrand := capFor(target, rules.MaxBrandFraction)

	selected := make([]RankedResult, 0, target)
	var deferred []RankedResult
	categoryCounts := map[string]int{}
	brandCounts := map[string]int{}

	for _, r := range pool {
		if len(selected) >= target {
			break
		}
		cat, brand := r.Item.CategoryKey(), r.Item.BrandKey()
		if categoryCounts[cat] >= maxPerCategory || brandCounts[brand] >= maxPerBrand {
			deferred = append(deferred, r)
			continue
		}
		selected = append(selected, r)
		categoryCounts[cat]++
		brandCounts[brand]++
	}

	if len(selected) >= target || len(deferred) == 0 {
		return selected, false
	}

	// Counts are frozen here; the fill below does not update them.
	sort.SliceStable(deferred, func(i, j int) bool {
		ci, cj := categoryCounts[deferred[i].Item.CategoryKey()], categoryCounts[deferred[j].Item.CategoryKey()]
		if ci != cj {
			return ci < cj
		}
		return deferred[i].Score.Total > deferred[j].Score.Total
	})
	for _, r := range deferred {
		if len(selected) >= target {
			break
		}
		selected = append(selected, r)
	}
	return selected, true
}

// arrange puts the highest-scoring item first, then avoids placing two
// items of the same category next to each other where possible.
func arrange(items []RankedResult) []RankedResult {
	if len(items) <= 2 {
		return append([]RankedResult(nil), items...)
	}

	hero := 0
	for i, r := range items {
		if r.Score.Total > items[hero].Score.Total {
			hero = i
		}
	}

	out := make([]RankedResult, 0, len(items))
	out = append(out, items[hero])
	remaining := make([]RankedResult, 0, len(items)-1)
	remaining = append(remaining, items[:hero]...)
	remaining = append(remaining, items[hero+1:]...)

	for len(remaining) > 0 {
		last := out[len(out)-1].Item.CategoryKey()
		pick := 0
		for i, r := range remaining {
			if r.Item.CategoryKey() != last {
				pick = i
				break
			}
		}
		out = append(out, remaining[pick])
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return out
}

func summarize(items []RankedResult) CollectionStats {
	s := CollectionStats{
		TotalItems: len(items),
		Categories: map[string]int{},
		Brands:     map[string]int{},
		PriceTiers: map[string]int{},
	}
	if len(items) == 0 {
		return s
	}
	s.MinScore = items[0].Score.Total
	s.MaxScore = items[0].Score.Total
	var sum float64
	for _, r := range items {
		s.Categories[r.Item.CategoryKey()]++
		s.Brands[r.Item.BrandKey()]++
		s.PriceTiers[r.Item.PriceTierKey()]++
		sum += r.Score.Total
		s.MinScore = math.Min(s.MinScore, r.Score.Total)
		s.MaxScore = math.Max(s.MaxScore, r.Score.Total)
	}
	s.AverageScore = sum / float64(len(items))
	return s
}
