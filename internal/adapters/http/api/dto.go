package api

import (
	"math"
	"time"

	service "github.com/okian/stylematch/internal/app"
	"github.com/okian/stylematch/internal/domain/matching"
	"github.com/okian/stylematch/internal/domain/model"
)

// round1 rounds to one decimal place for presentation.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundAll(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = round1(v)
	}
	return out
}

type dimensionDTO struct {
	Points  float64 `json:"points"`
	Max     float64 `json:"max"`
	Matched string  `json:"matched,omitempty"`
	Partial bool    `json:"partial"`
}

type dimensionsDTO struct {
	Aesthetic dimensionDTO `json:"aesthetic"`
	Palette   dimensionDTO `json:"palette"`
	Vibe      dimensionDTO `json:"vibe"`
}

type breakdownDTO struct {
	Total       float64            `json:"total"`
	Base        float64            `json:"base"`
	Breakdown   dimensionsDTO      `json:"breakdown"`
	Bonuses     map[string]float64 `json:"bonuses"`
	Penalties   map[string]float64 `json:"penalties"`
	Quality     string             `json:"quality"`
	MissingData bool               `json:"missingData"`
}

func toDimension(d matching.DimensionScore) dimensionDTO {
	return dimensionDTO{
		Points:  round1(d.Points),
		Max:     round1(d.Max),
		Matched: d.Matched,
		Partial: d.Partial,
	}
}

func toBreakdown(b matching.ScoreBreakdown) breakdownDTO {
	return breakdownDTO{
		Total: round1(b.Total),
		Base:  round1(b.Base),
		Breakdown: dimensionsDTO{
			Aesthetic: toDimension(b.Aesthetic),
			Palette:   toDimension(b.Palette),
			Vibe:      toDimension(b.Vibe),
		},
		Bonuses:     roundAll(b.Bonuses),
		Penalties:   roundAll(b.Penalties),
		Quality:     string(b.Quality),
		MissingData: b.MissingData,
	}
}

type productDTO struct {
	ID           int64                 `json:"id"`
	Brand        string                `json:"brand"`
	Name         string                `json:"name"`
	Price        float64               `json:"price"`
	Currency     string                `json:"currency,omitempty"`
	URL          string                `json:"url,omitempty"`
	Category     string                `json:"category,omitempty"`
	Gender       string                `json:"gender,omitempty"`
	Availability string                `json:"availability"`
	IsNew        bool                  `json:"isNew"`
	FirstSeen    *time.Time            `json:"firstSeen,omitempty"`
	AITags       *model.Classification `json:"aiTags"`
}

type rankedProductDTO struct {
	productDTO
	MatchScore     float64      `json:"matchScore"`
	MatchQuality   string       `json:"matchQuality"`
	MatchBreakdown breakdownDTO `json:"matchBreakdown"`
	Position       int          `json:"position,omitempty"`
}

func toProduct(it model.Item) productDTO {
	p := productDTO{
		ID:           it.ID,
		Brand:        it.Brand,
		Name:         it.Name,
		Price:        it.Price,
		Currency:     it.Currency,
		URL:          it.URL,
		Category:     it.Category,
		Gender:       string(it.Gender),
		Availability: it.Availability,
		IsNew:        it.IsNew,
		AITags:       it.Classification,
	}
	if !it.FirstSeen.IsZero() {
		t := it.FirstSeen
		p.FirstSeen = &t
	}
	return p
}

// toRanked converts results; positioned results are numbered from 1.
func toRanked(rs []matching.RankedResult, positioned bool) []rankedProductDTO {
	out := make([]rankedProductDTO, len(rs))
	for i, r := range rs {
		out[i] = rankedProductDTO{
			productDTO:     toProduct(r.Item),
			MatchScore:     round1(r.Score.Total),
			MatchQuality:   string(r.Score.Quality),
			MatchBreakdown: toBreakdown(r.Score),
		}
		if positioned {
			out[i].Position = i + 1
		}
	}
	return out
}

type matchesResponse struct {
	UserID       int64              `json:"userId,omitempty"`
	Products     []rankedProductDTO `json:"products"`
	Total        int                `json:"total"`
	Limit        int                `json:"limit"`
	Offset       int                `json:"offset"`
	AverageScore float64            `json:"averageScore"`
}

func toMatches(p matching.MatchPage, page matching.Page) matchesResponse {
	return matchesResponse{
		UserID:       p.UserID,
		Products:     toRanked(p.Items, false),
		Total:        p.Total,
		Limit:        page.Limit,
		Offset:       page.Offset,
		AverageScore: round1(p.AverageScore),
	}
}

type zineMetadataDTO struct {
	TotalProducts int            `json:"totalProducts"`
	Categories    map[string]int `json:"categories"`
	Brands        map[string]int `json:"brands"`
	PriceTiers    map[string]int `json:"priceTiers"`
	AverageScore  float64        `json:"averageScore"`
	ScoreRange    []float64      `json:"scoreRange"`
	Relaxed       bool           `json:"relaxed"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type zineResponse struct {
	ID       string             `json:"id"`
	UserID   int64              `json:"userId"`
	Products []rankedProductDTO `json:"products"`
	Metadata zineMetadataDTO    `json:"metadata"`
}

func toZine(c matching.CuratedCollection) zineResponse {
	scoreRange := []float64{}
	if c.Stats.TotalItems > 0 {
		scoreRange = []float64{round1(c.Stats.MinScore), round1(c.Stats.MaxScore)}
	}
	return zineResponse{
		ID:       c.ID,
		UserID:   c.UserID,
		Products: toRanked(c.Items, true),
		Metadata: zineMetadataDTO{
			TotalProducts: c.Stats.TotalItems,
			Categories:    c.Stats.Categories,
			Brands:        c.Stats.Brands,
			PriceTiers:    c.Stats.PriceTiers,
			AverageScore:  round1(c.Stats.AverageScore),
			ScoreRange:    scoreRange,
			Relaxed:       c.Relaxed,
			CreatedAt:     c.CreatedAt,
		},
	}
}

type batchEntryDTO struct {
	UserID int64          `json:"userId"`
	Zine   *zineResponse  `json:"zine,omitempty"`
	Error  *errorResponse `json:"error,omitempty"`
}

type batchResponse struct {
	Results   []batchEntryDTO `json:"results"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
}

func toBatch(results []service.BatchResult) batchResponse {
	out := batchResponse{Results: make([]batchEntryDTO, len(results))}
	for i, r := range results {
		out.Results[i].UserID = r.UserID
		if r.Err != nil {
			_, code := classify(r.Err)
			out.Results[i].Error = &errorResponse{Code: code, Message: r.Err.Error()}
			out.Failed++
			continue
		}
		z := toZine(r.Collection)
		out.Results[i].Zine = &z
		out.Succeeded++
	}
	return out
}

type productSummaryDTO struct {
	Aesthetics []model.Aesthetic `json:"aesthetics"`
	Palette    model.Palette     `json:"palette"`
	Vibes      []model.Vibe      `json:"vibes"`
	Category   model.Category    `json:"category"`
	PriceTier  model.PriceTier   `json:"priceTier"`
}

type userSummaryDTO struct {
	Aesthetic      model.Aesthetic  `json:"aesthetic"`
	Palette        model.Palette    `json:"palette"`
	Vibe           model.Vibe       `json:"vibe"`
	Silhouette     model.Silhouette `json:"silhouette"`
	FollowedBrands []string         `json:"followedBrands"`
}

type explanationResponse struct {
	Score          float64           `json:"score"`
	Quality        string            `json:"quality"`
	Reasons        []string          `json:"reasons"`
	Misses         []string          `json:"misses"`
	Breakdown      breakdownDTO      `json:"breakdown"`
	ProductSummary productSummaryDTO `json:"productSummary"`
	UserSummary    userSummaryDTO    `json:"userSummary"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func toExplanation(e matching.Explanation) explanationResponse {
	return explanationResponse{
		Score:     round1(e.Score),
		Quality:   string(e.Quality),
		Reasons:   nonNil(e.Reasons),
		Misses:    nonNil(e.Misses),
		Breakdown: toBreakdown(e.Breakdown),
		ProductSummary: productSummaryDTO{
			Aesthetics: nonNil(e.Item.Aesthetics),
			Palette:    e.Item.Palette,
			Vibes:      nonNil(e.Item.Vibes),
			Category:   e.Item.Category,
			PriceTier:  e.Item.PriceTier,
		},
		UserSummary: userSummaryDTO{
			Aesthetic:      e.User.Aesthetic,
			Palette:        e.User.Palette,
			Vibe:           e.User.Vibe,
			Silhouette:     e.User.Silhouette,
			FollowedBrands: nonNil(e.User.FollowedBrands),
		},
	}
}
