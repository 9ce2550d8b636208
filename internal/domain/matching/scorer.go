package matching

import (
	"math"

	"github.com/okian/stylematch/internal/domain/model"
)

const partialCredit = 0.5

// Score computes how well item fits user. It is pure: no I/O, no shared
// mutable state, and the same inputs always produce the same breakdown.
//
// Order is fixed: silhouette filter, classification gate, the three
// dimensions, brand affinity, newness, rejection penalty, cap at 100.
func Score(user model.UserProfile, item model.Item, cfg Config, rejected model.RejectionSet) ScoreBreakdown {
	b := zeroBreakdown(cfg)

	if !SilhouetteAllows(user, item.Gender) {
		return b
	}

	tags := item.Classification
	if tags == nil {
		b.MissingData = true
		if cfg.RequireClassification {
			return b
		}
	}

	b.Aesthetic = scoreAesthetic(user.Aesthetic, tags, cfg.Weights.Aesthetic)
	b.Palette = scorePalette(user.Palette, tags, cfg.Weights.Palette)
	b.Vibe = scoreVibe(user.Vibe, tags, cfg.Weights.Vibe)
	b.Base = b.Aesthetic.Points + b.Palette.Points + b.Vibe.Points

	total := b.Base
	if user.Follows(item.Brand) {
		boosted := total * cfg.Weights.BrandAffinity
		b.Bonuses[BonusBrandAffinity] = boosted - total
		total = boosted
	}
	if item.IsNew {
		boosted := total * cfg.Weights.Newness
		b.Bonuses[BonusNewness] = boosted - total
		total = boosted
	}
	if cfg.PenalizeRejected && rejected.Contains(item.ID) {
		total = math.Max(0, total-cfg.RejectionPenalty)
		b.Penalties[PenaltyRejected] = cfg.RejectionPenalty
	}

	b.Total = math.Min(total, maxScore)
	b.Quality = cfg.Filters.Quality(b.Total)
	return b
}

// SilhouetteAllows applies the hard gender filter. Items that declare no
// gender, or declare unisex, always pass.
func SilhouetteAllows(user model.UserProfile, gender model.Gender) bool {
	required, restricted := user.RequiredGender()
	if !restricted || gender == "" || gender == model.GenderUnisex {
		return true
	}
	return gender == required
}

func zeroBreakdown(cfg Config) ScoreBreakdown {
	return ScoreBreakdown{
		Aesthetic: DimensionScore{Max: cfg.Weights.Aesthetic},
		Palette:   DimensionScore{Max: cfg.Weights.Palette},
		Vibe:      DimensionScore{Max: cfg.Weights.Vibe},
		Bonuses:   map[string]float64{},
		Penalties: map[string]float64{},
		Quality:   QualityPoor,
	}
}

// Aesthetics earn all or nothing.
func scoreAesthetic(want model.Aesthetic, tags *model.Classification, weight float64) DimensionScore {
	d := DimensionScore{Max: weight}
	if want != "" && tags.HasAesthetic(want) {
		d.Points = weight
		d.Matched = string(want)
	}
	return d
}

func scorePalette(want model.Palette, tags *model.Classification, weight float64) DimensionScore {
	d := DimensionScore{Max: weight}
	if want == "" || !tags.HasPalette() {
		return d
	}
	switch got := tags.Palette; {
	case got == want:
		d.Points = weight
		d.Matched = string(got)
	case PaletteCompatible(want, got):
		d.Points = weight * partialCredit
		d.Matched = string(got)
		d.Partial = true
	}
	return d
}

func scoreVibe(want model.Vibe, tags *model.Classification, weight float64) DimensionScore {
	d := DimensionScore{Max: weight}
	if want == "" || !tags.HasVibes() {
		return d
	}
	if tags.HasVibe(want) {
		d.Points = weight
		d.Matched = string(want)
		return d
	}
	if v, ok := firstCompatibleVibe(want, tags.Vibes); ok {
		d.Points = weight * partialCredit
		d.Matched = string(v)
		d.Partial = true
	}
	return d
}
