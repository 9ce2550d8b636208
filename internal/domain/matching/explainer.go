package matching

import (
	"fmt"
	"strings"

	"github.com/okian/stylematch/internal/domain/model"
)

// ItemSummary is the classification of an item as shown to a user.
type ItemSummary struct {
	Aesthetics []model.Aesthetic
	Palette    model.Palette
	Vibes      []model.Vibe
	Category   model.Category
	PriceTier  model.PriceTier
}

// UserSummary is the subset of a profile that drives matching.
type UserSummary struct {
	Aesthetic      model.Aesthetic
	Palette        model.Palette
	Vibe           model.Vibe
	Silhouette     model.Silhouette
	FollowedBrands []string
}

// Explanation tells a user why an item scored the way it did.
type Explanation struct {
	Score     float64
	Quality   Quality
	Reasons   []string
	Misses    []string
	Breakdown ScoreBreakdown
	Item      ItemSummary
	User      UserSummary
}

// Explain re-scores item for user and renders the result as reasons (what
// matched) and misses (what did not). A silhouette exclusion is reported in
// addition to the per-dimension misses.
func Explain(user model.UserProfile, item model.Item, cfg Config, rejected model.RejectionSet) Explanation {
	b := Score(user, item, cfg, rejected)
	tags := item.Classification

	e := Explanation{
		Score:     b.Total,
		Quality:   b.Quality,
		Reasons:   []string{},
		Misses:    []string{},
		Breakdown: b,
		User: UserSummary{
			Aesthetic:      user.Aesthetic,
			Palette:        user.Palette,
			Vibe:           user.Vibe,
			Silhouette:     user.Silhouette,
			FollowedBrands: append([]string(nil), user.FollowedBrands...),
		},
	}
	if tags != nil {
		e.Item = ItemSummary{
			Aesthetics: append([]model.Aesthetic(nil), tags.Aesthetics...),
			Palette:    tags.Palette,
			Vibes:      append([]model.Vibe(nil), tags.Vibes...),
			Category:   tags.Category,
			PriceTier:  tags.PriceTier,
		}
	}

	if !SilhouetteAllows(user, item.Gender) {
		e.Misses = append(e.Misses, fmt.Sprintf("Silhouette: You shop %s but product is for %s", user.Silhouette, item.Gender))
	}

	e.explainAesthetic(user, tags)
	e.explainPalette(user, tags)
	e.explainVibe(user, tags)

	if _, ok := b.Bonuses[BonusBrandAffinity]; ok {
		e.Reasons = append(e.Reasons, fmt.Sprintf("Bonus: %s is a brand you follow", item.Brand))
	}
	if _, ok := b.Bonuses[BonusNewness]; ok {
		e.Reasons = append(e.Reasons, "Bonus: New arrival")
	}
	if _, ok := b.Penalties[PenaltyRejected]; ok {
		e.Reasons = append(e.Reasons, "Penalty: You previously passed on this product")
	}

	if b.MissingData {
		e.Misses = append(e.Misses, "Product has not been AI-tagged yet")
	}
	return e
}

func (e *Explanation) explainAesthetic(user model.UserProfile, tags *model.Classification) {
	d := e.Breakdown.Aesthetic
	switch {
	case d.Matched != "":
		e.Reasons = append(e.Reasons, fmt.Sprintf("Aesthetic match: %q aligns with your style", d.Matched))
	case user.Aesthetic == "":
	case !tags.HasAesthetics():
		e.Misses = append(e.Misses, "Aesthetic: No aesthetic data for this product")
	default:
		e.Misses = append(e.Misses, fmt.Sprintf("Aesthetic: You prefer %q but product is %s",
			user.Aesthetic, joinValues(tags.Aesthetics)))
	}
}

func (e *Explanation) explainPalette(user model.UserProfile, tags *model.Classification) {
	d := e.Breakdown.Palette
	switch {
	case d.Matched != "" && d.Partial:
		e.Reasons = append(e.Reasons, fmt.Sprintf("Compatible palette: %q works well with %q", d.Matched, user.Palette))
	case d.Matched != "":
		e.Reasons = append(e.Reasons, fmt.Sprintf("Palette match: %q fits your color preferences", d.Matched))
	case user.Palette == "":
	case !tags.HasPalette():
		e.Misses = append(e.Misses, "Palette: No palette data for this product")
	default:
		e.Misses = append(e.Misses, fmt.Sprintf("Palette: You prefer %q but product is %q", user.Palette, tags.Palette))
	}
}

func (e *Explanation) explainVibe(user model.UserProfile, tags *model.Classification) {
	d := e.Breakdown.Vibe
	switch {
	case d.Matched != "" && d.Partial:
		e.Reasons = append(e.Reasons, fmt.Sprintf("Compatible vibe: %q is close to %q", d.Matched, user.Vibe))
	case d.Matched != "":
		e.Reasons = append(e.Reasons, fmt.Sprintf("Vibe match: %q is your kind of energy", d.Matched))
	case user.Vibe == "":
	case !tags.HasVibes():
		e.Misses = append(e.Misses, "Vibe: No vibe data for this product")
	default:
		e.Misses = append(e.Misses, fmt.Sprintf("Vibe: You prefer %q but product is %s", user.Vibe, joinValues(tags.Vibes)))
	}
}

func joinValues[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
