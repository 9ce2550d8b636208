// Package matching scores, ranks, curates and explains catalog items
// against a user's declared style preferences.
package matching

import (
	"fmt"
	"math"
)

// Default matching configuration constants.
const (
	defaultAestheticWeight  = 40.0
	defaultPaletteWeight    = 30.0
	defaultVibeWeight       = 30.0
	defaultBrandAffinity    = 1.15
	defaultNewness          = 1.05
	defaultMinScore         = 20.0
	defaultGoodMatch        = 60.0
	defaultExcellentMatch   = 80.0
	defaultMaxProducts      = 12
	defaultMinProducts      = 3
	defaultMaxCategoryFrac  = 0.4
	defaultMaxBrandFrac     = 0.5
	defaultOversampleFactor = 4
	defaultRejectionPenalty = 30.0
	weightSumTarget         = 100.0
	weightSumTolerance      = 0.01
	maxScore                = 100.0
)

// Weights are the points available per dimension and the bonus multipliers.
type Weights struct {
	Aesthetic     float64 `koanf:"aesthetic"`
	Palette       float64 `koanf:"palette"`
	Vibe          float64 `koanf:"vibe"`
	BrandAffinity float64 `koanf:"brand_affinity"`
	Newness       float64 `koanf:"newness"`
}

// FilterThresholds separate the quality bands.
type FilterThresholds struct {
	MinScore       float64 `koanf:"min_score"`
	GoodMatch      float64 `koanf:"good_match"`
	ExcellentMatch float64 `koanf:"excellent_match"`
}

// CurationRules shape a curated collection.
type CurationRules struct {
	MaxProducts         int     `koanf:"max_products"`
	MinProducts         int     `koanf:"min_products"`
	MaxCategoryFraction float64 `koanf:"max_category_fraction"`
	MaxBrandFraction    float64 `koanf:"max_brand_fraction"`
	OversampleFactor    int     `koanf:"oversample_factor"`
}

// Config holds every tunable of the matching core. It is a value: the
// components copy it at construction and never mutate it.
type Config struct {
	Weights               Weights          `koanf:"weights"`
	Filters               FilterThresholds `koanf:"filters"`
	Curation              CurationRules    `koanf:"curation"`
	RequireClassification bool             `koanf:"require_classification"`
	PenalizeRejected      bool             `koanf:"penalize_rejected"`
	RejectionPenalty      float64          `koanf:"rejection_penalty"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Aesthetic:     defaultAestheticWeight,
			Palette:       defaultPaletteWeight,
			Vibe:          defaultVibeWeight,
			BrandAffinity: defaultBrandAffinity,
			Newness:       defaultNewness,
		},
		Filters: FilterThresholds{
			MinScore:       defaultMinScore,
			GoodMatch:      defaultGoodMatch,
			ExcellentMatch: defaultExcellentMatch,
		},
		Curation: CurationRules{
			MaxProducts:         defaultMaxProducts,
			MinProducts:         defaultMinProducts,
			MaxCategoryFraction: defaultMaxCategoryFrac,
			MaxBrandFraction:    defaultMaxBrandFrac,
			OversampleFactor:    defaultOversampleFactor,
		},
		RequireClassification: true,
		PenalizeRejected:      true,
		RejectionPenalty:      defaultRejectionPenalty,
	}
}

// Validate checks the configuration and returns an error wrapping
// ErrInvalidConfig on the first violation.
func (c Config) Validate() error {
	w := c.Weights
	if w.Aesthetic < 0 || w.Palette < 0 || w.Vibe < 0 {
		return fmt.Errorf("%w: dimension weights must not be negative", ErrInvalidConfig)
	}
	if sum := w.Aesthetic + w.Palette + w.Vibe; math.Abs(sum-weightSumTarget) > weightSumTolerance {
		return fmt.Errorf("%w: dimension weights sum to %.2f, want %.0f", ErrInvalidConfig, sum, weightSumTarget)
	}
	if w.BrandAffinity <= 1 || w.Newness <= 1 {
		return fmt.Errorf("%w: bonus multipliers must be greater than 1", ErrInvalidConfig)
	}

	f := c.Filters
	if f.MinScore < 0 || f.MinScore >= f.GoodMatch || f.GoodMatch >= f.ExcellentMatch || f.ExcellentMatch > maxScore {
		return fmt.Errorf("%w: thresholds must satisfy 0 <= min (%.1f) < good (%.1f) < excellent (%.1f) <= 100",
			ErrInvalidConfig, f.MinScore, f.GoodMatch, f.ExcellentMatch)
	}

	r := c.Curation
	switch {
	case r.MaxProducts < 1:
		return fmt.Errorf("%w: max_products must be at least 1", ErrInvalidConfig)
	case r.MinProducts < 0:
		return fmt.Errorf("%w: min_products must not be negative", ErrInvalidConfig)
	case r.MaxCategoryFraction <= 0 || r.MaxCategoryFraction > 1:
		return fmt.Errorf("%w: max_category_fraction must be in (0, 1]", ErrInvalidConfig)
	case r.MaxBrandFraction <= 0 || r.MaxBrandFraction > 1:
		return fmt.Errorf("%w: max_brand_fraction must be in (0, 1]", ErrInvalidConfig)
	case r.OversampleFactor < 1:
		return fmt.Errorf("%w: oversample_factor must be at least 1", ErrInvalidConfig)
	}

	if c.RejectionPenalty < 0 {
		return fmt.Errorf("%w: rejection_penalty must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Quality maps a final score onto its quality band.
func (f FilterThresholds) Quality(total float64) Quality {
	switch {
	case total >= f.ExcellentMatch:
		return QualityExcellent
	case total >= f.GoodMatch:
		return QualityGood
	case total >= f.MinScore:
		return QualityFair
	default:
		return QualityPoor
	}
}
