package matching

// Quality is the human label attached to a final score.
type Quality string

// Quality bands.
const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
)

// Bonus and penalty keys recorded on a ScoreBreakdown.
const (
	BonusBrandAffinity = "brandAffinity"
	BonusNewness       = "newness"
	PenaltyRejected    = "rejected"
)

// DimensionScore is the outcome of one preference dimension.
type DimensionScore struct {
	Points float64
	Max    float64
	// Matched names the value that earned credit; empty when none did.
	Matched string
	Partial bool
}

// ScoreBreakdown is the full result of scoring one item for one user.
type ScoreBreakdown struct {
	Total       float64
	Base        float64
	Aesthetic   DimensionScore
	Palette     DimensionScore
	Vibe        DimensionScore
	Bonuses     map[string]float64
	Penalties   map[string]float64
	Quality     Quality
	MissingData bool
}
