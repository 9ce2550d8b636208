package model

// CandidateQuery selects the items a user can be matched against.
// Implementations always restrict to active, in-stock items.
type CandidateQuery struct {
	// RequireClassification excludes unclassified items.
	RequireClassification bool
	// AllowedGenders restricts item gender; items without a gender always
	// pass. Nil means no restriction.
	AllowedGenders []Gender
	// Category filters on the item's category column when non-empty.
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// Interaction actions recorded for a user and item.
const (
	ActionSwipeLeft  = "swipe_left"
	ActionSwipeRight = "swipe_right"
	ActionFavorite   = "favorite"
	ActionUnfavorite = "unfavorite"
)
