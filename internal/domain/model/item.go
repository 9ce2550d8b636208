package model

import "time"

// Gender is the audience an item is declared for.
type Gender string

// Genders. An empty Gender means the item declares none.
const (
	GenderMens   Gender = "mens"
	GenderWomens Gender = "womens"
	GenderUnisex Gender = "unisex"
)

// Availability states.
const (
	AvailabilityInStock    = "in_stock"
	AvailabilityOutOfStock = "out_of_stock"
)

// Classification is the stylistic tagging of an item. A zero Palette,
// Category or PriceTier means that dimension is absent.
type Classification struct {
	Aesthetics []Aesthetic `json:"aesthetics,omitempty" koanf:"aesthetics"`
	Palette    Palette     `json:"palette,omitempty" koanf:"palette"`
	Vibes      []Vibe      `json:"vibes,omitempty" koanf:"vibes"`
	Category   Category    `json:"category,omitempty" koanf:"category"`
	PriceTier  PriceTier   `json:"price_tier,omitempty" koanf:"price_tier"`
}

// IsEmpty reports whether no dimension is present. An empty document counts
// as unclassified.
func (c *Classification) IsEmpty() bool {
	return c == nil || (!c.HasAesthetics() && !c.HasPalette() && !c.HasVibes() &&
		c.Category == "" && c.PriceTier == "")
}

// HasAesthetics reports whether the aesthetic dimension is present.
func (c *Classification) HasAesthetics() bool { return c != nil && len(c.Aesthetics) > 0 }

// HasPalette reports whether the palette dimension is present.
func (c *Classification) HasPalette() bool { return c != nil && c.Palette != "" }

// HasVibes reports whether the vibe dimension is present.
func (c *Classification) HasVibes() bool { return c != nil && len(c.Vibes) > 0 }

// HasAesthetic reports whether a is one of the item's aesthetics.
func (c *Classification) HasAesthetic(a Aesthetic) bool {
	if c == nil {
		return false
	}
	for _, v := range c.Aesthetics {
		if v == a {
			return true
		}
	}
	return false
}

// HasVibe reports whether v is one of the item's vibes.
func (c *Classification) HasVibe(v Vibe) bool {
	if c == nil {
		return false
	}
	for _, x := range c.Vibes {
		if x == v {
			return true
		}
	}
	return false
}

// Item is a catalog entry considered for matching.
type Item struct {
	ID           int64
	Name         string
	Brand        string
	Price        float64
	Currency     string
	URL          string
	Category     string
	Gender       Gender
	Availability string
	IsActive     bool
	FirstSeen    time.Time
	// IsNew is derived by the data layer from FirstSeen.
	IsNew bool
	// Classification is nil for items that have not been tagged yet.
	Classification *Classification
}

// Classified reports whether the item carries a classification.
func (i Item) Classified() bool { return i.Classification != nil }

// CategoryKey returns the classified category, or "unknown".
func (i Item) CategoryKey() string {
	if i.Classification != nil && i.Classification.Category != "" {
		return string(i.Classification.Category)
	}
	return Unknown
}

// BrandKey returns the brand name, or "unknown".
func (i Item) BrandKey() string {
	if i.Brand != "" {
		return i.Brand
	}
	return Unknown
}

// PriceTierKey returns the classified price tier, or "unknown".
func (i Item) PriceTierKey() string {
	if i.Classification != nil && i.Classification.PriceTier != "" {
		return string(i.Classification.PriceTier)
	}
	return Unknown
}

// Unknown labels a missing category, brand or price tier in aggregates.
const Unknown = "unknown"

// IsNewAt reports whether an item first seen at firstSeen is still within
// window at now.
func IsNewAt(firstSeen, now time.Time, window time.Duration) bool {
	if firstSeen.IsZero() {
		return false
	}
	return now.Sub(firstSeen) <= window
}
