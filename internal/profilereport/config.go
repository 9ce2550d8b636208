// Package profilereport scores sample style archetypes against a running
// service and prints how differently they rank the catalog.
package profilereport

import "time"

// Config holds configuration for a report run.
type Config struct {
	BaseURL string        // Base URL of the service
	Limit   int           // Page size requested per profile
	TopN    int           // Window used for the cross-profile overlap
	Workers int           // Concurrent preview requests
	Timeout time.Duration // HTTP request timeout
}

// Profile is a preview request body.
type Profile struct {
	Name           string   `json:"-"`
	Aesthetic      string   `json:"aesthetic,omitempty"`
	Palette        string   `json:"palette,omitempty"`
	Vibe           string   `json:"vibe,omitempty"`
	Silhouette     string   `json:"silhouette,omitempty"`
	FollowedBrands []string `json:"followedBrands,omitempty"`
	Limit          int      `json:"limit,omitempty"`
}

// Tags are the classification fields shown next to a product.
type Tags struct {
	Aesthetics []string `json:"aesthetics"`
	Palette    string   `json:"palette"`
	Vibes      []string `json:"vibes"`
}

// Product is one ranked product in a preview response.
type Product struct {
	ID           int64   `json:"id"`
	Brand        string  `json:"brand"`
	Name         string  `json:"name"`
	MatchScore   float64 `json:"matchScore"`
	MatchQuality string  `json:"matchQuality"`
	AITags       *Tags   `json:"aiTags"`
}

// Page is a preview response.
type Page struct {
	Products     []Product `json:"products"`
	Total        int       `json:"total"`
	AverageScore float64   `json:"averageScore"`
}

// SampleProfiles returns one profile per style archetype. Each should
// surface a visibly different slice of the catalog.
func SampleProfiles() []Profile {
	return []Profile{
		{Name: "Minimal Maven", Aesthetic: "minimalist", Palette: "neutral", Vibe: "understated", Silhouette: "all"},
		{Name: "Maximalist Mary", Aesthetic: "maximalist", Palette: "brights", Vibe: "bold", Silhouette: "womenswear"},
		{Name: "Vintage Vicky", Aesthetic: "retro", Palette: "earth-tones", Vibe: "earthy", Silhouette: "womenswear"},
		{Name: "Streetwear Steve", Aesthetic: "streetwear", Palette: "monochrome", Vibe: "edgy", Silhouette: "menswear"},
		{Name: "Classic Claire", Aesthetic: "classic", Palette: "neutral", Vibe: "sophisticated", Silhouette: "all"},
	}
}
