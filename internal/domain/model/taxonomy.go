package model

// Aesthetic is a broad style family an item can belong to.
type Aesthetic string

// Palette is the dominant color family of an item.
type Palette string

// Vibe is the overall energy an item projects.
type Vibe string

// Category is the garment or product category.
type Category string

// PriceTier buckets an item by price.
type PriceTier string

// Aesthetics.
const (
	AestheticMinimalist  Aesthetic = "minimalist"
	AestheticMaximalist  Aesthetic = "maximalist"
	AestheticStreetwear  Aesthetic = "streetwear"
	AestheticPreppy      Aesthetic = "preppy"
	AestheticBohemian    Aesthetic = "bohemian"
	AestheticAthletic    Aesthetic = "athletic"
	AestheticClassic     Aesthetic = "classic"
	AestheticAvantGarde  Aesthetic = "avant-garde"
	AestheticRomantic    Aesthetic = "romantic"
	AestheticGrunge      Aesthetic = "grunge"
	AestheticCottagecore Aesthetic = "cottagecore"
	AestheticCoastal     Aesthetic = "coastal"
	AestheticScandi      Aesthetic = "scandinavian"
	AestheticWestern     Aesthetic = "western"
	AestheticPunk        Aesthetic = "punk"
	AestheticRetro       Aesthetic = "retro"
	AestheticFuturistic  Aesthetic = "futuristic"
	AestheticNormcore    Aesthetic = "normcore"
)

// Palettes.
const (
	PaletteNeutral       Palette = "neutral"
	PaletteEarthTones    Palette = "earth-tones"
	PalettePastels       Palette = "pastels"
	PaletteBrights       Palette = "brights"
	PaletteMonochrome    Palette = "monochrome"
	PaletteJewelTones    Palette = "jewel-tones"
	PaletteMuted         Palette = "muted"
	PaletteNeon          Palette = "neon"
	PaletteWarmTones     Palette = "warm-tones"
	PaletteBlackAndWhite Palette = "black-and-white"
)

// Vibes.
const (
	VibeUnderstated   Vibe = "understated"
	VibeBold          Vibe = "bold"
	VibePlayful       Vibe = "playful"
	VibeSophisticated Vibe = "sophisticated"
	VibeRelaxed       Vibe = "relaxed"
	VibeEdgy          Vibe = "edgy"
	VibePolished      Vibe = "polished"
	VibeCasual        Vibe = "casual"
	VibeDressy        Vibe = "dressy"
	VibeCozy          Vibe = "cozy"
	VibeArtistic      Vibe = "artistic"
	VibeSporty        Vibe = "sporty"
	VibeGlamorous     Vibe = "glamorous"
	VibeEarthy        Vibe = "earthy"
	VibeYouthful      Vibe = "youthful"
)

// Categories.
const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryDresses     Category = "dresses"
	CategoryOuterwear   Category = "outerwear"
	CategoryShoes       Category = "shoes"
	CategoryBags        Category = "bags"
	CategoryAccessories Category = "accessories"
	CategoryActivewear  Category = "activewear"
	CategorySwimwear    Category = "swimwear"
)

// Price tiers.
const (
	PriceTierBudget   PriceTier = "budget"
	PriceTierMidRange PriceTier = "mid-range"
	PriceTierPremium  PriceTier = "premium"
	PriceTierLuxury   PriceTier = "luxury"
)

// Price tier upper bounds (exclusive).
const (
	budgetCeiling   = 50.0
	midRangeCeiling = 150.0
	premiumCeiling  = 400.0
)

var aesthetics = map[Aesthetic]struct{}{
	AestheticMinimalist: {}, AestheticMaximalist: {}, AestheticStreetwear: {}, AestheticPreppy: {},
	AestheticBohemian: {}, AestheticAthletic: {}, AestheticClassic: {}, AestheticAvantGarde: {},
	AestheticRomantic: {}, AestheticGrunge: {}, AestheticCottagecore: {}, AestheticCoastal: {},
	AestheticScandi: {}, AestheticWestern: {}, AestheticPunk: {}, AestheticRetro: {},
	AestheticFuturistic: {}, AestheticNormcore: {},
}

var palettes = map[Palette]struct{}{
	PaletteNeutral: {}, PaletteEarthTones: {}, PalettePastels: {}, PaletteBrights: {},
	PaletteMonochrome: {}, PaletteJewelTones: {}, PaletteMuted: {}, PaletteNeon: {},
	PaletteWarmTones: {}, PaletteBlackAndWhite: {},
}

var vibes = map[Vibe]struct{}{
	VibeUnderstated: {}, VibeBold: {}, VibePlayful: {}, VibeSophisticated: {}, VibeRelaxed: {},
	VibeEdgy: {}, VibePolished: {}, VibeCasual: {}, VibeDressy: {}, VibeCozy: {},
	VibeArtistic: {}, VibeSporty: {}, VibeGlamorous: {}, VibeEarthy: {}, VibeYouthful: {},
}

var categories = map[Category]struct{}{
	CategoryTops: {}, CategoryBottoms: {}, CategoryDresses: {}, CategoryOuterwear: {},
	CategoryShoes: {}, CategoryBags: {}, CategoryAccessories: {}, CategoryActivewear: {},
	CategorySwimwear: {},
}

// Valid reports whether a is a known aesthetic.
func (a Aesthetic) Valid() bool { _, ok := aesthetics[a]; return ok }

// Valid reports whether p is a known palette.
func (p Palette) Valid() bool { _, ok := palettes[p]; return ok }

// Valid reports whether v is a known vibe.
func (v Vibe) Valid() bool { _, ok := vibes[v]; return ok }

// Valid reports whether c is a known category.
func (c Category) Valid() bool { _, ok := categories[c]; return ok }

// Valid reports whether t is a known price tier.
func (t PriceTier) Valid() bool {
	switch t {
	case PriceTierBudget, PriceTierMidRange, PriceTierPremium, PriceTierLuxury:
		return true
	}
	return false
}

// ClassifyPriceTier maps a price to its tier.
func ClassifyPriceTier(price float64) PriceTier {
	switch {
	case price < budgetCeiling:
		return PriceTierBudget
	case price < midRangeCeiling:
		return PriceTierMidRange
	case price < premiumCeiling:
		return PriceTierPremium
	default:
		return PriceTierLuxury
	}
}
