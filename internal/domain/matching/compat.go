package matching

import (
	"slices"

	"github.com/okian/stylematch/internal/domain/model"
)

// Adjacency is directional: keys are the user's value, entries are item
// values that earn partial credit. Read-only after package init.
var paletteCompat = map[model.Palette][]model.Palette{
	model.PaletteNeutral:       {model.PaletteEarthTones, model.PaletteMonochrome, model.PaletteMuted, model.PaletteBlackAndWhite},
	model.PaletteMonochrome:    {model.PaletteNeutral, model.PaletteBlackAndWhite},
	model.PaletteEarthTones:    {model.PaletteNeutral, model.PaletteWarmTones, model.PaletteMuted},
	model.PaletteMuted:         {model.PaletteNeutral, model.PaletteEarthTones, model.PalettePastels},
	model.PaletteWarmTones:     {model.PaletteEarthTones, model.PaletteMuted},
	model.PalettePastels:       {model.PaletteMuted},
	model.PaletteBrights:       {model.PaletteJewelTones, model.PaletteNeon},
	model.PaletteJewelTones:    {model.PaletteBrights, model.PaletteWarmTones},
	model.PaletteNeon:          {model.PaletteBrights},
	model.PaletteBlackAndWhite: {model.PaletteNeutral, model.PaletteMonochrome},
}

var vibeCompat = map[model.Vibe][]model.Vibe{
	model.VibeUnderstated:   {model.VibeCasual, model.VibeRelaxed, model.VibePolished, model.VibeSophisticated},
	model.VibeBold:          {model.VibeEdgy, model.VibeGlamorous, model.VibeDressy, model.VibeArtistic},
	model.VibeCasual:        {model.VibeRelaxed, model.VibeUnderstated, model.VibeSporty, model.VibeYouthful},
	model.VibeSophisticated: {model.VibePolished, model.VibeDressy, model.VibeUnderstated},
	model.VibePolished:      {model.VibeSophisticated, model.VibeDressy, model.VibeUnderstated},
	model.VibeEdgy:          {model.VibeBold, model.VibeArtistic, model.VibeYouthful},
	model.VibeRelaxed:       {model.VibeCasual, model.VibeUnderstated, model.VibeCozy, model.VibeEarthy},
	model.VibeDressy:        {model.VibeSophisticated, model.VibePolished, model.VibeGlamorous},
	model.VibePlayful:       {model.VibeYouthful, model.VibeBold, model.VibeArtistic},
	model.VibeCozy:          {model.VibeRelaxed, model.VibeCasual, model.VibeEarthy},
	model.VibeArtistic:      {model.VibeEdgy, model.VibeBold, model.VibePlayful},
	model.VibeSporty:        {model.VibeCasual, model.VibeYouthful},
	model.VibeGlamorous:     {model.VibeDressy, model.VibeBold, model.VibeSophisticated},
	model.VibeEarthy:        {model.VibeRelaxed, model.VibeCozy},
	model.VibeYouthful:      {model.VibePlayful, model.VibeCasual, model.VibeSporty},
}

// PaletteCompatible reports whether an item palette earns partial credit
// for a user palette. Equal palettes are not "compatible"; they match.
func PaletteCompatible(user, item model.Palette) bool {
	return slices.Contains(paletteCompat[user], item)
}

// CompatiblePalettes returns a copy of the palettes adjacent to p.
func CompatiblePalettes(p model.Palette) []model.Palette {
	return slices.Clone(paletteCompat[p])
}

// VibeCompatible reports whether an item vibe earns partial credit for a
// user vibe.
func VibeCompatible(user, item model.Vibe) bool {
	return slices.Contains(vibeCompat[user], item)
}

// CompatibleVibes returns a copy of the vibes adjacent to v.
func CompatibleVibes(v model.Vibe) []model.Vibe {
	return slices.Clone(vibeCompat[v])
}

// firstCompatibleVibe returns the first item vibe, in item order, that is
// adjacent to the user's vibe.
func firstCompatibleVibe(user model.Vibe, itemVibes []model.Vibe) (model.Vibe, bool) {
	for _, v := range itemVibes {
		if VibeCompatible(user, v) {
			return v, true
		}
	}
	return "", false
}
