package matching_test

import (
	"context"
	"fmt"

	"github.com/okian/stylematch/internal/domain/model"
)

func classified(aesthetics []model.Aesthetic, palette model.Palette, vibes []model.Vibe, category model.Category) *model.Classification {
	return &model.Classification{
		Aesthetics: aesthetics,
		Palette:    palette,
		Vibes:      vibes,
		Category:   category,
		PriceTier:  model.PriceTierMidRange,
	}
}

func minimalUser() model.UserProfile {
	return model.UserProfile{
		ID:         7,
		Name:       "Minimal Maven",
		Aesthetic:  model.AestheticMinimalist,
		Palette:    model.PaletteNeutral,
		Vibe:       model.VibeUnderstated,
		Silhouette: model.SilhouetteAll,
	}
}

func perfectItem(id int64) model.Item {
	return model.Item{
		ID:           id,
		Name:         fmt.Sprintf("item-%d", id),
		Brand:        "Acme",
		Price:        120,
		Availability: model.AvailabilityInStock,
		IsActive:     true,
		Classification: classified(
			[]model.Aesthetic{model.AestheticMinimalist, model.AestheticClassic},
			model.PaletteNeutral,
			[]model.Vibe{model.VibeUnderstated, model.VibePolished},
			model.CategoryTops,
		),
	}
}

// fakeSource serves fixed users and items and records what it was asked.
type fakeSource struct {
	users          map[int64]model.UserProfile
	rejected       map[int64]model.RejectionSet
	items          []model.Item
	queryErr       error
	lastQuery      model.CandidateQuery
	rejectionCalls int
}

func (f *fakeSource) LoadUser(_ context.Context, id int64) (model.UserProfile, error) {
	u, ok := f.users[id]
	if !ok {
		return model.UserProfile{}, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeSource) LoadRejectedItemIDs(_ context.Context, userID int64) (model.RejectionSet, error) {
	f.rejectionCalls++
	return f.rejected[userID], nil
}

func (f *fakeSource) QueryCandidateItems(_ context.Context, q model.CandidateQuery) ([]model.Item, error) {
	f.lastQuery = q
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return append([]model.Item(nil), f.items...), nil
}

func (f *fakeSource) LoadItem(_ context.Context, id int64) (model.Item, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.Item{}, model.ErrItemNotFound
}
