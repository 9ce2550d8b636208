package repository

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/stylematch/internal/domain/model"
)

type fixtureUser struct {
	ID             int64    `koanf:"id"`
	Name           string   `koanf:"name"`
	Aesthetic      string   `koanf:"aesthetic"`
	Palette        string   `koanf:"palette"`
	Vibe           string   `koanf:"vibe"`
	Silhouette     string   `koanf:"silhouette"`
	FollowedBrands []string `koanf:"followed_brands"`
}

type fixtureItem struct {
	ID           int64                 `koanf:"id"`
	Name         string                `koanf:"name"`
	Brand        string                `koanf:"brand"`
	Price        float64               `koanf:"price"`
	Currency     string                `koanf:"currency"`
	URL          string                `koanf:"url"`
	Category     string                `koanf:"category"`
	Gender       string                `koanf:"gender"`
	Availability string                `koanf:"availability"`
	Active       *bool                 `koanf:"active"`
	AddedDaysAgo *int                  `koanf:"added_days_ago"`
	Tags         *model.Classification `koanf:"tags"`
}

type fixtureInteraction struct {
	UserID     int64  `koanf:"user_id"`
	ItemID     int64  `koanf:"item_id"`
	Action     string `koanf:"action"`
	MinutesAgo int    `koanf:"minutes_ago"`
}

type fixture struct {
	Users        []fixtureUser        `koanf:"users"`
	Items        []fixtureItem        `koanf:"items"`
	Interactions []fixtureInteraction `koanf:"interactions"`
}

// LoadFixture reads a YAML catalog from path into s.
func LoadFixture(path string, s *MemoryStore) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load fixture %s: %w", path, err)
	}
	var f fixture
	if err := k.UnmarshalWithConf("", &f, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidFixture, path, err)
	}
	if err := f.validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidFixture, path, err)
	}

	now := s.now()
	for _, u := range f.Users {
		s.PutUser(model.UserProfile{
			ID:             u.ID,
			Name:           u.Name,
			Aesthetic:      model.Aesthetic(u.Aesthetic),
			Palette:        model.Palette(u.Palette),
			Vibe:           model.Vibe(u.Vibe),
			Silhouette:     model.Silhouette(u.Silhouette),
			FollowedBrands: u.FollowedBrands,
		})
	}
	for _, it := range f.Items {
		item := model.Item{
			ID:             it.ID,
			Name:           it.Name,
			Brand:          it.Brand,
			Price:          it.Price,
			Currency:       it.Currency,
			URL:            it.URL,
			Category:       it.Category,
			Gender:         model.Gender(it.Gender),
			Availability:   it.Availability,
			IsActive:       it.Active == nil || *it.Active,
			Classification: it.Tags,
		}
		if item.Availability == "" {
			item.Availability = model.AvailabilityInStock
		}
		if it.AddedDaysAgo != nil {
			item.FirstSeen = now.Add(-time.Duration(*it.AddedDaysAgo) * 24 * time.Hour)
		}
		s.PutItem(item)
	}
	for _, in := range f.Interactions {
		s.RecordInteraction(Interaction{
			UserID: in.UserID,
			ItemID: in.ItemID,
			Action: in.Action,
			At:     now.Add(-time.Duration(in.MinutesAgo) * time.Minute),
		})
	}
	return nil
}

func (f fixture) validate() error {
	for _, u := range f.Users {
		if u.ID <= 0 {
			return fmt.Errorf("user %q: id must be positive", u.Name)
		}
		if u.Aesthetic != "" && !model.Aesthetic(u.Aesthetic).Valid() {
			return fmt.Errorf("user %d: unknown aesthetic %q", u.ID, u.Aesthetic)
		}
		if u.Palette != "" && !model.Palette(u.Palette).Valid() {
			return fmt.Errorf("user %d: unknown palette %q", u.ID, u.Palette)
		}
		if u.Vibe != "" && !model.Vibe(u.Vibe).Valid() {
			return fmt.Errorf("user %d: unknown vibe %q", u.ID, u.Vibe)
		}
	}
	for _, it := range f.Items {
		if it.ID <= 0 {
			return fmt.Errorf("item %q: id must be positive", it.Name)
		}
		if it.Tags == nil {
			continue
		}
		for _, a := range it.Tags.Aesthetics {
			if !a.Valid() {
				return fmt.Errorf("item %d: unknown aesthetic %q", it.ID, a)
			}
		}
		if it.Tags.Palette != "" && !it.Tags.Palette.Valid() {
			return fmt.Errorf("item %d: unknown palette %q", it.ID, it.Tags.Palette)
		}
		for _, v := range it.Tags.Vibes {
			if !v.Valid() {
				return fmt.Errorf("item %d: unknown vibe %q", it.ID, v)
			}
		}
	}
	for _, in := range f.Interactions {
		switch in.Action {
		case model.ActionSwipeLeft, model.ActionSwipeRight, model.ActionFavorite, model.ActionUnfavorite:
		default:
			return fmt.Errorf("interaction user %d item %d: unknown action %q", in.UserID, in.ItemID, in.Action)
		}
	}
	return nil
}
