package model_test

import (
	"testing"
	"time"

	model "github.com/okian/stylematch/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTaxonomy(t *testing.T) {
	convey.Convey("Given the closed taxonomy", t, func() {
		convey.Convey("When checking known and unknown values", func() {
			convey.So(model.AestheticAvantGarde.Valid(), convey.ShouldBeTrue)
			convey.So(model.Aesthetic("goth").Valid(), convey.ShouldBeFalse)
			convey.So(model.PaletteBlackAndWhite.Valid(), convey.ShouldBeTrue)
			convey.So(model.Palette("").Valid(), convey.ShouldBeFalse)
			convey.So(model.VibeYouthful.Valid(), convey.ShouldBeTrue)
			convey.So(model.CategorySwimwear.Valid(), convey.ShouldBeTrue)
			convey.So(model.PriceTierMidRange.Valid(), convey.ShouldBeTrue)
			convey.So(model.PriceTier("cheap").Valid(), convey.ShouldBeFalse)
		})

		convey.Convey("When classifying prices into tiers", func() {
			convey.So(model.ClassifyPriceTier(0), convey.ShouldEqual, model.PriceTierBudget)
			convey.So(model.ClassifyPriceTier(49.99), convey.ShouldEqual, model.PriceTierBudget)
			convey.So(model.ClassifyPriceTier(50), convey.ShouldEqual, model.PriceTierMidRange)
			convey.So(model.ClassifyPriceTier(150), convey.ShouldEqual, model.PriceTierPremium)
			convey.So(model.ClassifyPriceTier(400), convey.ShouldEqual, model.PriceTierLuxury)
		})
	})
}

func TestUserProfile(t *testing.T) {
	convey.Convey("Given user profiles with different silhouettes", t, func() {
		convey.Convey("Then allowed genders follow the silhouette", func() {
			convey.So(model.UserProfile{Silhouette: model.SilhouetteMenswear}.AllowedGenders(),
				convey.ShouldResemble, []model.Gender{model.GenderMens, model.GenderUnisex})
			convey.So(model.UserProfile{Silhouette: model.SilhouetteWomenswear}.AllowedGenders(),
				convey.ShouldResemble, []model.Gender{model.GenderWomens, model.GenderUnisex})
			convey.So(model.UserProfile{Silhouette: model.SilhouetteAll}.AllowedGenders(), convey.ShouldBeNil)
			convey.So(model.UserProfile{}.AllowedGenders(), convey.ShouldBeNil)
		})

		convey.Convey("Then followed brands are matched by name", func() {
			u := model.UserProfile{FollowedBrands: []string{"Acme", "Norse"}}
			convey.So(u.Follows("Acme"), convey.ShouldBeTrue)
			convey.So(u.Follows("acme"), convey.ShouldBeFalse)
			convey.So(u.Follows(""), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given a nil rejection set", t, func() {
		var s model.RejectionSet
		convey.So(s.Contains(1), convey.ShouldBeFalse)
		convey.So(model.NewRejectionSet(1, 2).Contains(2), convey.ShouldBeTrue)
	})
}

func TestItem(t *testing.T) {
	convey.Convey("Given an unclassified item without brand", t, func() {
		item := model.Item{ID: 1}

		convey.Convey("Then aggregate keys fall back to unknown", func() {
			convey.So(item.Classified(), convey.ShouldBeFalse)
			convey.So(item.CategoryKey(), convey.ShouldEqual, model.Unknown)
			convey.So(item.BrandKey(), convey.ShouldEqual, model.Unknown)
			convey.So(item.PriceTierKey(), convey.ShouldEqual, model.Unknown)
			convey.So(item.Classification.HasPalette(), convey.ShouldBeFalse)
			convey.So(item.Classification.HasVibe(model.VibeBold), convey.ShouldBeFalse)
			convey.So(item.Classification.IsEmpty(), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given classification documents", t, func() {
		convey.So((&model.Classification{}).IsEmpty(), convey.ShouldBeTrue)
		convey.So((&model.Classification{Vibes: []model.Vibe{}}).IsEmpty(), convey.ShouldBeTrue)
		convey.So((&model.Classification{Category: model.CategoryTops}).IsEmpty(), convey.ShouldBeFalse)
		convey.So((&model.Classification{Palette: model.PaletteMuted}).IsEmpty(), convey.ShouldBeFalse)
	})

	convey.Convey("Given first-seen timestamps", t, func() {
		now := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		window := 30 * 24 * time.Hour

		convey.So(model.IsNewAt(now.Add(-29*24*time.Hour), now, window), convey.ShouldBeTrue)
		convey.So(model.IsNewAt(now.Add(-30*24*time.Hour), now, window), convey.ShouldBeTrue)
		convey.So(model.IsNewAt(now.Add(-31*24*time.Hour), now, window), convey.ShouldBeFalse)
		convey.So(model.IsNewAt(time.Time{}, now, window), convey.ShouldBeFalse)
	})
}
