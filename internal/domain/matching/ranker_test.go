package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/stylematch/internal/domain/matching"
	"github.com/okian/stylematch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// rankerCatalog holds items scoring 100, 85, 70, 55, 55, 15 for minimalUser.
func rankerCatalog() []model.Item {
	full := perfectItem(1)

	compatPalette := perfectItem(2)
	compatPalette.Classification.Palette = model.PaletteEarthTones

	noVibe := perfectItem(3)
	noVibe.Classification.Vibes = []model.Vibe{model.VibeBold}

	tieA := perfectItem(4)
	tieA.Classification.Palette = model.PaletteNeon
	tieA.Classification.Vibes = []model.Vibe{model.VibeCasual}
	tieA.Category = "knitwear"

	tieB := perfectItem(5)
	tieB.Classification.Palette = model.PaletteNeon
	tieB.Classification.Vibes = []model.Vibe{model.VibeCasual}

	weak := perfectItem(6)
	weak.Classification.Aesthetics = []model.Aesthetic{model.AestheticPunk}
	weak.Classification.Palette = model.PaletteMuted
	weak.Classification.Vibes = []model.Vibe{model.VibeBold}

	return []model.Item{weak, tieA, noVibe, full, tieB, compatPalette}
}

func TestRanker_Rank(t *testing.T) {
	ctx := context.Background()

	Convey("Given a ranker over a small catalog", t, func() {
		src := &fakeSource{
			users:    map[int64]model.UserProfile{7: minimalUser()},
			rejected: map[int64]model.RejectionSet{},
			items:    rankerCatalog(),
		}
		r, err := matching.NewRanker(src, matching.DefaultConfig())
		So(err, ShouldBeNil)

		Convey("When ranking a stored user", func() {
			page, err := r.Rank(ctx, matching.StoredUser{ID: 7}, matching.Page{Limit: 50}, matching.Filters{})
			So(err, ShouldBeNil)

			Convey("Then only qualifying items are returned, best first", func() {
				So(page.UserID, ShouldEqual, 7)
				So(page.Total, ShouldEqual, 5)
				So(page.Candidates, ShouldEqual, 6)
				So(len(page.Items), ShouldEqual, 5)
				ids := make([]int64, 0, len(page.Items))
				for i, it := range page.Items {
					ids = append(ids, it.Item.ID)
					So(it.Score.Total, ShouldBeGreaterThanOrEqualTo, 20)
					if i > 0 {
						So(it.Score.Total, ShouldBeLessThanOrEqualTo, page.Items[i-1].Score.Total)
					}
				}
				So(ids, ShouldResemble, []int64{1, 2, 3, 4, 5})
			})

			Convey("And the average covers every qualifying item", func() {
				So(page.AverageScore, ShouldAlmostEqual, (100.0+85+70+55+55)/5, 1e-9)
			})

			Convey("And rejection history was consulted once", func() {
				So(src.rejectionCalls, ShouldEqual, 1)
			})
		})

		Convey("When paginating", func() {
			page, err := r.Rank(ctx, matching.StoredUser{ID: 7}, matching.Page{Offset: 1, Limit: 2}, matching.Filters{})
			So(err, ShouldBeNil)
			So(page.Total, ShouldEqual, 5)
			So(len(page.Items), ShouldEqual, 2)
			So(page.Items[0].Item.ID, ShouldEqual, 2)
			So(page.Items[1].Item.ID, ShouldEqual, 3)

			Convey("And the offset is past the end", func() {
				page, err := r.Rank(ctx, matching.StoredUser{ID: 7}, matching.Page{Offset: 10, Limit: 2}, matching.Filters{})
				So(err, ShouldBeNil)
				So(page.Items, ShouldBeEmpty)
				So(page.Total, ShouldEqual, 5)
			})

			Convey("And the limit is zero", func() {
				page, err := r.Rank(ctx, matching.StoredUser{ID: 7}, matching.Page{Limit: 0}, matching.Filters{})
				So(err, ShouldBeNil)
				So(page.Items, ShouldBeEmpty)
			})
		})

		Convey("When the user rejected the top item", func() {
			src.rejected[7] = model.NewRejectionSet(1)
			page, err := r.Rank(ctx, matching.StoredUser{ID: 7}, matching.Page{Limit: 50}, matching.Filters{})
			So(err, ShouldBeNil)

			Convey("Then it drops down the ranking", func() {
				So(page.Items[0].Item.ID, ShouldEqual, 2)
				for _, it := range page.Items {
					if it.Item.ID == 1 {
						So(it.Score.Total, ShouldEqual, 70)
					}
				}
			})
		})

		Convey("When ranking a transient profile", func() {
			src.rejected[7] = model.NewRejectionSet(1)
			page, err := r.Rank(ctx, matching.TransientUser{Profile: minimalUser()}, matching.Page{Limit: 1}, matching.Filters{})
			So(err, ShouldBeNil)

			Convey("Then rejection history is never loaded", func() {
				So(src.rejectionCalls, ShouldEqual, 0)
				So(page.UserID, ShouldEqual, 0)
				So(page.Items[0].Item.ID, ShouldEqual, 1)
				So(page.Items[0].Score.Total, ShouldEqual, 100)
			})
		})

		Convey("When the stored user does not exist", func() {
			_, err := r.Rank(ctx, matching.StoredUser{ID: 404}, matching.Page{Limit: 10}, matching.Filters{})

			Convey("Then a not-found error is surfaced", func() {
				So(errors.Is(err, model.ErrUserNotFound), ShouldBeTrue)
			})
		})

		Convey("When the data source fails", func() {
			boom := errors.New("connection reset")
			src.queryErr = boom
			_, err := r.Rank(ctx, matching.StoredUser{ID: 7}, matching.Page{Limit: 10}, matching.Filters{})
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})

	Convey("Given a menswear user with filters", t, func() {
		user := minimalUser()
		user.Silhouette = model.SilhouetteMenswear
		src := &fakeSource{users: map[int64]model.UserProfile{7: user}, items: rankerCatalog()}
		cfg := matching.DefaultConfig()
		cfg.PenalizeRejected = false
		r, err := matching.NewRanker(src, cfg)
		So(err, ShouldBeNil)

		lo, hi := 10.0, 200.0
		_, err = r.Rank(ctx, matching.StoredUser{ID: 7}, matching.Page{Limit: 5},
			matching.Filters{Category: "tops", MinPrice: &lo, MaxPrice: &hi})
		So(err, ShouldBeNil)

		Convey("Then the candidate query carries every restriction", func() {
			q := src.lastQuery
			So(q.RequireClassification, ShouldBeTrue)
			So(q.AllowedGenders, ShouldResemble, []model.Gender{model.GenderMens, model.GenderUnisex})
			So(q.Category, ShouldEqual, "tops")
			So(*q.MinPrice, ShouldEqual, 10)
			So(*q.MaxPrice, ShouldEqual, 200)
		})

		Convey("Then rejection history is skipped when penalties are off", func() {
			So(src.rejectionCalls, ShouldEqual, 0)
		})
	})
}
